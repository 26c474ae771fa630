package boltstore

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/go-disk-register/internal/node/config"
	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"go.etcd.io/bbolt"
)

const DBFileName = "messages.db"

var messagesBucket = []byte("messages")

// BoltStore implements port.MessageStore on a single bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

var _ port.MessageStore = (*BoltStore)(nil)

// NewBoltStore opens <data_dir>/messages.db and creates the bucket.
func NewBoltStore(cfg config.StorageConfig) (*BoltStore, error) {
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	db, err := bbolt.Open(filepath.Join(cfg.DataDir, DBFileName), 0600, &bbolt.Options{
		Timeout: time.Second,
		NoSync:  !cfg.FSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(messagesBucket); err != nil {
			return fmt.Errorf("failed to create messages bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Put(ctx context.Context, id int32, text string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(messagesBucket).Put(idKey(id), []byte(text))
	})
}

func (s *BoltStore) Get(ctx context.Context, id int32) (string, error) {
	var text string
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(messagesBucket).Get(idKey(id))
		if v == nil {
			return port.ErrMessageNotFound
		}
		// v is only valid inside the transaction.
		text = string(v)
		return nil
	})
	return text, err
}

func (s *BoltStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(messagesBucket).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func idKey(id int32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, uint32(id)) // #nosec G115
	return key
}
