package diskstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthanhphan/go-disk-register/internal/node/config"
	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	MessageSuffix = ".msg"
	tempPattern   = ".pending-*"
)

// DiskStore implements port.MessageStore with one file per message id:
// <dir>/<id>.msg. Writes go through a temp file and rename so readers never
// observe a half-written message.
type DiskStore struct {
	dir   string
	fsync bool
}

var _ port.MessageStore = (*DiskStore)(nil)

// NewDiskStore creates the messages directory if needed.
func NewDiskStore(cfg config.StorageConfig) (*DiskStore, error) {
	dir := filepath.Clean(cfg.DataDir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create messages directory: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err == nil {
		logger.Infow("Messages directory ready", "path", abs)
	}

	return &DiskStore{dir: dir, fsync: cfg.FSync}, nil
}

func (s *DiskStore) pathFor(id int32) string {
	return filepath.Join(s.dir, strconv.Itoa(int(id))+MessageSuffix)
}

// Put writes text to <id>.msg, replacing any previous content.
func (s *DiskStore) Put(ctx context.Context, id int32, text string) error {
	tmp, err := os.CreateTemp(s.dir, tempPattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file for message %d: %w", id, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write message %d: %w", id, err)
	}
	if s.fsync {
		if err := tmp.Sync(); err != nil {
			_ = tmp.Close()
			cleanup()
			return fmt.Errorf("failed to sync message %d: %w", id, err)
		}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close message %d: %w", id, err)
	}

	if err := os.Rename(tmpPath, s.pathFor(id)); err != nil {
		cleanup()
		return fmt.Errorf("failed to commit message %d: %w", id, err)
	}

	logger.Debugw("Stored to disk", "id", id, "file", filepath.Base(s.pathFor(id)))
	return nil
}

// Get reads <id>.msg. Line breaks are normalized to \n and a trailing
// line break is dropped.
func (s *DiskStore) Get(ctx context.Context, id int32) (string, error) {
	data, err := os.ReadFile(s.pathFor(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", port.ErrMessageNotFound
		}
		return "", fmt.Errorf("failed to read message %d: %w", id, err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.TrimSuffix(text, "\n"), nil
}

// Count returns the number of .msg files in the directory.
func (s *DiskStore) Count(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list messages directory: %w", err)
	}

	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), MessageSuffix) {
			n++
		}
	}
	return n, nil
}

func (s *DiskStore) Close() error {
	return nil
}
