package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/anthanhphan/go-disk-register/internal/node/config"
	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 256

// RedisStore implements port.MessageStore with one redis string per id
// under <prefix>:<id>.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ port.MessageStore = (*RedisStore)(nil)

// NewRedisStore connects lazily; the first command surfaces connection errors.
func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisStoreWithClient(client, cfg.KeyPrefix)
}

func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "message"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id int32) string {
	return s.prefix + ":" + strconv.Itoa(int(id))
}

func (s *RedisStore) Put(ctx context.Context, id int32, text string) error {
	if err := s.client.Set(ctx, s.key(id), text, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key(id), err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id int32) (string, error) {
	text, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", port.ErrMessageNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", s.key(id), err)
	}
	return text, nil
}

func (s *RedisStore) Count(ctx context.Context) (int, error) {
	n := 0
	iter := s.client.Scan(ctx, 0, s.prefix+":*", scanBatch).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan %s: %w", s.prefix, err)
	}
	return n, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
