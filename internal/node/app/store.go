package app

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthanhphan/go-disk-register/internal/node/adapter/outbound/boltstore"
	"github.com/anthanhphan/go-disk-register/internal/node/adapter/outbound/diskstore"
	"github.com/anthanhphan/go-disk-register/internal/node/adapter/outbound/memstore"
	"github.com/anthanhphan/go-disk-register/internal/node/adapter/outbound/redisstore"
	"github.com/anthanhphan/go-disk-register/internal/node/config"
	"github.com/anthanhphan/go-disk-register/internal/node/port"
)

const portPlaceholder = "{port}"

// newMessageStore opens the configured backend. A "{port}" in the data dir
// or the redis key prefix is replaced with the bound RPC port, giving each
// node on a host its own namespace. bbolt holds an exclusive file lock, so a
// bolt data dir without "{port}" gets a per-port subdirectory.
func newMessageStore(cfg config.StorageConfig, boundPort int) (port.MessageStore, error) {
	p := strconv.Itoa(boundPort)
	if cfg.Backend == config.StorageBackendBolt && !strings.Contains(cfg.DataDir, portPlaceholder) {
		cfg.DataDir = filepath.Join(cfg.DataDir, portPlaceholder)
	}
	cfg.DataDir = strings.ReplaceAll(cfg.DataDir, portPlaceholder, p)
	cfg.Redis.KeyPrefix = strings.ReplaceAll(cfg.Redis.KeyPrefix, portPlaceholder, p)

	switch cfg.Backend {
	case "", config.StorageBackendDisk:
		return diskstore.NewDiskStore(cfg)
	case config.StorageBackendMemory:
		return memstore.NewMemoryStore(), nil
	case config.StorageBackendBolt:
		return boltstore.NewBoltStore(cfg)
	case config.StorageBackendRedis:
		return redisstore.NewRedisStore(cfg.Redis), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
