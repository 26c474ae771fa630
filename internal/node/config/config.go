package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	StorageBackendDisk   = "disk"
	StorageBackendMemory = "memory"
	StorageBackendBolt   = "bolt"
	StorageBackendRedis  = "redis"
)

const (
	defaultHealthWarmupMS   = 5000
	defaultHealthIntervalMS = 10000
)

// Config holds family node configuration
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Leader    LeaderConfig    `json:"leader" yaml:"leader"`
	RPC       RPCConfig       `json:"rpc" yaml:"rpc"`
	Storage   StorageConfig   `json:"storage" yaml:"storage"`
	Tolerance ToleranceConfig `json:"tolerance" yaml:"tolerance"`
	Health    HealthConfig    `json:"health" yaml:"health"`
	Report    ReportConfig    `json:"report" yaml:"report"`
	Gossip    GossipConfig    `json:"gossip" yaml:"gossip"`
	Admin     AdminConfig     `json:"admin" yaml:"admin"`
	Logger    logger.Config   `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Host string `json:"host" yaml:"host"`
	// BasePort is the rendezvous port. The node that binds it is the leader.
	BasePort    int `json:"base_port" yaml:"base_port"`
	MaxPortScan int `json:"max_port_scan" yaml:"max_port_scan"`
}

type LeaderConfig struct {
	Port       int `json:"port" yaml:"port"`
	MaxClients int `json:"max_clients" yaml:"max_clients"`
}

type RPCConfig struct {
	// TimeoutMS bounds one peer call. Zero leaves calls bounded by transport failure only.
	TimeoutMS int `json:"timeout_ms" yaml:"timeout_ms"`
}

type StorageConfig struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
	FSync   bool   `json:"fsync" yaml:"fsync"`

	Redis RedisConfig `json:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`
}

type ToleranceConfig struct {
	File string `json:"file" yaml:"file"`
}

type HealthConfig struct {
	WarmupMS   int `json:"warmup_ms" yaml:"warmup_ms"`
	IntervalMS int `json:"interval_ms" yaml:"interval_ms"`
}

type ReportConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

type GossipConfig struct {
	Enabled    bool     `json:"enabled" yaml:"enabled"`
	PortOffset int      `json:"port_offset" yaml:"port_offset"`
	Seeds      []string `json:"seeds" yaml:"seeds"`
}

type AdminConfig struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	PortOffset int  `json:"port_offset" yaml:"port_offset"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			BasePort:    5555,
			MaxPortScan: 100,
		},
		Leader: LeaderConfig{
			Port:       6666,
			MaxClients: 64,
		},
		Storage: StorageConfig{
			Backend: StorageBackendDisk,
			DataDir: "messages",
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "family:message",
			},
		},
		Tolerance: ToleranceConfig{
			File: DefaultToleranceFile,
		},
		Health: HealthConfig{
			WarmupMS:   defaultHealthWarmupMS,
			IntervalMS: defaultHealthIntervalMS,
		},
		Report: ReportConfig{
			Enabled: true,
		},
		Gossip: GossipConfig{
			PortOffset: 3000,
		},
		Admin: AdminConfig{
			PortOffset: 2000,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// RPCTimeout returns the per-call peer RPC timeout, zero when disabled.
func (c *Config) RPCTimeout() time.Duration {
	return time.Duration(c.RPC.TimeoutMS) * time.Millisecond
}

// HealthWarmup returns the delay before the first health round. Negative
// values mean no warmup.
func (c *Config) HealthWarmup() time.Duration {
	return time.Duration(max(c.Health.WarmupMS, 0)) * time.Millisecond
}

// HealthInterval returns the period between health rounds. Non-positive
// values fall back to the default.
func (c *Config) HealthInterval() time.Duration {
	if c.Health.IntervalMS <= 0 {
		return defaultHealthIntervalMS * time.Millisecond
	}
	return time.Duration(c.Health.IntervalMS) * time.Millisecond
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "node", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
