package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/motifscan/internal/server"
	"github.com/matzehuels/motifscan/pkg/errors"
)

// Cache backends selectable in the config file.
const (
	BackendFile   = "file"
	BackendNone   = "none"
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the optional config file. Command-line flags take precedence.
//
//	[cache]
//	backend = "redis"
//	ttl = "72h"
//	namespace = "lab-a"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":9090"
//	search_timeout = "10s"
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend   string      `toml:"backend"`
	Dir       string      `toml:"dir"`       // file and badger backends
	TTL       Duration    `toml:"ttl"`       // overrides per-kind lifetimes when set
	Namespace string      `toml:"namespace"` // prefixes every key
	Redis     RedisConfig `toml:"redis"`
	Mongo     MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr          string   `toml:"addr"`
	SearchTimeout Duration `toml:"search_timeout"`
	MaxBodyBytes  int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a string such as "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: appName + ":"},
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017", Database: appName, Collection: "cache"},
		},
		Server: ServerConfig{
			Addr:          server.DefaultAddr,
			SearchTimeout: Duration{server.DefaultSearchTimeout},
		},
	}
}

// LoadConfig reads a config file over the defaults. A missing file yields
// the defaults unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if err := errors.ValidatePath(path); err != nil {
		return cfg, err
	}
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		if required {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return DefaultConfig(), nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if pw := os.Getenv("MOTIFSCAN_REDIS_PASSWORD"); pw != "" {
		cfg.Cache.Redis.Password = pw
	}
	return cfg, nil
}

// loadConfig reads the config file named by --config or the default one.
func (c *CLI) loadConfig() (Config, error) {
	if c.configPath != "" {
		return LoadConfig(c.configPath, true)
	}
	dir, err := configDir()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(filepath.Join(dir, configFile), false)
}
