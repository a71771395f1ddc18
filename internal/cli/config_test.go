package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/motifscan/pkg/cache"
	"github.com/matzehuels/motifscan/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "badger"
ttl = "72h"
namespace = "lab-a"

[cache.redis]
addr = "redis:6379"

[server]
addr = ":9090"
search_timeout = "10s"
`)
	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Cache.Backend != BackendBadger || cfg.Cache.TTL.Duration != 72*time.Hour || cfg.Cache.Namespace != "lab-a" {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Cache.Redis.Addr != "redis:6379" || cfg.Cache.Redis.Prefix != "motifscan:" {
		t.Errorf("redis config = %+v, want addr overridden and prefix defaulted", cfg.Cache.Redis)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.SearchTimeout.Duration != 10*time.Second {
		t.Errorf("server config = %+v", cfg.Server)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"UnknownKey", "[cache]\nbakend = \"file\"\n", "unknown keys cache.bakend"},
		{"BadDuration", "[cache]\nttl = \"soon\"\n", "invalid duration"},
		{"Syntax", "[cache\n", "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content), true)
			if !errors.Is(err, errors.ErrCodeInvalidInput) || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig() = %v, want INVALID_INPUT mentioning %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("optional config: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("missing optional config should yield defaults, got %+v", cfg)
	}

	if _, err := LoadConfig(path, true); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("required config = %v, want FILE_NOT_FOUND", err)
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  CacheConfig
		want string
	}{
		{"File", CacheConfig{Backend: BackendFile, Dir: dir}, "*cache.FileCache"},
		{"Default", CacheConfig{Dir: dir}, "*cache.FileCache"},
		{"None", CacheConfig{Backend: BackendNone}, "*cache.NullCache"},
		{"Badger", CacheConfig{Backend: BackendBadger, Dir: filepath.Join(dir, "kv")}, "*cache.BadgerCache"},
		{"TTL", CacheConfig{Backend: BackendFile, Dir: dir, TTL: Duration{time.Hour}}, "*cache.TTLCache"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(ctx, tt.cfg, false)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer c.Close()
			if got := typeName(c); got != tt.want {
				t.Errorf("newCache() = %s, want %s", got, tt.want)
			}
		})
	}

	c, err := newCache(ctx, CacheConfig{Backend: BackendBadger, Dir: filepath.Join(dir, "x")}, true)
	if err != nil || typeName(c) != "*cache.NullCache" {
		t.Errorf("--no-cache should win over the config, got %s %v", typeName(c), err)
	}

	if _, err := newCache(ctx, CacheConfig{Backend: "memcached"}, false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown backend = %v, want INVALID_INPUT", err)
	}

	_, err = newCache(ctx, CacheConfig{Backend: BackendRedis, Redis: RedisConfig{Addr: "127.0.0.1:1"}}, false)
	if err == nil {
		t.Error("unreachable redis should fail")
	}
}

func typeName(c cache.Cache) string {
	return fmt.Sprintf("%T", c)
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if dir, _ := cacheDir(); dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q", dir)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	if dir, _ := configDir(); dir != filepath.Join("/tmp/cfg", appName) {
		t.Errorf("configDir() = %q", dir)
	}
}
