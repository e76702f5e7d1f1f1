package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/postboard/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != backendFile || cfg.Server.Addr != defaultServerAddr {
		t.Errorf("defaults = %+v", cfg)
	}

	if _, err := LoadConfig(path, true); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("required missing config: err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[canvas]
width = 1024.0
height = 768.0

[cache]
backend = "redis"
key_prefix = "staging:"

[cache.redis]
addr = "cache:6379"
db = 2

[server]
addr = "127.0.0.1:9000"
`)

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Canvas.Width != 1024 || cfg.Canvas.Height != 768 {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Cache.Backend != backendRedis || cfg.Cache.Redis.Addr != "cache:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.KeyPrefix != "staging:" {
		t.Errorf("key prefix = %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[canvas\nwidth = 1", errors.ErrCodeInvalidFormat},
		{"unknown key", "[canvas]\ndepth = 3", errors.ErrCodeInvalidFormat},
		{"unknown backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidInput},
		{"negative canvas", "[canvas]\nwidth = -5.0", errors.ErrCodeInvalidCanvas},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.toml", tt.content)
			_, err := LoadConfig(path, true)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestConfigEncode(t *testing.T) {
	data, err := defaultConfig().Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	for _, want := range []string{"[cache]", `backend = "file"`, "[server]"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded config missing %q:\n%s", want, data)
		}
	}

	path := writeFile(t, t.TempDir(), "roundtrip.toml", string(data))
	if _, err := LoadConfig(path, true); err != nil {
		t.Errorf("encoded config does not load: %v", err)
	}
}

func TestConfigPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg, err := configPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-config", appName, "config.toml"); cfg != want {
		t.Errorf("configPath() = %q, want %q", cfg, want)
	}

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}
