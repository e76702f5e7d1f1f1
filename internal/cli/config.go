package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/postboard/pkg/cache"
	perrors "github.com/matzehuels/postboard/pkg/errors"
	"github.com/matzehuels/postboard/pkg/layout"
)

// Config is the on-disk configuration. Zero values fall through to the
// built-in defaults; command-line flags override everything here.
type Config struct {
	Canvas layout.Canvas `toml:"canvas"`
	Cache  CacheConfig   `toml:"cache"`
	Server ServerConfig  `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend   string             `toml:"backend"`
	Dir       string             `toml:"dir"`
	// KeyPrefix namespaces every key, for deployments sharing one Redis.
	KeyPrefix string             `toml:"key_prefix"`
	Redis     cache.RedisOptions `toml:"redis"`
}

// ServerConfig configures "postboard serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

const defaultServerAddr = ":8080"

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: backendFile,
			Redis:   cache.RedisOptions{Addr: "localhost:6379"},
		},
		Server: ServerConfig{Addr: defaultServerAddr},
	}
}

// LoadConfig reads the TOML file at path over the defaults. A missing file is
// not an error unless required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the backend name and any canvas override.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	case "":
		c.Cache.Backend = backendFile
	default:
		return perrors.New(perrors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis, or none)", c.Cache.Backend)
	}
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return perrors.New(perrors.ErrCodeInvalidCanvas, "canvas must not be negative, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultServerAddr
	}
	return nil
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Commands
// =============================================================================

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.ConfigPath
			if path == "" {
				p, err := configPath()
				if err != nil {
					return fmt.Errorf("get config path: %w", err)
				}
				path = p
			}
			fmt.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	})

	return cmd
}
