// Package cli implements the postboard command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/postboard/pkg/board"
	"github.com/matzehuels/postboard/pkg/buildinfo"
	"github.com/matzehuels/postboard/pkg/cache"
	"github.com/matzehuels/postboard/pkg/observability"
	"github.com/matzehuels/postboard/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "postboard"

	// Cache backends accepted in the config file.
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default config file location.
	ConfigPath string

	cfg *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Postboard places sticky notes on paged message boards",
		Long: `Postboard computes where a new sticky note goes on a paged message board.

Notes are packed left to right and top to bottom without overlapping; when a
page is full the note moves to the next page. Snapshots of a board are plain
JSON files, so every command works offline and can be piped together.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: $XDG_CONFIG_HOME/postboard/config.toml)")

	root.AddCommand(c.placeCommand())
	root.AddCommand(c.pagesCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads the config file once per process.
func (c *CLI) config() (*Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := c.ConfigPath
	if path == "" {
		p, err := configPath()
		if err != nil {
			return nil, fmt.Errorf("get config path: %w", err)
		}
		path = p
	}
	cfg, err := LoadConfig(path, c.ConfigPath != "")
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, with the cache backend
// named in the config file.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	observability.SetPlacementHooks(logHooks{c.Logger})
	observability.SetCacheHooks(logHooks{c.Logger})

	store, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.KeyPrefix)
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Cache.Redis.Addr, err)
		}
		c.Logger.Debug("using redis cache", "addr", cfg.Cache.Redis.Addr)
		return rc, nil
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				c.Logger.Warn("no cache directory, caching disabled", "err", err)
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/postboard/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the config file path using XDG standard
// (~/.config/postboard/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// =============================================================================
// Snapshot Helpers
// =============================================================================

// loadSnapshot reads the snapshot named on the command line; "-" is stdin.
func loadSnapshot(path string) (*board.Snapshot, error) {
	snap, err := pipeline.LoadSnapshot(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return snap, nil
}

// canvasFlags resolves --width/--height. An explicit flag wins, then the
// canvas recorded in the snapshot, then the config file. Zero falls through
// to the pipeline defaults.
func (c *CLI) canvasFlags(snap *board.Snapshot, width, height float64) (float64, float64, error) {
	cfg, err := c.config()
	if err != nil {
		return 0, 0, err
	}
	if snap != nil && snap.Board.Canvas != nil {
		return width, height, nil
	}
	if width == 0 {
		width = cfg.Canvas.Width
	}
	if height == 0 {
		height = cfg.Canvas.Height
	}
	return width, height, nil
}
