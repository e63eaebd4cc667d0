// Package cli implements the wopp command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wopp/internal/config"
	"github.com/matzehuels/wopp/pkg/browser"
	"github.com/matzehuels/wopp/pkg/buildinfo"
	"github.com/matzehuels/wopp/pkg/cache"
	"github.com/matzehuels/wopp/pkg/integrations/pypi"
)

const (
	// appName is the application name used for display.
	appName = "wopp"

	// memoryEntries bounds the in-process cache tier.
	memoryEntries = 64
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Output streams. Tests replace them.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Opener launches URLs for --docs and --open.
	Opener browser.Opener

	// Config controls where settings are loaded from.
	Config config.Options

	// Copy writes text to the clipboard for --copy.
	Copy func(string) error

	// Interactive reports whether prompts may be shown. Nil detects a TTY.
	Interactive func() bool

	cfg config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Opener: browser.System{},
		Copy:   clipboard.WriteAll,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.queryCommand()
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		c.cfg = cfg
		c.registerHooks()
		c.Logger.Debug("configuration loaded", "req_dir", cfg.ReqDir, "req_pattern", cfg.ReqPattern, "cache_ttl", cfg.CacheTTL)
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache builds the response cache for the current configuration:
// nothing with --no-cache, Redis when redis_url is set, otherwise the file
// cache. Any backend is fronted by an in-memory LRU.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache || c.cfg.NoCache {
		return cache.NewNullCache()
	}

	var backend cache.Cache
	if c.cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, c.cfg.RedisURL, appName+":")
		if err != nil {
			c.Logger.Warn("Redis cache unavailable, using file cache", "err", err)
		} else {
			backend = rc
		}
	}
	if backend == nil {
		fc, err := cache.NewFileCache("")
		if err != nil {
			c.Logger.Warn("File cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		backend = fc
	}

	mc, err := cache.NewMemoryCache(memoryEntries, backend, c.cfg.CacheTTL)
	if err != nil {
		return backend
	}
	return mc
}

// newPyPIClient creates a PyPI client wired to the configured cache,
// timeout and mirror. The returned func releases the cache.
func (c *CLI) newPyPIClient(ctx context.Context, noCache bool) (*pypi.Client, func()) {
	backend := c.newCache(ctx, noCache)
	client := pypi.NewClient(backend, c.cfg.CacheTTL)
	client.SetBaseURL(c.cfg.PyPIURL)
	client.SetTimeout(c.cfg.Timeout)
	client.SetLogger(c.Logger)
	return client, func() { _ = backend.Close() }
}
