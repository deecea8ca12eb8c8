package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/buildinfo"
	"github.com/matzehuels/glyphgrid/pkg/cache"
	"github.com/matzehuels/glyphgrid/pkg/config"
	"github.com/matzehuels/glyphgrid/pkg/fetch"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = config.AppName
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

	// Out receives rendered grids and status lines. Defaults to os.Stdout.
	Out io.Writer

	// configPath is bound to the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Glyphgrid renders coordinate tables as character grids",
		Long:         `Glyphgrid fetches a published HTML document, reads (x, character, y) rows from its tables and prints the characters as a grid with y=0 at the bottom.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/glyphgrid/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads the config file selected by --config.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.configPath != "" {
		c.Logger.Debug("Loaded config", "path", c.configPath)
	}
	return cfg, nil
}

// openCache opens the backend named in cfg. A non-empty backend overrides
// the file setting.
func openCache(ctx context.Context, cfg *config.Config, backend string) (cache.Cache, error) {
	if backend != "" {
		cfg.Cache.Backend = backend
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	opts, err := cfg.CacheOptions()
	if err != nil {
		return nil, err
	}
	return cache.Open(ctx, opts)
}

// newRunner builds a pipeline runner over a fetch client configured from cfg.
// The caller must close the returned cache.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, backend string, logger *log.Logger) (*pipeline.Runner, cache.Cache, error) {
	store, err := openCache(ctx, cfg, backend)
	if err != nil {
		return nil, nil, err
	}

	fopts := cfg.FetchOptions()
	fopts.Cache = store
	fopts.Logger = logger
	return pipeline.NewRunner(fetch.NewClient(fopts), logger), store, nil
}

// out returns the writer for command output.
func (c *CLI) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
