package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/internal/server"
	"github.com/matzehuels/glyphgrid/pkg/cache"
)

// serveCommand creates the serve command running the HTTP rendering service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, backend string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve grid renderings over HTTP",
		Long: `Run an HTTP service exposing GET /render?url=...&format=bordered|plain|json
and GET /healthz.

Fetched documents are kept in an in-memory cache unless the config file or
--cache selects another backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if backend == "" && (cfg.Cache.Backend == "" || cfg.Cache.Backend == cache.BackendNone) {
				backend = cache.BackendMemory
			}

			runner, store, err := c.newRunner(ctx, cfg, backend, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			logger.Info("Starting server", "addr", addr, "cache", cfg.Cache.Backend)
			srv := server.New(runner, server.Options{DefaultURL: cfg.URL, Logger: logger})
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&backend, "cache", "", "cache backend: none, file, memory, redis, mongo (default memory)")
	_ = cmd.RegisterFlagCompletionFunc("cache", completeCacheBackends)

	return cmd
}
