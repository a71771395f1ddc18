package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/motifscan/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		Long: `Serve the search API over HTTP until interrupted.

Searches share the configured cache with the CLI. Every search is bounded by
--timeout; requests may ask for less.`,
		Example: `  motifscan serve --addr :9090
  curl -s localhost:9090/v1/search -d '{"network":{"edges":[...]},"pattern":"0-1:E,1-2:E,2-0:E"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Server.SearchTimeout.Duration = timeout
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Config{
				Addr:          cfg.Server.Addr,
				SearchTimeout: cfg.Server.SearchTimeout.Duration,
				MaxBodyBytes:  cfg.Server.MaxBodyBytes,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultSearchTimeout, "upper bound for every search")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
