package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/postboard/internal/server"
	"github.com/matzehuels/postboard/pkg/observability"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placement API over HTTP",
		Long: `Serve the placement API over HTTP.

Requests carry the board snapshot they are computed against; the server keeps
no board state. Results are cached with the backend from the config file, so
several instances can share a Redis cache.

Endpoints:
  GET    /healthz
  POST   /v1/place
  POST   /v1/pages
  POST   /v1/preview?page=N
  DELETE /v1/cache/{board}/{page}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config or :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	observability.SetHTTPHooks(logHooks{c.Logger})

	printInfo("Serving on %s", StyleNumber.Render(addr))
	if err := server.New(runner, c.Logger).Run(withLogger(ctx, c.Logger), addr); err != nil {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	printSuccess("Server stopped")
	return nil
}
