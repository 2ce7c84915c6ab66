package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/undefinedmint/mintpaper"
	"github.com/undefinedmint/mintpaper/views"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	var staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := views.New(c.cfg)
			if err != nil {
				return c.fail(err, "parse templates")
			}
			app := mintpaper.New(c.cfg, v,
				mintpaper.WithLogger(c.log),
				mintpaper.WithStaticDir(staticDir),
			)
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- app.Start() }()

			select {
			case err := <-errc:
				if err != nil {
					return c.fail(err, "server stopped")
				}
				return nil
			case <-ctx.Done():
			}

			c.log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := app.Shutdown(shutdownCtx); err != nil {
				return c.fail(err, "shutdown")
			}
			return <-errc
		},
	}
	cmd.Flags().StringVar(&staticDir, "static", "public", "directory served under /public")
	return cmd
}
