package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"venomdocs/internal/config"
	"venomdocs/internal/server"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the documentation page over HTTP",
		Long: `Serve the documentation page and a JSON route listing.

  GET /                    page with no route selected (?q= filters the list)
  GET /routes/{guid}       page with one route selected
  GET /api/routes          route listing
  GET /api/routes/{guid}   one route document
  GET /healthz             liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			set, err := loadRoutes(ctx, c.cfg)
			if err != nil {
				return err
			}
			srv, err := server.New(server.Config{
				Addr:    c.cfg.Addr,
				Title:   set.Title,
				Version: set.Version,
				Routes:  set.Routes,
				Logger:  c.log.Desugar(),
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().String(config.KeyAddr, ":8080", "listen address")
	return cmd
}
