package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"venomdocs/internal/docs"
	"venomdocs/internal/ui"
)

func newTUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the documentation in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := loadRoutes(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}

			// stderr belongs to the terminal UI; only --debug logs.
			log := zap.NewNop()
			if c.cfg.Debug {
				log = c.log.Desugar()
			}

			d, err := docs.NewApp(set.Routes, docs.Options{
				Title:   set.Title,
				Version: set.Version,
				Logger:  log.Sugar(),
			})
			if err != nil {
				return err
			}
			title := set.Title
			if title == "" {
				title = "venomdocs"
			}
			return ui.NewApp(d, title, log).Run()
		},
	}
}
