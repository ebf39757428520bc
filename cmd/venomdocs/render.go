package main

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/cobra"

	"venomdocs/internal/docs"
	"venomdocs/internal/errors"
)

func newRenderCmd(c *cli) *cobra.Command {
	var (
		output string
		guid   string
		query  string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the documentation page as static HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := loadRoutes(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			app, err := docs.NewApp(set.Routes, docs.Options{
				Title:   set.Title,
				Version: set.Version,
				Logger:  c.log,
			})
			if err != nil {
				return err
			}
			if guid != "" {
				if err := app.Select(guid); err != nil {
					return err
				}
			}
			if query != "" {
				app.Type(query)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidArgument, "create "+output, err)
				}
				defer f.Close()
				w = f
			}
			bw := bufio.NewWriter(w)
			if err := app.Render(bw); err != nil {
				return err
			}
			if err := bw.Flush(); err != nil {
				return err
			}
			c.log.Infow("page rendered", "routes", app.Routes.Len(), "output", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&guid, "route", "", "guid of the route to select")
	cmd.Flags().StringVar(&query, "query", "", "search query applied to the route list")
	return cmd
}
