package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"venomdocs/internal/config"
	"venomdocs/internal/errors"
	applog "venomdocs/internal/log"
)

// cli carries what the root command resolves before any subcommand runs.
type cli struct {
	v      *viper.Viper
	cfg    config.Config
	log    *zap.SugaredLogger
	closer func()
}

func newCLI() *cli {
	return &cli{v: config.NewViper(), log: applog.Nop(), closer: func() {}}
}

func (c *cli) close() {
	c.closer()
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "venomdocs",
		Short: "Browse API route documentation in a browser or terminal",
		Long: `venomdocs renders the documentation of an API's routes: a searchable
route list and a detail pane with the URL, header, query and body parameters
of the selected route.

Routes come from exactly one source: an OpenAPI document (--spec-url or
--spec-file) or a route document published by the API itself (--routes-file
or --routes-url). Every flag can also be set through a VENOMDOCS_* environment
variable or a config file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}
	root.SetVersionTemplate(`{{printf "venomdocs version %s\n" .Version}}`)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewConfigError("invalid flags", err)
	})

	flags := root.PersistentFlags()
	flags.String(config.KeyConfig, "", "config file (yaml, json or toml)")
	flags.String(config.KeySpecURL, "", "OpenAPI document URL (http/https)")
	flags.String(config.KeySpecFile, "", "path to a local OpenAPI document")
	flags.String(config.KeyRoutesFile, "", "path to a route document (.json or .yaml)")
	flags.String(config.KeyRoutesURL, "", "URL of a route document")
	flags.String(config.KeyVersionPrefix, "", "API version whose /api/v<version> prefix is hidden in paths")
	flags.String(config.KeyTitle, "", "page title")
	flags.String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.String(config.KeyLogFormat, "console", "log format (json, console)")
	flags.Bool(config.KeyDebug, false, "write debug logs to "+applog.DebugFile)

	root.AddCommand(newServeCmd(c))
	root.AddCommand(newTUICmd(c))
	root.AddCommand(newRenderCmd(c))
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	if err := config.BindFlags(c.v, cmd.Flags()); err != nil {
		return errors.NewConfigError("bind flags", err)
	}
	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}
	c.cfg = cfg

	log, closer, err := applog.Open(cfg.LogLevel, cfg.LogFormat, cfg.Debug, os.Stderr)
	if err != nil {
		return errors.NewConfigError("open log", err)
	}
	c.log = log
	c.closer = closer
	kind, location := cfg.Source()
	c.log.Debugw("configuration loaded", "source", kind, "location", location)
	return nil
}
