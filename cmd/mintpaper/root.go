package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/undefinedmint/mintpaper"
)

// cli carries the state shared by every subcommand once the persistent
// flags are parsed.
type cli struct {
	configPath string
	logLevel   string
	pretty     bool

	cfg mintpaper.SiteConfig
	log zerolog.Logger
}

func newRootCmd(ver string) *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:          "mintpaper",
		Short:        "A personal blog engine",
		Long:         "mintpaper serves a paginated, tag-indexed blog backed by SQLite.",
		Version:      ver,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", mintpaper.EnvOr("MINTPAPER_CONFIG", "mintpaper.yaml"), "path to the site config file")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (overrides the config file)")
	cmd.PersistentFlags().BoolVar(&c.pretty, "pretty", isTerminal(), "human-readable console logs")

	cmd.AddCommand(
		newServeCmd(c),
		newImportCmd(c),
		newInitCmd(c),
		newVersionCmd(ver),
	)
	return cmd
}

// setup loads the config and builds the logger.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := mintpaper.LoadConfig(c.configPath)
	if err != nil {
		log := mintpaper.NewLogger(cmd.ErrOrStderr(), zerolog.LevelErrorValue, c.pretty)
		log.Error().Err(err).Msg("load config")
		return err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	c.cfg = cfg
	c.log = mintpaper.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, c.pretty)
	c.log.Debug().Str("command", cmd.Name()).Str("config", c.configPath).Msg("command started")
	return nil
}

func (c *cli) fail(err error, msg string) error {
	c.log.Error().Err(err).Msg(msg)
	return err
}

func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mintpaper version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mintpaper %s\n", ver)
		},
	}
}

// isTerminal reports whether stderr is attached to a terminal.
func isTerminal() bool {
	fi, err := os.Stderr.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
