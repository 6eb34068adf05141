package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
	console  bool
}

func (o *rootOptions) logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(o.logLevel)
	if err != nil || o.logLevel == "" {
		level = zerolog.InfoLevel
	}

	if o.console {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "aoa-site",
		Short:         "Alpha Omega Artworks studio site",
		Long:          "Serves the Alpha Omega Artworks landing page and relays contact form messages through EmailJS.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.console, "console", false, "human readable log output")

	cmd.AddCommand(newServeCmd(opts), newSendCmd(opts), newWatchCmd(opts))
	return cmd
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
