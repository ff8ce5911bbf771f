// Package cmd contains the CLI commands: the web client, its terminal
// views and the development backend.
package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"analysis-web/apiclient"
	"analysis-web/config"
	"analysis-web/logger"
	"analysis-web/terminal"
)

// ErrViewFailed is returned when a terminal view settles in its error
// state; the message has already been printed.
var ErrViewFailed = errors.New("view ended in error state")

var (
	cfgFile   string
	colorMode string
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "analysis-web",
	Short: "Web client for the text analysis service",
	Long: `analysis-web submits text to the analysis backend and browses stored analyses.

Example usage:
  analysis-web serve                      # Web UI on :8090
  analysis-web analyze "Some text"        # Analyze text in the terminal
  analysis-web search finance             # Search analyses by topic
  analysis-web stub-backend               # Local backend on :8000`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		return logger.Init(cfg.Log.Level, cfg.Log.File)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always or never")
}

func newClient() *apiclient.Client {
	return apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithLogger(logger.Log),
	)
}

func newPrinter(cmd *cobra.Command) (*terminal.Printer, error) {
	mode, err := terminal.ParseColorMode(colorMode)
	if err != nil {
		return nil, err
	}
	return terminal.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), terminal.ResolveColors(mode)), nil
}
