package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-rootbrowse/cmd"
	"github.com/mattsolo1/grove-rootbrowse/cmd/config"
	"github.com/mattsolo1/grove-rootbrowse/pkg/service"
)

var (
	svc     *service.Service
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "rootbrowse",
		Short:        "Browse the structure of ROOT files in the terminal",
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cobra.OnInitialize(config.InitConfig)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if used := config.Used(); used != "" {
			logger.WithField("config", used).Debug("loaded config file")
		}

		svc = service.New(&service.Config{
			DataDir:        cfg.DataDir,
			HistoryEnabled: cfg.History.Enabled,
			HistoryLimit:   cfg.History.Limit,
			Links:          cfg.Output.Links,
			Format:         cfg.Output.Format,
			Icons:          cfg.Icons,
			Styles:         cfg.Styles,
		}, logger)
		return nil
	}

	rootCmd.AddCommand(cmd.NewTreeCmd(&svc))
	rootCmd.AddCommand(cmd.NewHistoryCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
