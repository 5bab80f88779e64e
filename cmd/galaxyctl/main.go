package main

import (
	"log/slog"
	"os"

	"stellaris-server/internal/shared/config"
	"stellaris-server/internal/shared/logger"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "galaxyctl",
		Short:        "Generate galaxies and inspect their random streams",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(streamCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and logs to stderr so stdout stays clean
// for command output.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger.New(cfg.Logging, os.Stderr))
	return cfg, nil
}
