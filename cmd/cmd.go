package cmd

import (
	"context"
	"log/slog"

	"github.com/gaze-network/presale-ledger/internal/config"
	"github.com/gaze-network/presale-ledger/pkg/logger"
	"github.com/gaze-network/presale-ledger/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

var cmd = &cobra.Command{
	Use:  "presale",
	Long: `Tiered presale ledger: sells a fixed asset supply across ascending price tiers and distributes it on claim`,
}

func init() {
	var configFile string

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g.  `./config.yaml`")

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		// Initialize configuration
		config := config.Parse(configFile)

		// Initialize logger
		if err := logger.Init(config.Logger); err != nil {
			logger.Panic("Failed to initialize logger: %v", slogx.Error(err), slog.Any("config", config.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	// Register sub-commands
	cmd.AddCommand(
		NewVersionCommand(),
		NewRunCommand(),
		NewMigrateCommand(),
		NewExportCommand(),
	)

	// Execute command
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Panic("Failed to execute root command", slogx.Error(err))
	}
}
