// Package cmd implements the pokedex command line.
package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pokedex-web/app"
	"pokedex-web/config"
)

var (
	configPath string
	logLevel   string

	logger *zap.Logger
	cfg    *config.Config

	// httpClient is used for catalog API calls; tests replace it
	httpClient *http.Client
	stdout     io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Browse and filter the pokemon catalog",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zapcore.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = loggerConfig(level, cfg.IsProduction()).Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, listCmd, showCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loggerConfig emits JSON in production and colored console output elsewhere
func loggerConfig(level zapcore.Level, production bool) zap.Config {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if production {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig
}

func initializeApp() (*app.App, error) {
	return app.Initialize(cfg, httpClient, logger)
}
