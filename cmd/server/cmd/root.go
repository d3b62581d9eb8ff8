package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"protest-tracker/config"
	"protest-tracker/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envFile  string
	logLevel string

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "server",
		Short: "Protest tracker API server",
		Long: `Protest tracker API server.

Organizers register, log in and manage protest listings; the public lists
protests and toggles likes and follows. Configuration is read from the
environment, optionally seeded from a .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load %s: %w", envFile, err)
			}

			cfg = config.LoadConfig()
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if err := logger.SetLevel(cfg.Log.Level); err != nil {
				logger.L.Warn("Unknown log level, keeping info", zap.String("level", cfg.Log.Level))
			}
			return nil
		},
		// 未指定子命令時直接啟動伺服器
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
)

// Execute runs the root command; called once by main.
func Execute() {
	defer logger.L.Sync() //nolint:errcheck
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error) (default: LOG_LEVEL or info)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
