package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fittrack/internal/config"
	"fittrack/internal/repository/postgres"

	"github.com/jmoiron/sqlx"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Personal fitness tracking API server",
	Long: `FitTrack is a personal fitness tracking server: exercise catalog,
workout routines, completed-workout logging, progress reports, workout
challenges and reminders behind a JSON API.`,
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(challengesCmd)
	rootCmd.AddCommand(remindCmd)
}

// loadConfigAndDB is the shared bootstrap for every subcommand.
func loadConfigAndDB() (config.Config, *sqlx.DB, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	db, err := postgres.Connect(cfg.Database.DSN)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}
