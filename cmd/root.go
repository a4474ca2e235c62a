package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Environment keys read after the .env file is loaded.
const (
	envData = "BRACKETSIM_DATA"
	envLog  = "BRACKETSIM_LOG"
)

var (
	logLevel   string // Log verbosity level
	envFile    string // Optional .env file
	configPath string // Optional YAML run config
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "bracketsim",
	Short: "Single-elimination tournament bracket simulator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvFile(envFile); err != nil {
			return err
		}
		level := logLevel
		if !cmd.Flags().Changed("log") {
			if v := os.Getenv(envLog); v != "" {
				level = v
			}
		}
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", level)
		}
		logrus.SetLevel(parsed)
		return nil
	},
}

// loadEnvFile loads KEY=VALUE pairs without overriding the real environment.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up persistent flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before running")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML run configuration; flags set explicitly override it")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(predictorsCmd)
}
