// Package main provides the betpilot command line tool.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Youngjiloo-101/Betpilot/internal/client"
	"github.com/Youngjiloo-101/Betpilot/internal/config"
	"github.com/Youngjiloo-101/Betpilot/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var (
	configFile string
	log        *logrus.Logger
	cfg        *config.Config
)

// flags resolves global flags, falling back to BETPILOT_* environment variables.
var flags = viper.New()

var rootCmd = &cobra.Command{
	Use:           "betpilot",
	Short:         "Bankroll simulation and betting planning tools",
	Long:          `Runs Monte Carlo bankroll simulations, reverse odds searches, stake plans and scenario comparisons, locally or against a BetPilot server.`,
	Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		format := flags.GetString("output")
		if format != outputText && format != outputJSON {
			return fmt.Errorf("unknown output format %q, want %s or %s", format, outputText, outputJSON)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().String("server", "", "BetPilot server URL; empty runs locally")
	rootCmd.PersistentFlags().StringP("output", "o", outputText, "Output format: text or json")

	flags.SetEnvPrefix("BETPILOT")
	flags.AutomaticEnv()
	_ = flags.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = flags.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	rootCmd.AddCommand(newSimulateCmd(), newOddsCmd(), newPlanCmd(), newWeeklyCmd(), newScenariosCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	cfg = loaded
	log = logger.NewLoggerWithOutput(cfg.App.LogLevel, cfg.App.LogFormat, os.Stderr)
	return nil
}

// remote returns an API client when --server is set.
func remote() (*client.Client, bool) {
	url := flags.GetString("server")
	if url == "" {
		return nil, false
	}
	httpCfg := client.DefaultHTTPClientConfig()
	httpCfg.Timeout = 2 * time.Minute
	return client.New(url, httpCfg, log), true
}

func jsonOutput() bool {
	return flags.GetString("output") == outputJSON
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
