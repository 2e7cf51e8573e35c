package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	takeoff "github.com/Clayne666/framing-takeoff-toolkit-sub000"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/aivision"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/classify"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/render"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "takeoff",
	Short: "Framing takeoff extraction from construction plan PDFs",
	Long: `Takeoff reconstructs framing quantities from scanned construction
plan sets: wall schedules, door/window schedules, general-notes framing
specifications, dimensions, and plan callouts.

Configuration is read from ./config.yaml or ~/.takeoff/config.yaml and
from TAKEOFF_* environment variables (e.g. TAKEOFF_OPENAI_API_KEY).`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.takeoff/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "debug logging")

	rootCmd.AddCommand(scanCmd, serveCmd, watchCmd, versionCmd)
}

func initConfig() {
	viper.SetDefault("model", "gpt-4o")
	viper.SetDefault("dpi", 150)
	viper.SetDefault("vision", false)
	viper.SetDefault("rules", "")
	viper.SetDefault("store", "takeoff.db")
	viper.SetDefault("addr", ":8080")
	viper.SetDefault("workers", 2)

	viper.SetEnvPrefix("TAKEOFF")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.takeoff")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "Error reading config:", err)
			os.Exit(1)
		}
	}
}

// newLogger builds the CLI's logger; the library itself never logs.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newScanner assembles a scanner from the active configuration. The
// path binds the vision page imager when vision is enabled.
func newScanner(path string, log *slog.Logger) (*takeoff.Scanner, error) {
	scanner := takeoff.New()

	if rulesFile := viper.GetString("rules"); rulesFile != "" {
		rules, err := classify.LoadRulesFile(rulesFile)
		if err != nil {
			return nil, fmt.Errorf("loading classifier rules: %w", err)
		}
		scanner = scanner.WithRules(rules)
		log.Debug("classifier rules loaded", "file", rulesFile, "rules", len(rules))
	}

	if viper.GetBool("vision") && path != "" {
		apiKey := viper.GetString("openai_api_key")
		if apiKey == "" {
			return nil, fmt.Errorf("vision requires openai_api_key (TAKEOFF_OPENAI_API_KEY)")
		}
		vision := aivision.New(aivision.Config{
			APIKey:  apiKey,
			BaseURL: viper.GetString("openai_base_url"),
			Model:   viper.GetString("model"),
		})
		pager := render.New(render.Config{DPI: viper.GetInt("dpi")}).ForFile(path)
		scanner = scanner.WithVision(vision, pager)
		log.Debug("vision enabled", "model", viper.GetString("model"), "dpi", viper.GetInt("dpi"))
	}

	return scanner, nil
}
