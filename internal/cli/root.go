// Package cli wires configuration, acquisition and rendering into the
// tidetracker command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcary/tide-tracker/internal/cache"
	"github.com/lcary/tide-tracker/internal/config"
	"github.com/lcary/tide-tracker/internal/station"
	"github.com/lcary/tide-tracker/internal/tide"
	"github.com/lcary/tide-tracker/pkg/http/client"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tidetracker",
	Short: "Render a 24-hour tide curve for one NOAA station",
	Long: "tidetracker fetches tide predictions for a single NOAA station and\n" +
		"renders a 24-hour curve (12h past, 12h future) to an e-paper panel or\n" +
		"the terminal. It runs once and exits; schedule it with cron or a\n" +
		"systemd timer.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg != nil {
			return nil
		}

		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if logLevel != "" {
			loaded.Logging.Level = logLevel
		}
		loaded.InitializeLogging()

		cfg = loaded
		return nil
	},
	// Running the bare binary renders: that is the cron/systemd use case.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to tide-config.toml (defaults to ./tide-config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level defined in config")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func getConfig() *config.Config {
	if cfg == nil {
		panic("configuration not loaded; PersistentPreRunE not executed")
	}
	return cfg
}

// newService assembles the acquisition pipeline from configuration.
func newService(c *config.Config) *tide.Service {
	httpClient := client.New(client.Options{
		BaseURL: c.NOAA.BaseURL,
		Timeout: c.NOAA.Timeout,
	})
	return tide.NewService(
		cache.NewStore(c.Cache.Path, c.Cache.TTL),
		station.NewClient(httpClient, c.Station.ID),
	)
}
