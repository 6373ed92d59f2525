package cmd

import (
	"fmt"
	"os"

	"github.com/merdandt/city-snaps/internal/config"
	"github.com/merdandt/city-snaps/internal/events"
	"github.com/merdandt/city-snaps/internal/history"
	"github.com/merdandt/city-snaps/internal/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "citysnaps",
	Short: "Terminal explorer for local events and news",
	Long:  "citysnaps browses community events and news for your town, answered by a web-search language model and rendered as cards, a calendar, and a news blurb.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("citysnaps %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The TUI works without a key (history browsing, a clear notice);
	// only searches need the credential.
	var client *events.Client
	if key := cfg.Key(); key != "" {
		client, err = events.New(key, events.Options{
			Model:   cfg.Model,
			Place:   cfg.Place,
			Region:  cfg.Region,
			Domains: cfg.Domains,
		})
		if err != nil {
			return fmt.Errorf("creating events client: %w", err)
		}
	}

	log, err := history.Open(config.HistoryPath())
	if err != nil {
		// Non-fatal: run without a query log.
		fmt.Printf("  [warn] query history unavailable: %v\n", err)
		log = nil
	} else {
		defer log.Close()
	}

	return tui.Run(cfg, client, log)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
