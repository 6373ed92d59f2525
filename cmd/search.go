package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/merdandt/city-snaps/internal/browser"
	"github.com/merdandt/city-snaps/internal/calendar"
	"github.com/merdandt/city-snaps/internal/config"
	"github.com/merdandt/city-snaps/internal/events"
	"github.com/merdandt/city-snaps/internal/history"
	"github.com/merdandt/city-snaps/internal/normalize"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run one custom search and print the results",
	Long:  `Run a single free-text query against the events assistant and print the event cards, calendar, and news blurb to stdout.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("search query must not be empty")
		}

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		client, err := events.New(cfg.Key(), events.Options{
			Model:   cfg.Model,
			Place:   cfg.Place,
			Region:  cfg.Region,
			Domains: cfg.Domains,
		})
		if err != nil {
			if errors.Is(err, events.ErrNoAPIKey) {
				return fmt.Errorf("an API key is required to search: set PPLX_API_KEY or api_key in %s", config.DefaultConfigPath())
			}
			return err
		}

		raw, err := client.Fetch(context.Background(), query)
		if err != nil {
			return err
		}

		res, nerr := normalize.Normalize(raw)
		logOutcome(query, raw, res, nerr)

		if nerr != nil {
			var rec *normalize.RecoveryError
			if errors.As(nerr, &rec) {
				fmt.Printf("Error: %s\n\nRaw response:\n%s\n", rec.Reason, rec.Raw)
			}
			return fmt.Errorf("could not recover structured data from the response")
		}

		printResult(res, query)
		return nil
	},
}

// logOutcome records the query in the history db; best effort.
func logOutcome(query, raw string, res normalize.Result, nerr error) {
	log, err := history.Open(config.HistoryPath())
	if err != nil {
		return
	}
	defer log.Close()

	rec := history.Record{Query: query, Raw: raw, OK: nerr == nil, EventCount: len(res.Events)}
	var rerr *normalize.RecoveryError
	if errors.As(nerr, &rerr) {
		rec.Reason = rerr.Reason
	}
	log.Append(rec)
}

func printResult(res normalize.Result, query string) {
	if len(res.Events) == 0 && res.News == nil {
		fmt.Printf("No events found for %q.\n", query)
		return
	}

	fmt.Printf("Found %d event(s)\n\n", len(res.Events))
	for _, ev := range res.Events {
		source := ev.Source
		if !browser.ValidSource(source) {
			source = "Invalid Source URL"
		}
		fmt.Printf("%s\n  When:   %s\n  Where:  %s\n  %s\n  Source: %s\n\n",
			ev.Title, ev.Dates, ev.Location, ev.Description, source)
	}

	entries := calendar.Project(res.Events, time.Now())
	if len(entries) > 0 {
		fmt.Println("Calendar")
		for _, e := range entries {
			fmt.Printf("  %s  %s — %s\n", e.Date.Format("2006-01-02"), e.Title, e.Location)
		}
		fmt.Println()
	}

	if res.News != nil {
		fmt.Printf("Local News Update\n  %s\n", res.News.Content)
	}
}
