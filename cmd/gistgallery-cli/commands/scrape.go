package commands

import (
	"log/slog"
	"time"

	"gistgallery/lib/configutil"
	"gistgallery/lib/restyutil"
	"gistgallery/lib/scrapers/gist"
	"gistgallery/lib/telemetry"
	"gistgallery/lib/util/serviceutil"
	"gistgallery/services/gallery/store"

	"github.com/spf13/cobra"
)

// policy knobs the search loop runs under, overridable through
// config.json5 next to the binary
type Config struct {
	Query       string `json:"query"`
	RefMarker   string `json:"ref_marker"`
	MaxPages    int    `json:"max_pages"`
	PageDelayMs int    `json:"page_delay_ms"`
}

var scrapeOut *string
var scrapeDebug *bool

func init() {
	scrapeOut = scrapeCmd.Flags().String("out", "gist_results.csv", "The file to write scrape results to.")
	scrapeDebug = scrapeCmd.Flags().Bool("debug", false, "Enable verbose logging and raw HTTP capture.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--out <path/to/output.csv>] [--debug]",
	Short: "Scrapes gist search results for PuzzleScript games and writes them to a CSV file.",
	Run: func(cmd *cobra.Command, args []string) {
		if *scrapeDebug {
			telemetry.InitSlog(true)
		}

		cfg, err := configutil.ReadConfigOrDefault("config.json5", Config{
			MaxPages:    15,
			PageDelayMs: 500,
		})
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		client := gist.NewClient(gist.Options{
			Query:     cfg.Query,
			RefMarker: cfg.RefMarker,
			MaxPages:  cfg.MaxPages,
			PageDelay: time.Duration(cfg.PageDelayMs) * time.Millisecond,
		})
		if *scrapeDebug {
			client.SetInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/gist"))
		}

		t1 := time.Now()
		records := store.Dedupe(client.Search(cmd.Context()))
		t2 := time.Now()

		slog.Info("scraping done", "gists", len(records), "seconds", t2.Sub(t1).Seconds())

		err = store.Write(*scrapeOut, records)
		if err != nil {
			serviceutil.Fatal("failed to write results", err)
		}
		slog.Info("results written", "path", *scrapeOut)
	},
}
