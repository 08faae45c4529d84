package commands

import (
	"log/slog"

	"gistgallery/lib/util/serviceutil"
	"gistgallery/services/gallery/render"

	"github.com/spf13/cobra"
)

var renderIn *string
var renderOut *string

func init() {
	renderIn = renderCmd.Flags().String("in", "gist_results.csv", "The CSV file to read records from.")
	renderOut = renderCmd.Flags().String("out", "games.html", "The HTML file to write the gallery to.")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [--in <path/to/input.csv>] [--out <path/to/output.html>]",
	Short: "Renders scraped records into a static HTML gallery.",
	Run: func(cmd *cobra.Command, args []string) {
		err := render.File(*renderIn, *renderOut)
		if err != nil {
			serviceutil.Fatal("failed to render gallery", err)
		}
		slog.Info("gallery written", "path", *renderOut)
	},
}
