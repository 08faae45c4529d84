package commands

import (
	"os"
	"strings"

	"gistgallery/lib/util/serviceutil"
	"gistgallery/services/gallery/store"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listIn *string

func init() {
	listIn = listCmd.Flags().String("in", "gist_results.csv", "The CSV file to read records from.")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [--in <path/to/input.csv>]",
	Short: "Prints the scraped records as a table.",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := store.Read(*listIn)
		if err != nil {
			serviceutil.Fatal("failed to read results", err)
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)

		t.AppendHeader(table.Row{"Owner", "Title", "Url"})
		for _, r := range records {
			parts := strings.Split(strings.TrimRight(r.Url, "/"), "/")
			owner := ""
			if len(parts) >= 2 {
				owner = parts[len(parts)-2]
			}
			t.AppendRow(table.Row{owner, r.Title, r.Url})
		}
		t.Render()
	},
}
