package store

import (
	"encoding/csv"
	"fmt"
	"os"

	"gistgallery/lib/scrapers/gist"
)

// the Fetcher and the Renderer share nothing but this file format:
// UTF-8 CSV, header row, one record per row.
var header = []string{"url", "title"}

func Write(path string, records []gist.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write(header)
	if err != nil {
		return err
	}
	for _, r := range records {
		err = w.Write([]string{r.Url, r.Title})
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func Read(path string) ([]gist.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	if len(rows[0]) != 2 || rows[0][0] != header[0] || rows[0][1] != header[1] {
		return nil, fmt.Errorf("%s: unexpected header %v", path, rows[0])
	}

	records := make([]gist.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, gist.Record{Url: row[0], Title: row[1]})
	}
	return records, nil
}

// Dedupe drops every record whose url was already seen, preserving
// first-seen order. The first-seen title wins on conflicting duplicates.
func Dedupe(records []gist.Record) []gist.Record {
	seen := map[string]bool{}
	out := make([]gist.Record, 0, len(records))
	for _, r := range records {
		if seen[r.Url] {
			continue
		}
		seen[r.Url] = true
		out = append(out, r)
	}
	return out
}
