package render

import (
	"fmt"
	"os"
	"strings"

	"gistgallery/lib/scrapers/gist"
	"gistgallery/services/gallery/store"
)

const PlayerBaseUrl = "https://darabos.github.io/PuzzleScriptNext/src/play.html"

const pageHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>PuzzleScript Games</title>
    <style>
        body { font-family: sans-serif; max-width: 800px; margin: 40px auto; padding: 0 20px; }
        ul { line-height: 1.8; }
        a { color: #0066cc; }
    </style>
</head>
<body>
    <h1>PuzzleScript Games shared in Gists</h1>
    <ul>
`

const pageFoot = `    </ul>
</body>
</html>
`

// escapeText escapes the three HTML-sensitive characters by literal
// substitution. Ampersands go first so the entities the other two
// introduce don't get escaped a second time.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// Page renders the full gallery document, one list item per record in
// input order. The output is deterministic for a given input.
func Page(records []gist.Record) (string, error) {
	var b strings.Builder
	b.WriteString(pageHead)

	for _, r := range records {
		// record urls always end in /<owner>/<id>, the renderer
		// trusts that shape rather than re-parsing the id format
		parts := strings.Split(strings.TrimRight(r.Url, "/"), "/")
		if len(parts) < 2 {
			return "", fmt.Errorf("malformed record url: %q", r.Url)
		}
		id := parts[len(parts)-1]
		owner := parts[len(parts)-2]

		playUrl := fmt.Sprintf("%s?p=%s", PlayerBaseUrl, id)
		label := escapeText(fmt.Sprintf("%s by %s", r.Title, owner))
		fmt.Fprintf(&b, "        <li><a href=\"%s\">%s</a></li>\n", playUrl, label)
	}

	b.WriteString(pageFoot)
	return b.String(), nil
}

// File reads the stored records and writes the rendered gallery,
// overwriting any previous output.
func File(csvPath, htmlPath string) error {
	records, err := store.Read(csvPath)
	if err != nil {
		return err
	}
	page, err := Page(records)
	if err != nil {
		return err
	}
	return os.WriteFile(htmlPath, []byte(page), 0644)
}
