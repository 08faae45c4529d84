package gist

import (
	"fmt"

	"gistgallery/lib/htmlutil"
	"gistgallery/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// how far up from the file anchor to look for the snippet container
// holding the description span
const maxTitleClimb = 4

// snippetTitle recovers the gist description shown under a search
// result. The description lives in a muted span in the same result
// snippet as the anchor wrapping the <strong> filename, so start from
// that anchor and climb until a span turns up.
func snippetTitle(doc *goquery.Document, owner, id string) (string, bool) {
	anchor := doc.
		Find(fmt.Sprintf(`a[href="/%s/%s"]`, owner, id)).
		FilterFunction(func(_ int, a *goquery.Selection) bool {
			return a.ChildrenFiltered("strong").Length() > 0
		}).
		First()
	if anchor.Length() == 0 {
		return "", false
	}

	node := anchor.Parent()
	for depth := 0; depth < maxTitleClimb && node.Length() > 0; depth++ {
		span := node.Find("span.f6.color-fg-muted").First()
		if span.Length() > 0 {
			title := textutil.RemoveNonPrintable(
				textutil.CollapseWhitespace(htmlutil.GetText(span.Nodes[0])),
			)
			if title != "" {
				return title, true
			}
		}
		node = node.Parent()
	}

	return "", false
}
