package gist

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gistgallery/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func snippet(owner, id, title string) string {
	span := ""
	if title != "" {
		span = fmt.Sprintf("\n  <span class=\"f6 color-fg-muted\">%s</span>", title)
	}
	return fmt.Sprintf(`<div class="gist-snippet">
  <div class="d-flex">
    <a href="/%[1]s/%[2]s" class="muted-link"></a>
    <a href="/%[1]s/%[2]s"><strong class="css-truncate">game.txt</strong></a>
  </div>%[3]s
</div>`, owner, id, span)
}

func searchPage(snippets ...string) string {
	return fmt.Sprintf(
		`<!DOCTYPE html><html><body><div class="search-results">%s</div></body></html>`,
		strings.Join(snippets, "\n"),
	)
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Options{
		BaseUrl:   server.URL,
		PageDelay: time.Millisecond,
	})
}

func TestSearchPageExtraction(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/gist")
	defer cleanup()

	aid := strings.Repeat("a", 32)
	bid := strings.Repeat("b", 32)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchPage(
			snippet("alice", aid, "  My   Cool\n Game "),
			snippet("bob", bid, ""),
		))
	})

	records, err := client.SearchPage(context.Background(), 1)
	require.NoError(t, err)

	base := client.opts.BaseUrl
	expected := []Record{
		{Url: fmt.Sprintf("%s/alice/%s", base, aid), Title: "My Cool Game"},
		{Url: fmt.Sprintf("%s/bob/%s", base, bid), Title: "Gist by bob"},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}

	urlShape := regexp.MustCompile(
		"^" + regexp.QuoteMeta(base) + `/[^/]+/[a-f0-9]{32}$`,
	)
	for _, r := range records {
		require.Regexp(t, urlShape, r.Url)
	}
}

func TestSearchPageSendsQueryParams(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/gist")
	defer cleanup()

	var gotQuery, gotRef, gotPage string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotRef = r.URL.Query().Get("ref")
		gotPage = r.URL.Query().Get("p")
		fmt.Fprint(w, searchPage())
	})

	_, err := client.SearchPage(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, `"editor.html?hack="`, gotQuery)
	require.Equal(t, "searchresults", gotRef)
	require.Equal(t, "3", gotPage)
}

func TestSearchStopsWhenExhausted(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/gist")
	defer cleanup()

	var requests atomic.Int64
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Query().Get("p") {
		case "1":
			fmt.Fprint(w, searchPage(snippet("alice", strings.Repeat("1", 32), "One")))
		case "2":
			fmt.Fprint(w, searchPage(snippet("bob", strings.Repeat("2", 32), "Two")))
		default:
			// exhausted, no matching anchors at all
			fmt.Fprint(w, searchPage())
		}
	})

	records := client.Search(context.Background())
	require.Len(t, records, 2)
	require.Equal(t, "One", records[0].Title)
	require.Equal(t, "Two", records[1].Title)

	// the page after the last productive one is requested, sees zero
	// matches and terminates the loop
	require.EqualValues(t, 3, requests.Load())
}

func TestSearchRespectsPageCap(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/gist")
	defer cleanup()

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		// every page yields a record, the cap is the only brake
		fmt.Fprint(w, searchPage(snippet(
			fmt.Sprintf("owner%s", r.URL.Query().Get("p")),
			strings.Repeat("c", 32),
			"Endless",
		)))
	}))
	defer server.Close()

	client := NewClient(Options{
		BaseUrl:   server.URL,
		MaxPages:  4,
		PageDelay: time.Millisecond,
	})

	records := client.Search(context.Background())
	require.Len(t, records, 4)
	require.EqualValues(t, 4, requests.Load())
}

func TestSearchKeepsPartialResultsOnTransportError(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/gist")
	defer cleanup()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("p") == "1" {
			fmt.Fprint(w, searchPage(snippet("alice", strings.Repeat("d", 32), "Survivor")))
			return
		}
		// simulate the connection dropping mid-pagination
		if hj, ok := w.(http.Hijacker); ok {
			conn, _, err := hj.Hijack()
			if err == nil {
				conn.Close()
			}
		}
	})

	records := client.Search(context.Background())
	require.Len(t, records, 1)
	require.Equal(t, "Survivor", records[0].Title)
}

func TestSearchPageDedupesWithinPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/gist")
	defer cleanup()

	id := strings.Repeat("e", 32)
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		// the same gist linked twice on one page, different snippets
		fmt.Fprint(w, searchPage(
			snippet("alice", id, "First Seen"),
			snippet("alice", id, "Second Seen"),
		))
	})

	records, err := client.SearchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "First Seen", records[0].Title)
}
