package gist

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"gistgallery/lib/restyutil"
	"gistgallery/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/gist")

const DefaultBaseUrl = "https://gist.github.com"

// Record is one discovered gist: the canonical gist url and a
// human-readable title.
type Record struct {
	Url   string
	Title string
}

type Options struct {
	// defaults to DefaultBaseUrl, overridable so tests can point
	// the client at a fake server
	BaseUrl string
	// the search string sent as the `q` query parameter
	Query string
	// the `ref` query parameter the search endpoint expects
	RefMarker string
	// hard cap on the number of result pages fetched in one run
	MaxPages int
	// politeness delay between consecutive page requests
	PageDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.BaseUrl == "" {
		o.BaseUrl = DefaultBaseUrl
	}
	if o.Query == "" {
		o.Query = `"editor.html?hack="`
	}
	if o.RefMarker == "" {
		o.RefMarker = "searchresults"
	}
	if o.MaxPages <= 0 {
		o.MaxPages = 15
	}
	if o.PageDelay <= 0 {
		o.PageDelay = time.Millisecond * 500
	}
	return o
}

type Client struct {
	opts Options
	http *resty.Client
}

func NewClient(opts Options) *Client {
	opts = opts.withDefaults()

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	// the endpoint serves different (or no) markup to unidentified clients
	client.SetHeader("user-agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/gist/http")

	return &Client{
		opts: opts,
		http: client,
	}
}

func (c *Client) SetInstrumentOutput(output restyutil.InstrumentOutput) {
	restyutil.InstrumentClient(c.http, output)
}

// gist anchors appear as relative paths: /<owner>/<32 hex chars>
var anchorHrefRegex = regexp.MustCompile(`^/([^/]+)/([a-f0-9]{32})$`)

// SearchPage fetches a single result page and extracts every distinct
// gist on it, first occurrence first. An empty slice on a nil error
// means the page held no results.
func (c *Client) SearchPage(ctx context.Context, page int) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "client:SearchPage")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":   c.opts.Query,
			"ref": c.opts.RefMarker,
			"p":   strconv.Itoa(page),
		}).
		Get("/search")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch search page")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse search page html")
		return nil, err
	}

	return c.extractRecords(doc), nil
}

// Search pages through the results until they are exhausted, the page
// cap is hit or a request fails. A failed request keeps everything
// collected so far, the run degrades to partial results.
func (c *Client) Search(ctx context.Context) []Record {
	ctx, span := tracer.Start(ctx, "client:Search")
	defer span.End()

	var all []Record
	for page := 1; page <= c.opts.MaxPages; page++ {
		if page > 1 {
			select {
			case <-time.After(c.opts.PageDelay):
			case <-ctx.Done():
				slog.WarnContext(ctx, "search cancelled, keeping partial results", "err", ctx.Err())
				return all
			}
		}

		slog.InfoContext(ctx, "fetching search page", "page", page)
		records, err := c.SearchPage(ctx, page)
		if err != nil {
			slog.WarnContext(ctx, "search page failed, keeping partial results", "page", page, "err", err)
			break
		}
		if len(records) == 0 {
			slog.InfoContext(ctx, "no more results", "page", page)
			break
		}

		all = append(all, records...)
	}

	return all
}

func (c *Client) extractRecords(doc *goquery.Document) []Record {
	seen := map[string]bool{}
	var records []Record

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		groups := anchorHrefRegex.FindStringSubmatch(a.AttrOr("href", ""))
		if groups == nil {
			return
		}
		owner, id := groups[1], groups[2]
		if seen[id] {
			return
		}
		seen[id] = true

		title, ok := snippetTitle(doc, owner, id)
		if !ok {
			title = fmt.Sprintf("Gist by %s", owner)
		}

		records = append(records, Record{
			Url:   fmt.Sprintf("%s/%s/%s", c.opts.BaseUrl, owner, id),
			Title: title,
		})
	})

	return records
}
