// Package wikipedia fetches page summaries and infobox wikitext from a
// MediaWiki instance and extracts enrichment fields for canonical entities.
package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/affiche-studio/affiche/domain/enrich"
	"github.com/affiche-studio/affiche/domain/entity"
)

// DefaultTimeout bounds a single enrichment fetch. A slow source must not
// stall attribution.
const DefaultTimeout = 15 * time.Second

// DefaultAttempts is the total request attempt count (first try + retries).
const DefaultAttempts = 3

// Client fetches page data from a MediaWiki instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	attempts   uint
	logger     *slog.Logger
}

// Option is a functional option for Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAttempts sets the total request attempt count.
func WithAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = uint(n)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client against the given base URL
// (e.g. https://en.wikipedia.org).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    DefaultTimeout,
		attempts:   DefaultAttempts,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Summary is the short free-text page summary.
type Summary struct {
	Title     string
	Extract   string
	Thumbnail string
}

type summaryResponse struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	OriginalImage struct {
		Source string `json:"source"`
	} `json:"originalimage"`
}

// Summary fetches the page summary for a title.
func (c *Client) Summary(ctx context.Context, title string) (Summary, error) {
	u := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", c.baseURL, url.PathEscape(title))
	body, err := c.fetch(ctx, u)
	if err != nil {
		return Summary{}, err
	}

	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Summary{}, fmt.Errorf("%w: decode summary: %v", enrich.ErrUnavailable, err)
	}

	image := resp.OriginalImage.Source
	if image == "" {
		image = resp.Thumbnail.Source
	}
	return Summary{Title: resp.Title, Extract: resp.Extract, Thumbnail: image}, nil
}

// Wikitext fetches the raw wikitext of a page, which contains the infobox.
func (c *Client) Wikitext(ctx context.Context, title string) (string, error) {
	u := fmt.Sprintf("%s/w/index.php?title=%s&action=raw", c.baseURL, url.QueryEscape(title))
	body, err := c.fetch(ctx, u)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Enrich fetches and extracts enrichment fields for an entity of the given
// kind from the page behind pageURL. Partial failures degrade: a missing
// infobox falls back to summary heuristics, a dead page returns
// enrich.ErrUnavailable. The caller decides whether to apply the fields.
func (c *Client) Enrich(ctx context.Context, pageURL string, kind entity.Kind) (enrich.Fields, error) {
	title, err := TitleFromURL(pageURL)
	if err != nil {
		return enrich.Fields{}, fmt.Errorf("%w: %v", enrich.ErrUnavailable, err)
	}

	var box map[string]string
	wikitext, textErr := c.Wikitext(ctx, title)
	if textErr == nil {
		box = ParseInfobox(wikitext)
	} else {
		c.logger.Debug("wikitext fetch failed, structured fields unavailable",
			"title", title, "error", textErr)
	}

	summary, sumErr := c.Summary(ctx, title)
	if textErr != nil && sumErr != nil {
		return enrich.Fields{}, fmt.Errorf("%w: fetch %q: %v", enrich.ErrUnavailable, title, sumErr)
	}

	fields := ExtractFields(kind, box, summary.Extract)
	fields.ReferenceURL = pageURL
	if fields.ImageURL == "" {
		fields.ImageURL = summary.Thumbnail
	}
	if fields.Biography == "" {
		fields.Biography = summary.Extract
	}

	if fields.IsEmpty() {
		return enrich.Fields{}, fmt.Errorf("%w: no fields extracted for %q", enrich.ErrUnavailable, title)
	}
	return fields, nil
}

// PageURL builds the wiki page URL for a plain-text title, used when an
// entity has no recorded reference URL yet.
func (c *Client) PageURL(title string) string {
	return c.baseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

// TitleFromURL extracts the page title from a wiki page URL
// (e.g. https://en.wikipedia.org/wiki/Jules_Ch%C3%A9ret).
func TitleFromURL(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page URL: %w", err)
	}
	const prefix = "/wiki/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", fmt.Errorf("not a wiki page URL: %s", pageURL)
	}
	title := strings.TrimPrefix(u.Path, prefix)
	if title == "" {
		return "", fmt.Errorf("empty page title: %s", pageURL)
	}
	return title, nil
}

// fetch performs a GET with bounded timeout and retries on transient
// failures. Non-2xx statuses other than 404 are retried; 404 is final.
func (c *Client) fetch(ctx context.Context, u string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("User-Agent", "affiche/1.0 (catalog enrichment)")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close() //nolint:errcheck // intentional

			if resp.StatusCode != http.StatusOK {
				return nil, &HTTPError{StatusCode: resp.StatusCode, URL: u}
			}
			return io.ReadAll(resp.Body)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(200*time.Millisecond),
		retry.MaxJitter(100*time.Millisecond),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying enrichment fetch", "attempt", n+1, "url", u, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", enrich.ErrUnavailable, err)
	}
	return body, nil
}

// HTTPError is a non-200 response from the enrichment source.
type HTTPError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.StatusCode, e.URL)
}

func isRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		// 404 means the page does not exist; retrying is futile.
		return httpErr.StatusCode != http.StatusNotFound
	}
	return true
}
