// Package scrape fetches web pages and reduces them to the text a reader
// would actually see, plus a sitemap lister for pre-run page discovery.
package scrape

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; EnrichBot/1.0)"
	maxBodyBytes     = 2 << 20
)

// TextScraper fetches a URL over plain HTTP and strips it to visible text.
// Callers treat any error as "no external content", never as fatal.
type TextScraper struct {
	client  *http.Client
	limiter *rate.Limiter
	ua      string
}

// Option configures a TextScraper.
type Option func(*TextScraper)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *TextScraper) {
		s.client = hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *TextScraper) {
		s.ua = ua
	}
}

// WithRateLimit caps fetches per second across all workers.
func WithRateLimit(perSec float64) Option {
	return func(s *TextScraper) {
		if perSec > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSec), 1)
		}
	}
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *TextScraper) {
		s.client.Timeout = d
	}
}

// NewTextScraper creates a TextScraper with sensible defaults.
func NewTextScraper(opts ...Option) *TextScraper {
	s := &TextScraper{
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(2), 1),
		ua:      defaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VisibleText fetches targetURL and returns its visible text content.
func (s *TextScraper) VisibleText(ctx context.Context, targetURL string) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "scrape: rate limit wait")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "scrape: create request")
	}
	req.Header.Set("User-Agent", s.ua)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "scrape: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", eris.Errorf("scrape: status %d for %s", resp.StatusCode, targetURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", eris.Wrap(err, "scrape: read body")
	}

	return VisibleTextFromHTML(body)
}

// VisibleTextFromHTML strips markup down to the text a browser would render:
// script, style and other non-visible subtrees are removed, remaining text
// nodes are joined with single spaces.
func VisibleTextFromHTML(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", eris.Wrap(err, "scrape: parse html")
	}

	doc.Find("script, style, noscript, iframe, svg, template").Remove()
	text := doc.Find("body").Text()

	return strings.Join(strings.Fields(text), " "), nil
}
