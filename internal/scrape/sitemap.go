package scrape

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// sitemapDoc parses both <urlset> and <sitemapindex> documents.
type sitemapDoc struct {
	URLs     []sitemapLoc `xml:"url"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// SitemapLister discovers a domain's pages from its sitemap. Failures are
// reported as an empty page list, never an error: sitemap discovery is
// best-effort context preparation, not a pipeline dependency.
type SitemapLister struct {
	client *http.Client
	ua     string
	log    *zap.Logger
}

// NewSitemapLister creates a lister with sensible defaults.
func NewSitemapLister(log *zap.Logger) *SitemapLister {
	return &SitemapLister{
		client: &http.Client{Timeout: 30 * time.Second},
		ua:     defaultUserAgent,
		log:    log,
	}
}

// Pages returns the unique page URLs under domainURL's sitemap, in document
// order. One level of sitemap-index nesting is followed.
func (l *SitemapLister) Pages(ctx context.Context, domainURL string) []string {
	base := strings.TrimSuffix(strings.TrimSpace(domainURL), "/")
	raw, err := l.fetch(ctx, base+"/sitemap.xml", 0)
	if err != nil {
		l.log.Warn("sitemap fetch failed", zap.String("domain", domainURL), zap.Error(err))
		return nil
	}

	seen := make(map[string]bool, len(raw))
	pages := make([]string, 0, len(raw))
	for _, u := range raw {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		pages = append(pages, u)
	}
	return pages
}

func (l *SitemapLister) fetch(ctx context.Context, sitemapURL string, depth int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sitemap: create request")
	}
	req.Header.Set("User-Agent", l.ua)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "sitemap: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("sitemap: status %d for %s", resp.StatusCode, sitemapURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "sitemap: read body")
	}

	var doc sitemapDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, eris.Wrap(err, "sitemap: parse xml")
	}

	var pages []string
	for _, u := range doc.URLs {
		pages = append(pages, strings.TrimSpace(u.Loc))
	}

	// Sitemap indexes point at child sitemaps; follow one level only.
	if depth < 1 {
		for _, sm := range doc.Sitemaps {
			child := strings.TrimSpace(sm.Loc)
			if child == "" {
				continue
			}
			childPages, err := l.fetch(ctx, child, depth+1)
			if err != nil {
				l.log.Warn("child sitemap fetch failed", zap.String("url", child), zap.Error(err))
				continue
			}
			pages = append(pages, childPages...)
		}
	}

	return pages, nil
}
