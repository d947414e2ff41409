package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/enrich-cli/internal/model"
)

// PageLister discovers the page URLs for a domain. Failures yield an empty
// list, never an error.
type PageLister interface {
	Pages(ctx context.Context, domainURL string) []string
}

// ScrapeURLContent fetches the visible text of each URL and stores it in the
// context's URL Content slot. A failed fetch records an empty string so the
// slot stays aligned with its input; the run continues regardless.
func ScrapeURLContent(ctx context.Context, fetcher TextFetcher, ext *model.ExternalContext, urls []string, log *zap.Logger) {
	contents := make([]string, 0, len(urls))
	for _, u := range urls {
		content, err := fetcher.VisibleText(ctx, u)
		if err != nil {
			log.Warn("context url scrape failed", zap.String("url", u), zap.Error(err))
			contents = append(contents, "")
			continue
		}
		contents = append(contents, content)
	}
	ext.URLContent = contents
}

// FindSubPages lists the unique pages under baseURL's sitemap and stores
// them in the context's Sub Pages slot. Discovery failures leave the slot
// empty.
func FindSubPages(ctx context.Context, lister PageLister, ext *model.ExternalContext, baseURL string, log *zap.Logger) {
	pages := lister.Pages(ctx, baseURL)
	if len(pages) == 0 {
		log.Warn("no sub-pages found", zap.String("domain", baseURL))
	}
	ext.SubPages = pages
}
