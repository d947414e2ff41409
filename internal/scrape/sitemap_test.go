package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newSitemapServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testLister(srv *httptest.Server) *SitemapLister {
	l := NewSitemapLister(zap.NewNop())
	l.client = srv.Client()
	return l
}

func TestPages_URLSet(t *testing.T) {
	srv := newSitemapServer(t, map[string]string{
		"/sitemap.xml": `<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://acme.test/</loc></url>
  <url><loc> https://acme.test/about </loc></url>
  <url><loc>https://acme.test/</loc></url>
  <url><loc></loc></url>
</urlset>`,
	})

	pages := testLister(srv).Pages(context.Background(), srv.URL+"/")

	assert.Equal(t, []string{"https://acme.test/", "https://acme.test/about"}, pages,
		"locs are trimmed, deduplicated and kept in document order")
}

func TestPages_SitemapIndex(t *testing.T) {
	// Routes are filled in after the server starts so the index can point
	// back at the same host.
	routes := map[string]string{}
	srv := newSitemapServer(t, routes)

	routes["/sitemap.xml"] = fmt.Sprintf(`<?xml version="1.0"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>%s/pages.xml</loc></sitemap>
  <sitemap><loc>%s/missing.xml</loc></sitemap>
</sitemapindex>`, srv.URL, srv.URL)
	routes["/pages.xml"] = `<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://acme.test/team</loc></url>
  <url><loc>https://acme.test/jobs</loc></url>
</urlset>`

	pages := testLister(srv).Pages(context.Background(), srv.URL)

	assert.Equal(t, []string{"https://acme.test/team", "https://acme.test/jobs"}, pages,
		"index children are followed, a missing child is skipped")
}

func TestPages_MissingSitemapIsEmptyList(t *testing.T) {
	srv := newSitemapServer(t, map[string]string{})
	assert.Empty(t, testLister(srv).Pages(context.Background(), srv.URL))
}

func TestPages_MalformedXMLIsEmptyList(t *testing.T) {
	srv := newSitemapServer(t, map[string]string{
		"/sitemap.xml": "this is not xml at all <",
	})
	assert.Empty(t, testLister(srv).Pages(context.Background(), srv.URL))
}

func TestPages_UnreachableHostIsEmptyList(t *testing.T) {
	l := NewSitemapLister(zap.NewNop())
	assert.Empty(t, l.Pages(context.Background(), "http://127.0.0.1:1"))
}
