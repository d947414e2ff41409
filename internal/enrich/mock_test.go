package enrich

import (
	"context"
	"errors"
	"sync"
)

// fakeModelClient implements gemini.Client for tests.
type fakeModelClient struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	respond func(prompt string) (string, error)
}

func (f *fakeModelClient) Generate(_ context.Context, _ string, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.respond == nil {
		return "{}", nil
	}
	return f.respond(prompt)
}

func (f *fakeModelClient) ListModels(_ context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeModelClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeFetcher implements TextFetcher for tests. When perURL is set, URLs
// without an entry fail; otherwise every fetch returns text (or err).
type fakeFetcher struct {
	mu     sync.Mutex
	urls   []string
	text   string
	perURL map[string]string
	err    error
}

func (f *fakeFetcher) VisibleText(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.perURL != nil {
		text, ok := f.perURL[url]
		if !ok {
			return "", errors.New("fetch failed: " + url)
		}
		return text, nil
	}
	return f.text, nil
}

// fakeLister implements PageLister for tests.
type fakeLister struct {
	pages []string
}

func (f *fakeLister) Pages(_ context.Context, _ string) []string {
	return f.pages
}
