package model

import "strings"

// ContextEntry is one labelled piece of auxiliary content for the prompt.
type ContextEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Labels for the well-known external-context slots.
const (
	URLContentLabel = "URL Content"
	SubPagesLabel   = "Sub Pages"
)

// ExternalContext carries the auxiliary, non-tabular data merged into every
// prompt: free-form labelled entries plus the two slots the preparation
// steps fill (scraped page text, sitemap sub-pages).
//
// The run-level context is read-only once batch processing starts; anything
// injected for a single row (per-row scraped content) must go into a Clone
// so concurrent workers never see each other's content.
type ExternalContext struct {
	Extra      []ContextEntry `json:"extra,omitempty"`
	SubPages   []string       `json:"sub_pages,omitempty"`
	URLContent []string       `json:"url_content,omitempty"`
}

// Clone returns a deep copy safe for per-row mutation.
func (c ExternalContext) Clone() ExternalContext {
	out := ExternalContext{}
	if len(c.Extra) > 0 {
		out.Extra = make([]ContextEntry, len(c.Extra))
		copy(out.Extra, c.Extra)
	}
	if len(c.SubPages) > 0 {
		out.SubPages = make([]string, len(c.SubPages))
		copy(out.SubPages, c.SubPages)
	}
	if len(c.URLContent) > 0 {
		out.URLContent = make([]string, len(c.URLContent))
		copy(out.URLContent, c.URLContent)
	}
	return out
}

// IsEmpty reports whether the context carries no content at all.
func (c ExternalContext) IsEmpty() bool {
	return len(c.Extra) == 0 && len(c.SubPages) == 0 && len(c.URLContent) == 0
}

// Entries flattens the context into labelled entries in a deterministic
// order: declared extras first, then sub-pages, then scraped URL content.
func (c ExternalContext) Entries() []ContextEntry {
	entries := make([]ContextEntry, 0, len(c.Extra)+2)
	entries = append(entries, c.Extra...)
	if len(c.SubPages) > 0 {
		entries = append(entries, ContextEntry{
			Label: SubPagesLabel,
			Value: strings.Join(c.SubPages, ", "),
		})
	}
	if len(c.URLContent) > 0 {
		entries = append(entries, ContextEntry{
			Label: URLContentLabel,
			Value: strings.Join(c.URLContent, "\n\n"),
		})
	}
	return entries
}
