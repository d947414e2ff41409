// Package extract recovers JSON records from free-form model output.
//
// Model replies are adversarial: the JSON we asked for arrives wrapped in
// prose, markdown fences, or half-finished sentences. This is a best-effort
// extractor, not a strict parser; candidates that cannot be repaired are
// dropped silently.
package extract

import (
	"encoding/json"
	"regexp"
)

// Record is one parsed JSON object from a model reply.
type Record = map[string]any

// candidate matches the shortest brace-delimited span from each opening
// brace. For objects with nested braces the span is truncated and fails to
// parse, which is what triggers the brace-counting fallback.
var candidate = regexp.MustCompile(`(?s)\{.*?\}`)

// Records scans text for embedded JSON objects and returns every one that
// parses, in order of appearance. Each candidate is parsed directly first;
// on failure the span is widened by counting brace depth from the
// candidate's start and parsed again. Candidates that still fail are
// dropped. A text with no recoverable JSON yields a nil slice, never an
// error.
func Records(text string) []Record {
	var records []Record
	for _, span := range candidate.FindAllStringIndex(text, -1) {
		var rec Record
		if err := json.Unmarshal([]byte(text[span[0]:span[1]]), &rec); err == nil {
			records = append(records, rec)
			continue
		}
		widened := widen(text, span[0], span[1])
		if err := json.Unmarshal([]byte(widened), &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records
}

// First returns the first recoverable record. By convention the first
// object in a reply is authoritative; later ones are ignored.
func First(text string) (Record, bool) {
	records := Records(text)
	if len(records) == 0 {
		return nil, false
	}
	return records[0], true
}

// widen re-scans from start counting brace nesting and returns the span up
// to the brace that closes the opening one. If the text ends before depth
// returns to zero, the original truncated span is returned unchanged.
func widen(text string, start, end int) string {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return text[start:end]
}
