package model

// Cell is one named value from a source row, in column order. The prompt
// builder consumes cells rather than a map so identical rows always render
// identical prompts.
type Cell struct {
	Column string
	Value  string
}
