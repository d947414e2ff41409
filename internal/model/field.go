// Package model defines the core types shared across the enrichment pipeline.
package model

// Field describes one enrichment target: the output column name and a
// natural-language description of what the model should produce for it.
type Field struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FieldSpec is an ordered list of enrichment targets. Order is significant:
// it is rendered into prompts verbatim, and the last field drives the
// per-row completion predicate.
type FieldSpec []Field

// Names returns the target column names in declared order.
func (s FieldSpec) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Last returns the name of the final target field, or "" for an empty spec.
// Fields are filled in declared order, so a value here means the row is done.
func (s FieldSpec) Last() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1].Name
}

// Has reports whether name is a declared target field.
func (s FieldSpec) Has(name string) bool {
	for _, f := range s {
		if f.Name == name {
			return true
		}
	}
	return false
}
