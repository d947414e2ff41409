// Package prompt renders the instruction document sent to the model for one
// row. Build is a pure function: identical inputs produce byte-identical
// prompts, which keeps model calls reproducible and the builder trivially
// testable.
package prompt

import (
	"encoding/json"
	"strings"

	"github.com/sells-group/enrich-cli/internal/model"
)

// Build renders the enrichment prompt from the field specification, the
// row's non-target values (in column order) and the external context.
func Build(fields model.FieldSpec, rowData []model.Cell, ext model.ExternalContext) string {
	var b strings.Builder

	b.WriteString("**Task:**\n")
	b.WriteString("Using the data provided below, generate the following fields for a row in a table, outputted as a single JSON object:\n")
	for _, f := range fields {
		writePair(&b, f.Name, f.Description)
	}

	b.WriteString("\n**Existing Row Data**\n")
	for _, c := range rowData {
		writePair(&b, c.Column, c.Value)
	}

	b.WriteString("\n**External Data**\n")
	for _, e := range ext.Entries() {
		writePair(&b, e.Label, e.Value)
	}

	b.WriteString("\n**Example Output (Success):**\n")
	b.WriteString("```json\n")
	b.WriteString(Blueprint(fields))
	b.WriteString("\n```\n")

	return b.String()
}

// Blueprint renders the expected output shape: a JSON object with every
// target field present and empty, in declared order.
func Blueprint(fields model.FieldSpec) string {
	if len(fields) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range fields {
		b.WriteString("  ")
		b.WriteString(quote(f.Name))
		b.WriteString(`: ""`)
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func writePair(b *strings.Builder, key, value string) {
	b.WriteString(quote(key))
	b.WriteString(": ")
	b.WriteString(quote(value))
	b.WriteString("\n")
}

// quote JSON-escapes a string, keeping the rendered mappings unambiguous
// even when values contain quotes or newlines.
func quote(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}
