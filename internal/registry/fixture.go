// Package registry loads run inputs, the field specification and the
// external context, from JSON files.
package registry

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/enrich-cli/internal/model"
)

// LoadFieldSpecFromFile reads a JSON array of fields, e.g.
//
//	[{"name": "Industry", "description": "Primary industry of the company"}]
//
// Order in the file is the order everywhere else: prompts, output columns,
// and the completion predicate's last field.
func LoadFieldSpecFromFile(path string) (model.FieldSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: read field spec")
	}

	var spec model.FieldSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, eris.Wrap(err, "registry: unmarshal field spec")
	}
	if len(spec) == 0 {
		return nil, eris.New("registry: field spec is empty")
	}

	seen := make(map[string]bool, len(spec))
	for _, f := range spec {
		if f.Name == "" {
			return nil, eris.New("registry: field with empty name")
		}
		if seen[f.Name] {
			return nil, eris.Errorf("registry: duplicate field %q", f.Name)
		}
		seen[f.Name] = true
	}

	return spec, nil
}

// LoadExternalContextFromFile reads an external-context JSON document:
//
//	{"extra": [{"label": "Company Notes", "value": "..."}]}
func LoadExternalContextFromFile(path string) (model.ExternalContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ExternalContext{}, eris.Wrap(err, "registry: read external context")
	}

	var ext model.ExternalContext
	if err := json.Unmarshal(data, &ext); err != nil {
		return model.ExternalContext{}, eris.Wrap(err, "registry: unmarshal external context")
	}
	return ext, nil
}
