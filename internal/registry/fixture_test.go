package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFieldSpecFromFile(t *testing.T) {
	path := writeJSON(t, `[
		{"name": "Industry", "description": "Primary industry of the company"},
		{"name": "Employees", "description": "Estimated head count"}
	]`)

	spec, err := LoadFieldSpecFromFile(path)
	require.NoError(t, err)
	require.Len(t, spec, 2)
	assert.Equal(t, "Industry", spec[0].Name)
	assert.Equal(t, "Estimated head count", spec[1].Description)
}

func TestLoadFieldSpecFromFile_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty array", `[]`},
		{"empty name", `[{"name": "", "description": "x"}]`},
		{"duplicate name", `[{"name": "A"}, {"name": "A"}]`},
		{"not json", `{{`},
		{"wrong shape", `{"name": "A"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFieldSpecFromFile(writeJSON(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFieldSpecFromFile_MissingFile(t *testing.T) {
	_, err := LoadFieldSpecFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadExternalContextFromFile(t *testing.T) {
	path := writeJSON(t, `{"extra": [{"label": "Company Notes", "value": "trusted partner"}]}`)

	ext, err := LoadExternalContextFromFile(path)
	require.NoError(t, err)
	require.Len(t, ext.Extra, 1)
	assert.Equal(t, "Company Notes", ext.Extra[0].Label)
	assert.Equal(t, "trusted partner", ext.Extra[0].Value)
	assert.Empty(t, ext.SubPages)
}

func TestLoadExternalContextFromFile_Invalid(t *testing.T) {
	_, err := LoadExternalContextFromFile(writeJSON(t, `not json`))
	assert.Error(t, err)
}
