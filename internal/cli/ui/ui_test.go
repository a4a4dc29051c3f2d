package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/conduit-lang/jason/internal/serializer"
	"github.com/stretchr/testify/assert"
)

func TestSuggestSchemas(t *testing.T) {
	keys := []serializer.SchemaKey{
		{Type: "article", Schema: "default"},
		{Type: "comment", Schema: "only-body"},
		{Type: "people", Schema: "default"},
		{Type: "photo", Schema: "default"},
		{Type: "tag", Schema: "default"},
	}

	tests := []struct {
		name   string
		typ    string
		schema string
		want   []string
	}{
		{name: "misspelled type", typ: "artcle", schema: "default", want: []string{"article"}},
		{name: "case differs", typ: "PEOPLE", schema: "default", want: []string{"people"}},
		{name: "known type with other schema", typ: "comment", schema: "default", want: []string{"comment/only-body"}},
		{name: "nothing close", typ: "zzzzzzzzzz", schema: "default"},
		{name: "short type", typ: "x", schema: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestSchemas(tt.typ, tt.schema, keys)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 3, editDistance("kitten", "sitting"))
	assert.Equal(t, 0, editDistance("tag", "tag"))
	assert.Equal(t, 3, editDistance("", "tag"))
	assert.Equal(t, 1, editDistance("café", "cafe"))
}

func TestSchemaNotFoundError(t *testing.T) {
	out := SchemaNotFoundError("artcle", "default", []string{"article"}, true)

	assert.Contains(t, out, "SCHEMA NOT FOUND: ARTCLE/DEFAULT")
	assert.Contains(t, out, "No schema registered for type 'artcle' named 'default'.")
	assert.Contains(t, out, "Did you mean: article?")
	assert.Contains(t, out, "→ See all schemas")
}

func TestFormatError_Warning(t *testing.T) {
	out := FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: "cache disabled", NoColor: true})
	assert.Equal(t, "⚠️ cache disabled\n", out)
}

func TestFormatSuccess(t *testing.T) {
	assert.Equal(t, "✓ done", FormatSuccess("done", true))
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "TYPE", "SCHEMA")
	table.AddRow("article", "default")
	table.AddRow("comment", "only-body", "ignored")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"TYPE     SCHEMA",
		"───────  ─────────",
		"article  default",
		"comment  only-body",
	}, lines)
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewKeyValueTable(&buf, true)
	table.AddRow("Version", "dev")
	table.AddRow("Go", "go1.23")
	table.Render()

	assert.Equal(t, "Version: dev\nGo:      go1.23\n", buf.String())
}
