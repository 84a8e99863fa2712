package jsonschema_test

import (
	"testing"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
	"github.com/reoring/goshape/jsonschema"
)

func TestImportYAML(t *testing.T) {
	src := []byte(`
type: object
properties:
  id:
    type: integer
  tags:
    type: array
    items:
      type: string
required:
  - id
`)
	s, _, diag, err := jsonschema.ImportYAML(src, jsonschema.Options{})
	if err != nil {
		t.Fatalf("ImportYAML: %v", err)
	}
	if diag.HasWarnings() {
		t.Fatalf("warnings: %v", diag.Warnings())
	}

	want := dsl.Object().
		Field("id", dsl.Number()).
		Field("tags", dsl.Array(dsl.String())).
		Optional("tags").
		Build()
	if !goshape.Equal(s, want) {
		t.Fatalf("imported %s, want %s", goshape.Sprint(s), goshape.Sprint(want))
	}
}

func TestImportYAML_MultiDocument(t *testing.T) {
	// leading non-map documents are skipped; the first map document wins
	src := []byte("---\njust a scalar\n---\ntype: object\nproperties:\n  a:\n    type: string\n")
	s, _, _, err := jsonschema.ImportYAML(src, jsonschema.Options{})
	if err != nil {
		t.Fatalf("ImportYAML: %v", err)
	}
	if _, ok := s.(*goshape.Object); !ok {
		t.Fatalf("imported %s", goshape.Sprint(s))
	}
}

func TestImportYAML_NoDocument(t *testing.T) {
	if _, _, _, err := jsonschema.ImportYAML([]byte(""), jsonschema.Options{}); err == nil {
		t.Fatal("want error for empty input")
	}
	if _, _, _, err := jsonschema.ImportYAML([]byte(": :\n:bad"), jsonschema.Options{}); err == nil {
		t.Fatal("want error for malformed YAML")
	}
}
