package schema

import (
	"testing"

	"github.com/dgallion1/replyfmt/internal/jsonx"
)

func TestParse_PropertyOrderPreserved(t *testing.T) {
	raw := []byte(`{
		"type": "object",
		"properties": {
			"verdict": {"type": "string"},
			"score": {"type": "number", "title": "Overall Score"},
			"notes": {"type": "array", "items": {"type": "string"}}
		}
	}`)
	s, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Type != "object" {
		t.Errorf("expected type object, got %q", s.Type)
	}
	want := []string{"verdict", "score", "notes"}
	if len(s.Properties) != len(want) {
		t.Fatalf("expected %d properties, got %d", len(want), len(s.Properties))
	}
	for i, name := range want {
		if s.Properties[i].Name != name {
			t.Errorf("property %d: expected %q, got %q", i, name, s.Properties[i].Name)
		}
	}
	if got := s.Prop("score"); got == nil || got.Title != "Overall Score" {
		t.Errorf("expected score title %q, got %+v", "Overall Score", got)
	}
	notes := s.Prop("notes")
	if notes == nil || notes.Items == nil || notes.Items.Type != "string" {
		t.Errorf("expected notes items schema, got %+v", notes)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte("null")} {
		s, err := Parse(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if s != nil {
			t.Errorf("expected nil schema for %q, got %+v", raw, s)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, raw := range []string{`[1, 2]`, `"string"`, `{not json`} {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Errorf("Parse(%q) succeeded, expected error", raw)
		}
	}
}

func TestProp_NilSchema(t *testing.T) {
	var s *Schema
	if got := s.Prop("anything"); got != nil {
		t.Errorf("expected nil from nil schema, got %+v", got)
	}
}

func TestInfer_Object(t *testing.T) {
	v, _ := jsonx.Extract(`{"name": "x", "score": 8, "done": true}`)
	s := Infer(v)
	if s.Type != "object" {
		t.Fatalf("expected object, got %q", s.Type)
	}
	want := map[string]string{"name": "string", "score": "number", "done": "boolean"}
	for _, p := range s.Properties {
		if p.Schema.Type != want[p.Name] {
			t.Errorf("property %q: expected type %q, got %q", p.Name, want[p.Name], p.Schema.Type)
		}
	}
	// Inferred property order follows document order.
	if s.Properties[0].Name != "name" || s.Properties[2].Name != "done" {
		t.Errorf("property order lost: %+v", s.Properties)
	}
}

func TestInfer_ArraySamplesFirstElement(t *testing.T) {
	v, _ := jsonx.Extract(`[{"a": 1}, {"b": "mixed"}]`)
	s := Infer(v)
	if s.Type != "array" || s.Items == nil {
		t.Fatalf("expected array schema with items, got %+v", s)
	}
	if s.Items.Type != "object" {
		t.Errorf("expected items inferred from first element, got %q", s.Items.Type)
	}
	if len(s.Items.Properties) != 1 || s.Items.Properties[0].Name != "a" {
		t.Errorf("expected only first element's shape, got %+v", s.Items.Properties)
	}
}

func TestInfer_EmptyArrayDefaultsToStringItems(t *testing.T) {
	v, _ := jsonx.Extract(`[]`)
	s := Infer(v)
	if s.Items == nil || s.Items.Type != "string" {
		t.Errorf("expected string items default, got %+v", s.Items)
	}
}
