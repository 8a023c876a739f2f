// Package schema holds the structural schema the renderer walks alongside
// the data. Schemas arrive from callers as JSON, or are inferred from the
// data itself when the caller supplies none, so the renderer can treat both
// uniformly.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/dgallion1/replyfmt/internal/jsonx"
	"github.com/tidwall/gjson"
)

// Property is one declared object field. Declared order defines rendering
// order, so properties are a slice rather than a map.
type Property struct {
	Name   string
	Schema *Schema
}

// Schema describes one JSON node. All fields are optional; a nil Schema is
// valid everywhere and means "no declaration".
type Schema struct {
	Type        string
	Format      string
	Title       string
	Description string
	Properties  []Property
	Items       *Schema
}

// Prop looks up a declared property by name.
func (s *Schema) Prop(name string) *Schema {
	if s == nil {
		return nil
	}
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// Parse decodes a schema from raw JSON, preserving property order.
func Parse(raw []byte) (*Schema, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("schema is not valid JSON")
	}
	r := gjson.ParseBytes(raw)
	if r.Type == gjson.Null {
		return nil, nil
	}
	if !r.IsObject() {
		return nil, fmt.Errorf("schema must be a JSON object")
	}
	return fromResult(r), nil
}

func fromResult(r gjson.Result) *Schema {
	s := &Schema{
		Type:        r.Get("type").String(),
		Format:      r.Get("format").String(),
		Title:       r.Get("title").String(),
		Description: r.Get("description").String(),
	}
	if props := r.Get("properties"); props.IsObject() {
		props.ForEach(func(key, value gjson.Result) bool {
			s.Properties = append(s.Properties, Property{
				Name:   key.String(),
				Schema: fromResult(value),
			})
			return true
		})
	}
	if items := r.Get("items"); items.IsObject() {
		s.Items = fromResult(items)
	}
	return s
}

// Infer derives a minimal structural schema from a decoded value. Arrays
// sample only their first element; heterogeneous arrays are treated as
// homogeneous on purpose.
func Infer(v jsonx.Value) *Schema {
	switch v.Kind {
	case jsonx.Array:
		items := &Schema{Type: "string"}
		if len(v.Arr) > 0 {
			items = Infer(v.Arr[0])
		}
		return &Schema{Type: "array", Items: items}
	case jsonx.Object:
		s := &Schema{Type: "object"}
		for _, m := range v.Obj {
			s.Properties = append(s.Properties, Property{
				Name:   m.Key,
				Schema: Infer(m.Value),
			})
		}
		return s
	default:
		return &Schema{Type: v.TypeName()}
	}
}
