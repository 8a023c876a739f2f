// Package jsonx models JSON values as a closed variant with stable object
// member order. encoding/json decodes objects into maps and loses the source
// key order, which the renderer depends on, so decoding goes through gjson
// instead and keeps members in document order.
package jsonx

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind discriminates the JSON value variants.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Member is one object field. Objects are slices of members, not maps, so
// iteration order is the document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a decoded JSON value.
type Value struct {
	Kind Kind
	Bool bool
	Num  float64
	Str  string
	Arr  []Value
	Obj  []Member
}

// Get looks up an object member by key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// IsScalar reports whether the value is not a container.
func (v Value) IsScalar() bool {
	return v.Kind != Array && v.Kind != Object
}

// TypeName returns the JSON type name used by schemas.
func (v Value) TypeName() string {
	switch v.Kind {
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "null"
	}
}

func fromResult(r gjson.Result) Value {
	switch {
	case r.IsObject():
		v := Value{Kind: Object}
		r.ForEach(func(key, value gjson.Result) bool {
			v.Obj = append(v.Obj, Member{Key: key.String(), Value: fromResult(value)})
			return true
		})
		return v
	case r.IsArray():
		v := Value{Kind: Array}
		r.ForEach(func(_, value gjson.Result) bool {
			v.Arr = append(v.Arr, fromResult(value))
			return true
		})
		return v
	}
	switch r.Type {
	case gjson.String:
		return Value{Kind: String, Str: r.String()}
	case gjson.Number:
		return Value{Kind: Number, Num: r.Float()}
	case gjson.True:
		return Value{Kind: Bool, Bool: true}
	case gjson.False:
		return Value{Kind: Bool, Bool: false}
	default:
		return Value{Kind: Null}
	}
}

// JSON renders the value as indented JSON, preserving object member order.
// Used for the depth-ceiling dump where structural rendering stops.
func (v Value) JSON() string {
	var b strings.Builder
	writeJSON(&b, v, 0)
	return b.String()
}

func writeJSON(b *strings.Builder, v Value, depth int) {
	switch v.Kind {
	case Null:
		b.WriteString("null")
	case Bool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case Number:
		b.WriteString(FormatNumber(v.Num))
	case String:
		raw, _ := json.Marshal(v.Str)
		b.Write(raw)
	case Array:
		if len(v.Arr) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, el := range v.Arr {
			writeIndent(b, depth+1)
			writeJSON(b, el, depth+1)
			if i < len(v.Arr)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		writeIndent(b, depth)
		b.WriteString("]")
	case Object:
		if len(v.Obj) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, m := range v.Obj {
			writeIndent(b, depth+1)
			key, _ := json.Marshal(m.Key)
			b.Write(key)
			b.WriteString(": ")
			writeJSON(b, m.Value, depth+1)
			if i < len(v.Obj)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		writeIndent(b, depth)
		b.WriteString("}")
	}
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

// FormatNumber renders a float the way JSON does, without a trailing ".0"
// for integral values.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
