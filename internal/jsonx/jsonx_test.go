package jsonx

import (
	"strings"
	"testing"
)

func TestExtract_StrictJSON(t *testing.T) {
	v, ok := Extract(`{"score": 8, "comment": "tight plotting"}`)
	if !ok {
		t.Fatal("expected strict JSON to extract")
	}
	if v.Kind != Object {
		t.Fatalf("expected object, got kind %d", v.Kind)
	}
	sc, ok := v.Get("score")
	if !ok || sc.Num != 8 {
		t.Errorf("expected score=8, got %+v", sc)
	}
}

func TestExtract_LeadingWhitespace(t *testing.T) {
	if _, ok := Extract("  \n\t[1, 2, 3]\n"); !ok {
		t.Error("expected whitespace-padded JSON to extract")
	}
}

func TestExtract_FencedBlock(t *testing.T) {
	input := "Here is the result:\n```json\n{\"score\": 7}\n```\nHope that helps."
	v, ok := Extract(input)
	if !ok {
		t.Fatal("expected fenced JSON to extract")
	}
	sc, _ := v.Get("score")
	if sc.Num != 7 {
		t.Errorf("expected score=7, got %v", sc.Num)
	}
}

func TestExtract_FencedBlockWithoutLanguage(t *testing.T) {
	if _, ok := Extract("```\n{\"a\": 1}\n```"); !ok {
		t.Error("expected bare fenced JSON to extract")
	}
}

func TestExtract_FirstFencedBlockWins(t *testing.T) {
	input := "```json\n{\"which\": \"first\"}\n```\n```json\n{\"which\": \"second\"}\n```"
	v, ok := Extract(input)
	if !ok {
		t.Fatal("expected extraction")
	}
	w, _ := v.Get("which")
	if w.Str != "first" {
		t.Errorf("expected first block, got %q", w.Str)
	}
}

func TestExtract_NoRepair(t *testing.T) {
	inputs := []string{
		"",
		"just prose",
		`{"trailing": 1,}`,
		"```json\n{'single': 'quotes'}\n```",
		"{\"unclosed\": ",
	}
	for _, input := range inputs {
		if _, ok := Extract(input); ok {
			t.Errorf("Extract(%q) succeeded, expected prose fallback", input)
		}
	}
}

func TestExtract_FencedCodeThatIsNotJSON(t *testing.T) {
	if _, ok := Extract("```go\nfunc main() {}\n```"); ok {
		t.Error("expected non-JSON fence to fail extraction")
	}
}

func TestValue_ObjectOrderPreserved(t *testing.T) {
	v, ok := Extract(`{"zebra": 1, "alpha": 2, "mike": 3}`)
	if !ok {
		t.Fatal("expected extraction")
	}
	want := []string{"zebra", "alpha", "mike"}
	if len(v.Obj) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(v.Obj))
	}
	for i, key := range want {
		if v.Obj[i].Key != key {
			t.Errorf("member %d: expected key %q, got %q", i, key, v.Obj[i].Key)
		}
	}
}

func TestValue_Scalars(t *testing.T) {
	v, _ := Extract(`{"s": "x", "n": 1.5, "t": true, "f": false, "z": null}`)
	cases := []struct {
		key  string
		kind Kind
	}{
		{"s", String},
		{"n", Number},
		{"t", Bool},
		{"f", Bool},
		{"z", Null},
	}
	for _, c := range cases {
		got, ok := v.Get(c.key)
		if !ok {
			t.Fatalf("missing key %q", c.key)
		}
		if got.Kind != c.kind {
			t.Errorf("key %q: expected kind %d, got %d", c.key, c.kind, got.Kind)
		}
		if !got.IsScalar() {
			t.Errorf("key %q: expected scalar", c.key)
		}
	}
}

func TestValue_TypeName(t *testing.T) {
	v, _ := Extract(`{"a": [1], "o": {}, "s": "x", "n": 2, "b": true, "z": null}`)
	want := map[string]string{
		"a": "array", "o": "object", "s": "string",
		"n": "number", "b": "boolean", "z": "null",
	}
	for key, typ := range want {
		got, _ := v.Get(key)
		if got.TypeName() != typ {
			t.Errorf("key %q: expected type %q, got %q", key, typ, got.TypeName())
		}
	}
}

func TestValue_JSONRoundTripsOrder(t *testing.T) {
	v, _ := Extract(`{"b": {"y": 1, "x": 2}, "a": [true, null]}`)
	out := v.JSON()
	if strings.Index(out, `"b"`) > strings.Index(out, `"a"`) {
		t.Errorf("key order lost in dump:\n%s", out)
	}
	if strings.Index(out, `"y"`) > strings.Index(out, `"x"`) {
		t.Errorf("nested key order lost in dump:\n%s", out)
	}
	if !strings.Contains(out, "true") || !strings.Contains(out, "null") {
		t.Errorf("array scalars missing from dump:\n%s", out)
	}
}

func TestValue_JSONEmptyContainers(t *testing.T) {
	v, _ := Extract(`{"o": {}, "a": []}`)
	out := v.JSON()
	if !strings.Contains(out, "{}") || !strings.Contains(out, "[]") {
		t.Errorf("expected compact empty containers, got:\n%s", out)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8, "8"},
		{8.5, "8.5"},
		{0, "0"},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}
