package jsonx

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var fencedRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Extract attempts to read a JSON value out of raw model output. It tries a
// strict parse of the whole text first, then the contents of the first fenced
// code block. No lenient repair is attempted; if neither parses, ok is false
// and the caller treats the input as prose.
func Extract(text string) (Value, bool) {
	if v, ok := parseStrict(strings.TrimSpace(text)); ok {
		return v, true
	}
	if m := fencedRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseStrict(m[1]); ok {
			return v, true
		}
	}
	return Value{}, false
}

func parseStrict(s string) (Value, bool) {
	if s == "" || !json.Valid([]byte(s)) {
		return Value{}, false
	}
	return fromResult(gjson.Parse(s)), true
}
