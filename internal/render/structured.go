package render

import (
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/dgallion1/replyfmt/internal/jsonx"
	"github.com/dgallion1/replyfmt/internal/schema"
)

// Heuristic thresholds tuned against typical model output. Named here so
// retuning is a one-line change, not a behavior hunt.
const (
	cardTitleMaxLen = 100 // card title: shortest string field under this
	cardBodyMinLen  = 50  // card body: a string field at least this long
	linkLabelMaxLen = 50  // visible link labels truncate past this
	textBlockMinLen = 100 // strings longer than this render as a block
)

// heroFieldKeys are checked in priority order against normalized top-level
// keys. This list is intentionally separate from the hero-title words used
// on markdown headings; the two detectors grew independently.
var heroFieldKeys = [...]string{"overallscore", "totalscore", "overall", "total", "score", "rating"}

var scoreWords = [...]string{"score", "rating", "rank", "grade", "level", "confidence", "quality"}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Structured renders a decoded JSON document against its schema. The schema
// may be inferred; both kinds are walked identically.
func (r *Renderer) Structured(v jsonx.Value, sch *schema.Schema) string {
	var b strings.Builder
	switch v.Kind {
	case jsonx.Object:
		heroKey := r.writeHeroField(&b, v)
		r.writeObjectFields(&b, v, sch, heroKey, 0)
	case jsonx.Array:
		var itemSchema *schema.Schema
		if sch != nil {
			itemSchema = sch.Items
		}
		r.writeArrayItems(&b, v, itemSchema, 0)
	default:
		b.WriteString(r.renderValue(v, sch, ""))
	}
	return b.String()
}

// writeHeroField scans top-level keys for an overall score and renders it as
// the hero block. Returns the consumed key, or "" when none matched.
func (r *Renderer) writeHeroField(b *strings.Builder, v jsonx.Value) string {
	for _, candidate := range heroFieldKeys {
		for _, m := range v.Obj {
			if normalizeKey(m.Key) != candidate || m.Value.Kind != jsonx.Number {
				continue
			}
			b.WriteString(heroBlock(labelize(m.Key), m.Value.Num, scoreCap(m.Value.Num)))
			return m.Key
		}
	}
	return ""
}

// writeObjectFields iterates declared schema properties in order when the
// schema has any, otherwise the data's own key order.
func (r *Renderer) writeObjectFields(b *strings.Builder, v jsonx.Value, sch *schema.Schema, skipKey string, depth int) {
	if sch != nil && len(sch.Properties) > 0 {
		for _, p := range sch.Properties {
			if p.Name == skipKey {
				continue
			}
			val, ok := v.Get(p.Name)
			if !ok {
				continue
			}
			r.writeField(b, p.Name, val, p.Schema, depth)
		}
		return
	}
	for _, m := range v.Obj {
		if m.Key == skipKey {
			continue
		}
		r.writeField(b, m.Key, m.Value, sch.Prop(m.Key), depth)
	}
}

func (r *Renderer) writeField(b *strings.Builder, key string, v jsonx.Value, sch *schema.Schema, depth int) {
	if depth >= r.MaxDepth {
		// Past the ceiling presentation gives way to termination: dump
		// the rest verbatim instead of recursing.
		writeJSONDump(b, v)
		return
	}

	typ := v.TypeName()
	if sch != nil && sch.Type != "" {
		typ = sch.Type
	}

	switch {
	case typ == "array" && v.Kind == jsonx.Array:
		b.WriteString(`<div class="fmt-field">`)
		writeFieldLabel(b, key)
		var itemSchema *schema.Schema
		if sch != nil {
			itemSchema = sch.Items
		}
		r.writeArrayItems(b, v, itemSchema, depth)
		b.WriteString(`</div>`)

	case typ == "object" && v.Kind == jsonx.Object:
		tag := headingTag(depth)
		b.WriteString(`<div class="fmt-section">`)
		b.WriteString("<" + tag + ">")
		b.WriteString(escape(labelize(key)))
		b.WriteString("</" + tag + ">")
		r.writeObjectFields(b, v, sch, "", depth+1)
		b.WriteString(`</div>`)

	default:
		b.WriteString(`<div class="fmt-field">`)
		writeFieldLabel(b, key)
		b.WriteString(r.renderValue(v, sch, key))
		b.WriteString(`</div>`)
	}
}

// writeArrayItems renders a simple bulleted list when every element is a
// scalar, and one card per element otherwise.
func (r *Renderer) writeArrayItems(b *strings.Builder, v jsonx.Value, itemSchema *schema.Schema, depth int) {
	allScalar := true
	for _, el := range v.Arr {
		if !el.IsScalar() {
			allScalar = false
			break
		}
	}

	if allScalar {
		b.WriteString(`<ul class="fmt-list">`)
		for _, el := range v.Arr {
			b.WriteString("<li>")
			b.WriteString(r.renderValue(el, itemSchema, ""))
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
		return
	}

	b.WriteString(`<div class="fmt-cards">`)
	for _, el := range v.Arr {
		if el.Kind == jsonx.Object {
			r.writeCard(b, el, itemSchema, depth+1)
			continue
		}
		b.WriteString(`<div class="fmt-card">`)
		writeJSONDump(b, el)
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
}

// writeCard renders one array element as a compact card, heuristically
// picking a short title, a score and a prose body among its fields. Whatever
// remains renders as ordinary nested fields.
func (r *Renderer) writeCard(b *strings.Builder, v jsonx.Value, itemSchema *schema.Schema, depth int) {
	titleKey := cardTitleKey(v)
	scoreKey := cardScoreKey(v)
	bodyKey := cardBodyKey(v, titleKey)

	b.WriteString(`<div class="fmt-card">`)

	if titleKey != "" || scoreKey != "" {
		b.WriteString(`<div class="fmt-card-header">`)
		if titleKey != "" {
			title, _ := v.Get(titleKey)
			b.WriteString(`<span class="fmt-card-title">`)
			b.WriteString(escape(title.Str))
			b.WriteString(`</span>`)
		}
		if scoreKey != "" {
			sc, _ := v.Get(scoreKey)
			b.WriteString(badge(sc.Num, scoreCap(sc.Num)))
		}
		b.WriteString(`</div>`)
	}

	if bodyKey != "" {
		body, _ := v.Get(bodyKey)
		b.WriteString(`<div class="fmt-card-body">`)
		b.WriteString(Inline(body.Str))
		b.WriteString(`</div>`)
	}

	for _, m := range v.Obj {
		if m.Key == titleKey || m.Key == scoreKey || m.Key == bodyKey {
			continue
		}
		r.writeField(b, m.Key, m.Value, itemSchema.Prop(m.Key), depth)
	}

	b.WriteString(`</div>`)
}

func (r *Renderer) renderValue(v jsonx.Value, sch *schema.Schema, key string) string {
	switch v.Kind {
	case jsonx.String:
		format := ""
		if sch != nil {
			format = strings.ToLower(sch.Format)
		}
		s := v.Str
		if isURL(s, format) {
			return `<a href="` + escape(s) + `">` + escape(truncate(s, linkLabelMaxLen)) + `</a>`
		}
		if isEmail(s, format) {
			return `<a href="mailto:` + escape(s) + `">` + escape(s) + `</a>`
		}
		if len(s) > textBlockMinLen || strings.Contains(s, "\n") {
			return `<div class="fmt-text-block">` + Inline(s) + `</div>`
		}
		return Inline(s)

	case jsonx.Number:
		if looksLikeScore(v.Num, key, sch) {
			return badge(v.Num, scoreCap(v.Num))
		}
		return escape(jsonx.FormatNumber(v.Num))

	case jsonx.Bool:
		if v.Bool {
			return `<span class="fmt-bool fmt-bool-yes">yes</span>`
		}
		return `<span class="fmt-bool fmt-bool-no">no</span>`

	case jsonx.Null:
		return `<span class="fmt-null">null</span>`

	default:
		// Containers are handled by writeField; a stray one dumps.
		return `<pre class="fmt-json-dump"><code>` + escape(v.JSON()) + `</code></pre>`
	}
}

func writeFieldLabel(b *strings.Builder, key string) {
	b.WriteString(`<span class="fmt-field-label">`)
	b.WriteString(escape(labelize(key)))
	b.WriteString(`</span> `)
}

func writeJSONDump(b *strings.Builder, v jsonx.Value) {
	b.WriteString(`<pre class="fmt-json-dump"><code>`)
	b.WriteString(escape(v.JSON()))
	b.WriteString(`</code></pre>`)
}

func cardTitleKey(v jsonx.Value) string {
	best := ""
	bestLen := cardTitleMaxLen
	for _, m := range v.Obj {
		if m.Value.Kind != jsonx.String {
			continue
		}
		n := len(m.Value.Str)
		if n == 0 || n >= cardTitleMaxLen {
			continue
		}
		if best == "" || n < bestLen {
			best = m.Key
			bestLen = n
		}
	}
	return best
}

func cardScoreKey(v jsonx.Value) string {
	for _, m := range v.Obj {
		if m.Value.Kind == jsonx.Number && m.Value.Num >= 0 && m.Value.Num <= 100 {
			return m.Key
		}
	}
	return ""
}

func cardBodyKey(v jsonx.Value, titleKey string) string {
	for _, m := range v.Obj {
		if m.Key == titleKey || m.Value.Kind != jsonx.String {
			continue
		}
		if len(m.Value.Str) >= cardBodyMinLen {
			return m.Key
		}
	}
	return ""
}

// looksLikeScore decides whether a bare number renders as a score badge.
// Either the surrounding label names a score, or the value sits in a common
// scoring range: [0,10] for any numeric, [0,100] for integers only.
func looksLikeScore(n float64, key string, sch *schema.Schema) bool {
	text := strings.ToLower(key)
	if sch != nil {
		text += " " + strings.ToLower(sch.Title) + " " + strings.ToLower(sch.Description)
	}
	for _, w := range scoreWords {
		if strings.Contains(text, w) {
			return true
		}
	}
	if n >= 0 && n <= 10 {
		return true
	}
	if n >= 0 && n <= 100 && n == math.Trunc(n) {
		return true
	}
	return false
}

// scoreCap picks the scale for a bare numeric score: values above 10 are
// assumed to be out of 100.
func scoreCap(n float64) float64 {
	if n > 10 {
		return 100
	}
	return 10
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "")
}

func isURL(s, format string) bool {
	if format == "uri" || format == "url" {
		return true
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}

func isEmail(s, format string) bool {
	if format == "email" {
		return true
	}
	return emailRe.MatchString(s)
}
