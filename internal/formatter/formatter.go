// Package formatter is the public surface of the hybrid response formatter.
// It takes raw model output — strict JSON, JSON inside a fenced block, or
// freeform markdown-ish prose — and always produces a renderable HTML
// fragment. There is no failure path: unparseable input degrades to prose,
// and empty input yields a placeholder block.
package formatter

import (
	"strings"

	"github.com/dgallion1/replyfmt/internal/jsonx"
	"github.com/dgallion1/replyfmt/internal/render"
	"github.com/dgallion1/replyfmt/internal/schema"
	"github.com/dgallion1/replyfmt/internal/sectionizer"
	"github.com/microcosm-cc/bluemonday"
)

// Mode reports which rendering path handled a response.
type Mode string

const (
	ModeStructured Mode = "structured"
	ModeProse      Mode = "prose"
)

const placeholder = `<div class="fmt-empty">No content</div>`

// Options tunes a Formatter. Zero values select defaults.
type Options struct {
	// MaxRenderDepth bounds structural recursion on nested JSON.
	MaxRenderDepth int
	// HighlightStyle names the chroma style for code blocks.
	HighlightStyle string
}

// Formatter renders responses. It holds only immutable configuration, so a
// single instance is safe for concurrent use and its output is a pure
// function of the input.
type Formatter struct {
	renderer *render.Renderer
	policy   *bluemonday.Policy
}

func New(opts Options) *Formatter {
	r := render.New()
	if opts.MaxRenderDepth > 0 {
		r.MaxDepth = opts.MaxRenderDepth
	}
	if opts.HighlightStyle != "" {
		r.HighlightStyle = opts.HighlightStyle
	}
	return &Formatter{
		renderer: r,
		policy:   render.NewPolicy(),
	}
}

// FormatResponse auto-detects JSON versus prose and renders accordingly.
func (f *Formatter) FormatResponse(raw string) string {
	html, _ := f.Format(raw)
	return html
}

// Format is FormatResponse plus the mode that was chosen.
func (f *Formatter) Format(raw string) (string, Mode) {
	if v, ok := jsonx.Extract(raw); ok && isStructured(v) {
		return f.finish(f.renderer.Structured(v, schema.Infer(v))), ModeStructured
	}
	return f.prose(raw), ModeProse
}

// FormatStructuredResponse forces structured interpretation with the given
// schema (which may be nil, in which case one is inferred). If no JSON can
// be extracted the input falls back to prose rendering.
func (f *Formatter) FormatStructuredResponse(raw string, sch *schema.Schema) string {
	html, _ := f.FormatStructured(raw, sch)
	return html
}

// FormatStructured is FormatStructuredResponse plus the mode that was chosen.
func (f *Formatter) FormatStructured(raw string, sch *schema.Schema) (string, Mode) {
	v, ok := jsonx.Extract(raw)
	if !ok || !isStructured(v) {
		return f.prose(raw), ModeProse
	}
	if sch == nil {
		sch = schema.Infer(v)
	}
	return f.finish(f.renderer.Structured(v, sch)), ModeStructured
}

func (f *Formatter) prose(raw string) string {
	return f.finish(f.renderer.Sections(sectionizer.Parse(raw)))
}

// finish wraps the fragment, substitutes the placeholder when nothing was
// produced, and runs the sanitation policy over the final document.
func (f *Formatter) finish(body string) string {
	if strings.TrimSpace(body) == "" {
		body = placeholder
	}
	return f.policy.Sanitize(`<div class="fmt-response">` + body + `</div>`)
}

// isStructured reports whether an extracted JSON value should take the
// structured rendering path. Bare scalars read better as prose.
func isStructured(v jsonx.Value) bool {
	return v.Kind == jsonx.Object || v.Kind == jsonx.Array
}
