// Package render turns section trees and structured JSON into HTML
// fragments. Both paths share one visual vocabulary (hero blocks, score
// badges, lists, code blocks) so a prose "8/10" and a JSON {"score": 8}
// read the same way.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/replyfmt/internal/jsonx"
	"github.com/dgallion1/replyfmt/internal/score"
	"golang.org/x/net/html"
)

// Renderer holds the knobs shared by both rendering paths. A zero Renderer
// is not usable; construct with New.
type Renderer struct {
	// MaxDepth bounds structural recursion; subtrees past it are dumped
	// as formatted JSON instead of rendered.
	MaxDepth int
	// HighlightStyle names the chroma style used for code blocks.
	HighlightStyle string
}

// DefaultMaxDepth caps structural recursion on nested JSON.
const DefaultMaxDepth = 8

// New returns a Renderer with defaults filled in.
func New() *Renderer {
	return &Renderer{
		MaxDepth:       DefaultMaxDepth,
		HighlightStyle: "github",
	}
}

func escape(s string) string {
	return html.EscapeString(s)
}

// badge renders the score badge used by every scoring site. The color tier
// comes from score.Tier so inline, hero, section and field badges can never
// disagree.
func badge(value, max float64) string {
	return fmt.Sprintf(`<span class="score-badge score-%s">%s/%s</span>`,
		score.Tier(value, max), jsonx.FormatNumber(value), jsonx.FormatNumber(max))
}

// heroBlock renders the standalone headline score shared by both paths.
func heroBlock(title string, value, max float64) string {
	var b strings.Builder
	b.WriteString(`<div class="fmt-hero">`)
	if title != "" {
		b.WriteString(`<span class="fmt-hero-title">`)
		b.WriteString(escape(title))
		b.WriteString(`</span>`)
	}
	b.WriteString(fmt.Sprintf(`<span class="score-badge score-%s fmt-hero-score">%s/%s</span>`,
		score.Tier(value, max), jsonx.FormatNumber(value), jsonx.FormatNumber(max)))
	b.WriteString(`</div>`)
	return b.String()
}

// headingTag picks an h-level for a section at the given nesting depth.
// Output starts at h3 (the hosting page owns h1/h2) and bottoms out at h5.
func headingTag(depth int) string {
	level := 3 + depth
	if level > 5 {
		level = 5
	}
	return fmt.Sprintf("h%d", level)
}

// labelize turns a JSON key into a display label: "overall_score" becomes
// "Overall Score".
func labelize(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// truncate cuts on a rune boundary so a multi-byte character is never split.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
