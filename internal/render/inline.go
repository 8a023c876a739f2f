package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/replyfmt/internal/score"
)

// The inline pipeline runs in a fixed order: score badges, bold, italic,
// inline code. Each substitution emits a \x00N\x00 placeholder and stashes
// its HTML, so later patterns can never re-match text an earlier step
// produced. Placeholders are expanded at the end.
var (
	inlineScoreRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*(\d+)`)
	boldStarRe    = regexp.MustCompile(`\*\*([^*]+?)\*\*`)
	boldUnderRe   = regexp.MustCompile(`__([^_]+?)__`)
	italicStarRe  = regexp.MustCompile(`(^|[^\w*])\*([^\s*](?:[^*]*[^\s*])?)\*($|[^\w*])`)
	italicUnderRe = regexp.MustCompile(`(^|[^\w_])_([^\s_](?:[^_]*[^\s_])?)_($|[^\w_])`)
	inlineCodeRe  = regexp.MustCompile("`([^`]+)`")
	placeholderRe = regexp.MustCompile("\x00(\\d+)\x00")
)

// Inline applies the inline formatting pipeline to leaf text. The text is
// escaped first, so raw input can never inject markup. NUL bytes are dropped
// up front: escaping leaves them intact, and a literal NUL-digit-NUL in the
// input could forge a placeholder.
func Inline(text string) string {
	out := strings.ReplaceAll(escape(text), "\x00", "")

	var saved []string
	save := func(html string) string {
		saved = append(saved, html)
		return fmt.Sprintf("\x00%d\x00", len(saved)-1)
	}

	out = inlineScoreRe.ReplaceAllStringFunc(out, func(m string) string {
		sc := score.Extract(m)
		if sc == nil {
			return m
		}
		return save(badge(sc.Value, sc.Max))
	})

	out = boldStarRe.ReplaceAllStringFunc(out, func(m string) string {
		inner := boldStarRe.FindStringSubmatch(m)[1]
		return save("<strong>" + inner + "</strong>")
	})
	out = boldUnderRe.ReplaceAllStringFunc(out, func(m string) string {
		inner := boldUnderRe.FindStringSubmatch(m)[1]
		return save("<strong>" + inner + "</strong>")
	})

	out = replaceItalic(out, italicStarRe, save)
	out = replaceItalic(out, italicUnderRe, save)

	out = inlineCodeRe.ReplaceAllStringFunc(out, func(m string) string {
		inner := inlineCodeRe.FindStringSubmatch(m)[1]
		return save("<code>" + inner + "</code>")
	})

	// Saved fragments can hold placeholders from earlier steps (a badge
	// inside bold, bold inside code), so expansion repeats until settled.
	for placeholderRe.MatchString(out) {
		out = placeholderRe.ReplaceAllStringFunc(out, func(m string) string {
			var idx int
			fmt.Sscanf(m, "\x00%d\x00", &idx)
			return saved[idx]
		})
	}
	return out
}

// replaceItalic handles the emphasis patterns whose boundary guards capture
// a neighboring character that has to be written back out. Because a match
// consumes its right boundary, an immediately following run ("*a* *b*")
// is invisible to the same scan; repeating until the text settles picks up
// the ones each pass skipped.
func replaceItalic(s string, re *regexp.Regexp, save func(string) string) string {
	for {
		out := re.ReplaceAllStringFunc(s, func(m string) string {
			g := re.FindStringSubmatch(m)
			return g[1] + save("<em>"+g[2]+"</em>") + g[3]
		})
		if out == s {
			return out
		}
		s = out
	}
}
