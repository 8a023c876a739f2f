package score

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/replyfmt/internal/sectiontree"
)

var (
	scoreRe      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*(\d+)`)
	standaloneRe = regexp.MustCompile(`(?i)^(?:score\s*:\s*)?(\d+(?:\.\d+)?)\s*/\s*(\d+)$`)
)

// heroWords marks section titles that carry an overall verdict. Matching is
// substring-based on a lowercased, punctuation-stripped title.
var heroWords = []string{
	"overall",
	"total",
	"final",
	"summary",
	"verdict",
	"rating",
	"scorecard",
}

// Extract returns the first value/max expression in text. It does not match
// when max is zero or either number fails to parse.
func Extract(text string) *sectiontree.Score {
	m := scoreRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return parsePair(m[1], m[2])
}

// ExtractStandalone matches only when the entire trimmed line is a score,
// optionally prefixed by a "score:" label.
func ExtractStandalone(line string) *sectiontree.Score {
	m := standaloneRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil
	}
	return parsePair(m[1], m[2])
}

// ExtractHero pulls a score out of a heading title and returns the remaining
// text as the display label. The label keeps its original casing; score
// punctuation around the removed expression is trimmed away.
func ExtractHero(title string) (label string, s *sectiontree.Score) {
	loc := scoreRe.FindStringIndex(title)
	if loc == nil {
		return strings.TrimSpace(title), nil
	}
	m := scoreRe.FindStringSubmatch(title)
	s = parsePair(m[1], m[2])
	if s == nil {
		return strings.TrimSpace(title), nil
	}
	before := strings.TrimRight(title[:loc[0]], " \t:-–(")
	after := strings.TrimLeft(title[loc[1]:], " \t:-–)")
	label = strings.TrimSpace(strings.TrimSpace(before) + " " + strings.TrimSpace(after))
	return label, s
}

// IsHeroTitle reports whether a section title names an overall verdict.
func IsHeroTitle(title string) bool {
	norm := normalizeTitle(title)
	for _, w := range heroWords {
		if strings.Contains(norm, w) {
			return true
		}
	}
	return false
}

func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parsePair(valueStr, maxStr string) *sectiontree.Score {
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return nil
	}
	max, err := strconv.ParseFloat(maxStr, 64)
	if err != nil || max <= 0 {
		return nil
	}
	return &sectiontree.Score{Value: value, Max: max}
}

// Tier buckets a score into one of five color tiers. The value is normalized
// to a 0-10 scale first (scores declared out of 100 are divided by 10). Every
// rendering site must go through this function so the mapping cannot drift.
func Tier(value, max float64) string {
	v := value
	if max == 100 {
		v = value / 10
	}
	switch {
	case v >= 8:
		return "excellent"
	case v >= 6:
		return "good"
	case v >= 4:
		return "average"
	case v >= 2:
		return "poor"
	default:
		return "bad"
	}
}
