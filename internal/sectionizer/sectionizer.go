// Package sectionizer converts raw prose-style model output into a tree of
// typed sections. It is a single pass over lines with a small explicit state
// struct; there is no lookahead and no backtracking, so identical input
// always yields an identical tree.
package sectionizer

import (
	"regexp"
	"strings"

	"github.com/dgallion1/replyfmt/internal/score"
	"github.com/dgallion1/replyfmt/internal/sectiontree"
)

var (
	// One alternative per marker; RE2 has no backreferences.
	hrRe      = regexp.MustCompile(`^\s*(?:-(?:\s*-){2,}|\*(?:\s*\*){2,}|_(?:\s*_){2,})\s*$`)
	headingRe = regexp.MustCompile(`^(#{1,3})\s+(.+)$`)
	bulletRe  = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)
)

type state struct {
	root     []*sectiontree.Node
	current  *sectiontree.Node // open section awaiting its terminator
	content  []string
	inCode   bool
	code     []string
	codeLang string
}

// Parse runs the sectionizer over the full text and returns the root-level
// section sequence, with the hero-promotion pass already applied.
func Parse(text string) []*sectiontree.Node {
	s := &state{}
	for rest := text; len(rest) > 0; {
		var line string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i+1], rest[i+1:]
		} else {
			line, rest = rest, ""
		}
		s.feed(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
	}
	s.finish()
	return promoteHero(s.root)
}

func (s *state) feed(line string) {
	if s.inCode {
		if isFence(line) {
			s.attach(sectiontree.Code(strings.Join(s.code, "\n"), s.codeLang))
			s.inCode = false
			s.code = nil
			s.codeLang = ""
			return
		}
		s.code = append(s.code, line)
		return
	}

	if hrRe.MatchString(line) {
		return
	}

	if isFence(line) {
		s.flushContent()
		s.inCode = true
		s.codeLang = fenceLanguage(line)
		return
	}

	if m := headingRe.FindStringSubmatch(line); m != nil {
		s.flushContent()
		s.closeCurrent()
		depth := len(m[1])
		label, sc := score.ExtractHero(m[2])
		if depth == 1 && sc != nil {
			// A depth-1 heading carrying a score is the document's
			// headline verdict; it never opens a section.
			s.root = append(s.root, sectiontree.Hero(label, *sc))
			return
		}
		s.current = sectiontree.Section(label, sc)
		return
	}

	if sc := score.ExtractStandalone(line); sc != nil && s.current != nil {
		s.current.Score = sc
		return
	}

	s.content = append(s.content, line)
}

func (s *state) finish() {
	s.flushContent()
	if s.inCode {
		// Unterminated fence in malformed input; keep what was captured.
		s.attach(sectiontree.Code(strings.Join(s.code, "\n"), s.codeLang))
		s.inCode = false
		s.code = nil
		s.codeLang = ""
	}
	s.closeCurrent()
}

// flushContent converts the buffered plain-text lines into a List section if
// they decompose cleanly into items, otherwise into one Paragraph per
// blank-line-separated run.
func (s *state) flushContent() {
	lines := s.content
	s.content = nil
	if strings.TrimSpace(strings.Join(lines, "\n")) == "" {
		return
	}
	if items, ok := parseListItems(lines); ok {
		s.attach(sectiontree.List(items))
		return
	}
	for _, para := range splitParagraphs(lines) {
		s.attach(sectiontree.Paragraph(para))
	}
}

func (s *state) closeCurrent() {
	if s.current == nil {
		return
	}
	if !s.current.Empty() {
		s.root = append(s.root, s.current)
	}
	s.current = nil
}

func (s *state) attach(node *sectiontree.Node) {
	if s.current != nil {
		s.current.Children = append(s.current.Children, node)
		return
	}
	s.root = append(s.root, node)
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}

func fenceLanguage(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "`"))
}

// parseListItems accepts the buffer only when every non-blank line is either
// a bulleted/ordinal item or an indented continuation of the previous item.
// A plain line appearing after items have started rejects the whole buffer,
// which then falls through to paragraph handling.
func parseListItems(lines []string) ([]string, bool) {
	var items []string
	inItem := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			inItem = false
			continue
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[1]))
			inItem = true
			continue
		}
		if inItem && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) {
			items[len(items)-1] += " " + strings.TrimSpace(line)
			continue
		}
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

func splitParagraphs(lines []string) []string {
	var paras []string
	var cur []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(cur) > 0 {
				paras = append(paras, strings.Join(cur, "\n"))
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		paras = append(paras, strings.Join(cur, "\n"))
	}
	return paras
}

// promoteHero rewrites a leading scored section whose title reads like an
// overall verdict into a hero node, splicing its children back into the root
// sequence right after it.
func promoteHero(root []*sectiontree.Node) []*sectiontree.Node {
	if len(root) == 0 {
		return root
	}
	first := root[0]
	if first.Kind != sectiontree.KindSection || first.Score == nil || !score.IsHeroTitle(first.Title) {
		return root
	}
	out := make([]*sectiontree.Node, 0, len(root)+len(first.Children))
	out = append(out, sectiontree.Hero(first.Title, *first.Score))
	out = append(out, first.Children...)
	out = append(out, root[1:]...)
	return out
}
