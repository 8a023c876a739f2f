package render

import (
	"strings"

	"github.com/dgallion1/replyfmt/internal/sectiontree"
)

// Sections renders the sectionizer's tree. The output uses exactly the same
// hero/badge/list/code primitives as the structured path.
func (r *Renderer) Sections(nodes []*sectiontree.Node) string {
	var b strings.Builder
	for _, node := range nodes {
		r.writeNode(&b, node, 0)
	}
	return b.String()
}

func (r *Renderer) writeNode(b *strings.Builder, node *sectiontree.Node, depth int) {
	switch node.Kind {
	case sectiontree.KindHero:
		b.WriteString(heroBlock(node.Title, node.Score.Value, node.Score.Max))

	case sectiontree.KindSection:
		tag := headingTag(depth)
		b.WriteString(`<div class="fmt-section">`)
		b.WriteString("<" + tag + ">")
		b.WriteString(escape(node.Title))
		if node.Score != nil {
			b.WriteString(" ")
			b.WriteString(badge(node.Score.Value, node.Score.Max))
		}
		b.WriteString("</" + tag + ">")
		for _, child := range node.Children {
			r.writeNode(b, child, depth+1)
		}
		b.WriteString(`</div>`)

	case sectiontree.KindParagraph:
		b.WriteString("<p>")
		b.WriteString(Inline(node.Content))
		b.WriteString("</p>")

	case sectiontree.KindList:
		b.WriteString(`<ul class="fmt-list">`)
		for _, item := range node.Items {
			b.WriteString("<li>")
			b.WriteString(Inline(item))
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")

	case sectiontree.KindCode:
		b.WriteString(r.codeBlock(node.Content, node.Language))
	}
}
