package sectiontree

// Kind discriminates the section variants. Every Node carries exactly one
// kind; the other fields are meaningful only for that kind.
type Kind int

const (
	KindHero Kind = iota // standalone headline score, terminal
	KindSection          // titled group with children
	KindParagraph        // leaf prose block
	KindList             // leaf bulleted list
	KindCode             // leaf preformatted block
)

// Score is a value/max pair extracted from text. Max is always > 0 when a
// Score exists; Value is rendered as-is even when it exceeds Max.
type Score struct {
	Value float64
	Max   float64
}

// Node is one section in a parsed response. It is a tagged union over Kind.
type Node struct {
	Kind  Kind
	Title string // Hero, Section
	Score *Score // Hero (always set), Section (optional badge)

	Content  string // Paragraph, Code
	Language string // Code (empty if the fence declared none)

	Items []string // List

	Children []*Node // Section
}

// Hero builds a terminal hero node.
func Hero(title string, score Score) *Node {
	s := score
	return &Node{Kind: KindHero, Title: title, Score: &s}
}

// Section builds an open titled group.
func Section(title string, score *Score) *Node {
	return &Node{Kind: KindSection, Title: title, Score: score}
}

// Paragraph builds a leaf prose node.
func Paragraph(content string) *Node {
	return &Node{Kind: KindParagraph, Content: content}
}

// List builds a leaf list node.
func List(items []string) *Node {
	return &Node{Kind: KindList, Items: items}
}

// Code builds a leaf preformatted node.
func Code(content, language string) *Node {
	return &Node{Kind: KindCode, Content: content, Language: language}
}

// Empty reports whether a section accumulated neither children nor a score.
// Empty sections are discarded rather than rendered as bare headings.
func (n *Node) Empty() bool {
	return n.Kind == KindSection && len(n.Children) == 0 && n.Score == nil
}
