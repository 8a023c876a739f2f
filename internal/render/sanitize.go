package render

import "github.com/microcosm-cc/bluemonday"

// NewPolicy builds the sanitation policy matched to the renderer's element
// vocabulary. Every final document passes through it, so even a rendering
// bug cannot let raw model text reach the caller as live markup.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "span", "p", "ul", "ol", "li", "pre", "code",
		"a", "strong", "em", "br", "h3", "h4", "h5")
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowStandardURLs()
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireNoFollowOnLinks(true)
	// chroma emits inline styles on highlighted tokens.
	p.AllowAttrs("style").OnElements("span", "pre", "code")
	p.AllowStyles("color", "background-color", "font-weight", "font-style",
		"text-decoration", "white-space").OnElements("span", "pre", "code")
	return p
}
