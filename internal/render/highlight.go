package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// codeBlock renders a preformatted block with syntax highlighting. Unknown
// languages fall back to content-based detection, and any highlighting
// failure falls back to escaped plain text for that block only.
func (r *Renderer) codeBlock(code, language string) string {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		return plainCodeBlock(code)
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(r.HighlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plainCodeBlock(code)
	}

	var b strings.Builder
	b.WriteString(`<div class="fmt-code">`)
	formatter := chromahtml.New()
	if err := formatter.Format(&b, style, iterator); err != nil {
		return plainCodeBlock(code)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func plainCodeBlock(code string) string {
	return `<div class="fmt-code"><pre><code>` + escape(code) + `</code></pre></div>`
}
