package markdown

import (
	"context"

	"github.com/yuin/goldmark"

	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Renderer implements interfaces.DocumentRenderer.
type Renderer struct {
	engine goldmark.Markdown
}

var _ interfaces.DocumentRenderer = (*Renderer)(nil)

// NewRenderer builds a Renderer with the given goldmark options.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{engine: newEngine(opts)}
}

// Render strips frontmatter from source and renders the remaining body.
func (r *Renderer) Render(ctx context.Context, source []byte) (*interfaces.RenderedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	meta, body, err := SplitFrontMatter(source)
	if err != nil {
		return nil, err
	}
	html, err := convert(r.engine, body)
	if err != nil {
		return nil, err
	}
	return &interfaces.RenderedDocument{
		HTML: html,
		Meta: meta,
	}, nil
}
