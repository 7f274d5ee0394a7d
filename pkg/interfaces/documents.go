package interfaces

import "context"

// Category is a first-level directory of the document root together with the
// markdown files it holds.
type Category struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

// Document is the raw content of a single markdown file.
type Document struct {
	Category string `json:"-"`
	Name     string `json:"-"`
	Path     string `json:"-"`
	Content  string `json:"content"`
}

// DocumentStore lists and reads documents. Implementations are read-only.
type DocumentStore interface {
	List(ctx context.Context) ([]Category, error)
	Read(ctx context.Context, category, name string) (*Document, error)
}

// RenderedDocument carries the HTML rendering of a document body and the
// metadata found in its frontmatter block.
type RenderedDocument struct {
	HTML string         `json:"html"`
	Meta map[string]any `json:"meta"`
}

// DocumentRenderer turns markdown source into HTML.
type DocumentRenderer interface {
	Render(ctx context.Context, source []byte) (*RenderedDocument, error)
}
