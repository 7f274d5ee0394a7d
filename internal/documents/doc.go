// Package documents implements the read-only document store: first-level
// directories of the document root are categories and the markdown files
// inside them are documents.
package documents
