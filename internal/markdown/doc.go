// Package markdown renders document bodies to HTML with goldmark and pulls
// frontmatter metadata out with adrg/frontmatter. The document store never
// depends on it; rendering only happens when a client asks for it.
package markdown
