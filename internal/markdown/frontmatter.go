package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// SplitFrontMatter separates a leading YAML, TOML or JSON frontmatter block
// from the markdown body. Sources without frontmatter return an empty map
// and the source unchanged. Nested maps are converted to map[string]any so
// the metadata can be JSON encoded.
func SplitFrontMatter(source []byte) (map[string]any, []byte, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	out := make(map[string]any, len(meta))
	for key, value := range meta {
		out[key] = normaliseValue(value)
	}
	return out, body, nil
}

func normaliseValue(value any) any {
	switch typed := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = normaliseValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = normaliseValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normaliseValue(item)
		}
		return out
	default:
		return value
	}
}
