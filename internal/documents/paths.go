package documents

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// resolve maps category/name onto an absolute path inside the root.
//
// Names containing ".." are rejected outright. The joined path is then
// cleaned and, once symlinks are resolved, must still live under the root.
func (s *Store) resolve(category, name string) (string, error) {
	if strings.Contains(category, "..") || strings.Contains(name, "..") {
		return "", invalidPathError()
	}
	if strings.TrimSpace(category) == "" || strings.TrimSpace(name) == "" {
		return "", notFoundError()
	}
	if strings.ContainsRune(category, 0) || strings.ContainsRune(name, 0) {
		return "", invalidPathError()
	}
	if category == "." || strings.ContainsAny(category, `/\`) {
		return "", invalidPathError()
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", invalidPathError()
	}

	joined := filepath.Join(s.root, category, filepath.FromSlash(name))
	if !within(s.root, joined) {
		return "", invalidPathError()
	}

	resolvedRoot, err := filepath.EvalSymlinks(s.root)
	if err != nil {
		return "", notFoundError()
	}
	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return joined, nil
		}
		return "", notFoundError()
	}
	if !within(resolvedRoot, resolved) {
		return "", invalidPathError()
	}
	return resolved, nil
}

func within(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}
