package http

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const defaultIndex = "index.html"

// Frontend serves the single-page frontend: the entry page for "/" and
// every "/docs/..." route, and static assets for anything else.
type Frontend struct {
	dir   string
	index string
	files http.Handler
}

// NewFrontend serves files from dir. index names the entry page inside dir.
func NewFrontend(dir, index string) (*Frontend, error) {
	root := strings.TrimSpace(dir)
	if root == "" {
		return nil, errors.New("static directory is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(index)
	if name == "" {
		name = defaultIndex
	}
	return &Frontend{
		dir:   abs,
		index: name,
		files: http.FileServer(noDirFS{http.Dir(abs)}),
	}, nil
}

// Register mounts the frontend routes on mux. Register the API first so
// its more specific patterns take precedence.
func (f *Frontend) Register(mux *http.ServeMux) error {
	if f == nil {
		return errors.New("frontend is nil")
	}
	if mux == nil {
		return errors.New("mux is nil")
	}
	mux.HandleFunc("GET /{$}", f.serveIndex)
	mux.HandleFunc("GET /docs/", f.serveIndex)
	mux.Handle("GET /", f.files)
	return nil
}

func (f *Frontend) serveIndex(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(f.dir, f.index)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// noDirFS hides directories and dot-prefixed names (".git", ".env") so the
// file server never renders listings or leaks repository files.
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	if hasHiddenSegment(name) {
		return nil, fs.ErrNotExist
	}
	file, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

func hasHiddenSegment(name string) bool {
	for _, segment := range strings.Split(name, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
