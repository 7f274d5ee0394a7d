package http

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

const (
	defaultAPIBase = "/api"
	documentsPath  = "documents"
	documentPath   = "document"
	healthPath     = "/healthz"
)

// DocumentsAPI serves the document listing and retrieval endpoints.
type DocumentsAPI struct {
	basePath string
	store    interfaces.DocumentStore
	renderer interfaces.DocumentRenderer
	logger   interfaces.Logger
}

// DocumentsOption mutates the DocumentsAPI configuration.
type DocumentsOption func(*DocumentsAPI)

// NewDocumentsAPI constructs a DocumentsAPI instance.
func NewDocumentsAPI(opts ...DocumentsOption) *DocumentsAPI {
	api := &DocumentsAPI{
		basePath: defaultAPIBase,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the API prefix (defaults to "/api").
func WithBasePath(base string) DocumentsOption {
	return func(api *DocumentsAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(base); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithDocumentStore wires the document store.
func WithDocumentStore(store interfaces.DocumentStore) DocumentsOption {
	return func(api *DocumentsAPI) {
		if api != nil {
			api.store = store
		}
	}
}

// WithRenderer wires the markdown renderer used for ?render=html.
func WithRenderer(renderer interfaces.DocumentRenderer) DocumentsOption {
	return func(api *DocumentsAPI) {
		if api != nil {
			api.renderer = renderer
		}
	}
}

// WithLogger injects the API logger.
func WithLogger(logger interfaces.Logger) DocumentsOption {
	return func(api *DocumentsAPI) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register mounts the API routes on mux.
func (api *DocumentsAPI) Register(mux *http.ServeMux) error {
	if api == nil {
		return errors.New("documents api is nil")
	}
	if mux == nil {
		return errors.New("mux is nil")
	}
	if api.store == nil {
		return errors.New("document store is required")
	}

	mux.HandleFunc("GET "+api.listPath(), api.handleList)
	mux.HandleFunc("GET "+api.documentPrefix()+"{dir}/{file...}", api.handleDocument)
	mux.HandleFunc("GET "+healthPath, api.handleHealth)
	return nil
}

// Guard serves document requests whose paths carry dot segments before
// the mux cleans and redirects them, so ".." is always answered with 400.
func (api *DocumentsAPI) Guard(next http.Handler) http.Handler {
	prefix := api.documentPrefix()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || !strings.HasPrefix(r.URL.Path, prefix) || path.Clean(r.URL.Path) == r.URL.Path {
			next.ServeHTTP(w, r)
			return
		}
		dir, file, ok := strings.Cut(strings.TrimPrefix(r.URL.Path, prefix), "/")
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		r.SetPathValue("dir", dir)
		r.SetPathValue("file", file)
		api.handleDocument(w, r)
	})
}

func (api *DocumentsAPI) listPath() string {
	return joinPath(api.basePath, documentsPath)
}

func (api *DocumentsAPI) documentPrefix() string {
	return joinPath(api.basePath, documentPath) + "/"
}

func (api *DocumentsAPI) handleList(w http.ResponseWriter, r *http.Request) {
	categories, err := api.store.List(r.Context())
	if err != nil {
		api.logger.Error("http.documents.list.failed", "error", err)
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []interfaces.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

type documentResponse struct {
	Content string `json:"content"`
}

type renderedResponse struct {
	Content string         `json:"content"`
	HTML    string         `json:"html"`
	Meta    map[string]any `json:"meta"`
}

func (api *DocumentsAPI) handleDocument(w http.ResponseWriter, r *http.Request) {
	dir := r.PathValue("dir")
	file := r.PathValue("file")
	logger := logging.WithDocumentContext(api.logger, dir, file)

	doc, err := api.store.Read(r.Context(), dir, file)
	if err != nil {
		logger.Debug("http.document.read.failed", "error", err)
		writeError(w, err)
		return
	}

	if !wantsHTML(r) || api.renderer == nil {
		writeJSON(w, http.StatusOK, documentResponse{Content: doc.Content})
		return
	}

	rendered, err := api.renderer.Render(r.Context(), []byte(doc.Content))
	if err != nil {
		logger.Error("http.document.render.failed", "error", err)
		writeError(w, err)
		return
	}
	meta := rendered.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	writeJSON(w, http.StatusOK, renderedResponse{
		Content: doc.Content,
		HTML:    rendered.HTML,
		Meta:    meta,
	})
}

func (api *DocumentsAPI) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
