package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-notes/internal/documents"
	"github.com/goliatone/go-notes/internal/markdown"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

type fixture struct {
	root    string
	static  string
	handler http.Handler
	metrics *Metrics
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func setupRouter(t *testing.T, docs map[string]string) fixture {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "docs")
	static := filepath.Join(base, "public")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir root: %v", err)
	}
	writeFiles(t, root, docs)
	writeFiles(t, static, map[string]string{
		"index.html":    "<html>entry</html>",
		"assets/app.js": "console.log('app')",
	})

	store, err := documents.NewStore(documents.Config{Root: root})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	frontend, err := NewFrontend(static, "index.html")
	if err != nil {
		t.Fatalf("NewFrontend: %v", err)
	}
	metrics := NewMetrics("")
	api := NewDocumentsAPI(
		WithDocumentStore(store),
		WithRenderer(markdown.NewRenderer(markdown.Options{})),
	)
	handler, err := NewRouter(RouterConfig{
		API:         api,
		Frontend:    frontend,
		Metrics:     metrics,
		MetricsPath: "/metrics",
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return fixture{root: root, static: static, handler: handler, metrics: metrics}
}

func doRequest(t *testing.T, handler http.Handler, target string, expectStatus int) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != expectStatus {
		t.Fatalf("GET %s: expected status %d got %d body=%s", target, expectStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func TestDocumentsAPI_Scenario(t *testing.T) {
	fx := setupRouter(t, map[string]string{
		"guide/intro.md": "# Intro",
		"guide/setup.md": "# Setup",
		"faq/basics.md":  "# Basics",
	})

	listResp := doRequest(t, fx.handler, "/api/documents", http.StatusOK)
	if got := strings.TrimSpace(listResp.Body.String()); got != `[{"name":"faq","files":["basics.md"]},{"name":"guide","files":["intro.md","setup.md"]}]` {
		t.Fatalf("unexpected listing %s", got)
	}
	if ct := listResp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	docResp := doRequest(t, fx.handler, "/api/document/guide/intro.md", http.StatusOK)
	if got := strings.TrimSpace(docResp.Body.String()); got != `{"content":"# Intro"}` {
		t.Fatalf("unexpected document body %s", got)
	}
}

func TestDocumentsAPI_MissingRootListsEmpty(t *testing.T) {
	fx := setupRouter(t, nil)
	if err := os.RemoveAll(fx.root); err != nil {
		t.Fatalf("remove root: %v", err)
	}
	resp := doRequest(t, fx.handler, "/api/documents", http.StatusOK)
	if got := strings.TrimSpace(resp.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestDocumentsAPI_EmptyCategoryHasEmptyFiles(t *testing.T) {
	fx := setupRouter(t, map[string]string{"notes/readme.txt": "plain"})
	resp := doRequest(t, fx.handler, "/api/documents", http.StatusOK)
	if got := strings.TrimSpace(resp.Body.String()); got != `[{"name":"notes","files":[]}]` {
		t.Fatalf("unexpected listing %s", got)
	}
}

func TestDocumentsAPI_ErrorResponses(t *testing.T) {
	fx := setupRouter(t, map[string]string{"guide/intro.md": "# Intro"})
	writeFiles(t, filepath.Dir(fx.root), map[string]string{"secret.md": "top secret"})

	cases := []struct {
		name    string
		target  string
		status  int
		message string
	}{
		{"missing file", "/api/document/guide/missing.md", http.StatusNotFound, "File not found"},
		{"missing category", "/api/document/nope/intro.md", http.StatusNotFound, "File not found"},
		{"dotted name", "/api/document/guide/intro..md", http.StatusBadRequest, "Invalid path"},
		{"literal traversal", "/api/document/guide/../../secret.md", http.StatusBadRequest, "Invalid path"},
		{"encoded traversal", "/api/document/guide/%2e%2e/%2e%2e/secret.md", http.StatusBadRequest, "Invalid path"},
		{"encoded category traversal", "/api/document/%2e%2e/secret.md", http.StatusBadRequest, "Invalid path"},
		{"category is a directory", "/api/document/guide/", http.StatusNotFound, "File not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, fx.handler, tc.target, tc.status)
			var body errorResponse
			decodeBody(t, resp, &body)
			if body.Error != tc.message {
				t.Fatalf("expected error %q got %q", tc.message, body.Error)
			}
		})
	}
}

func TestDocumentsAPI_NestedDocument(t *testing.T) {
	fx := setupRouter(t, map[string]string{"guide/sub/deep.md": "deep"})
	resp := doRequest(t, fx.handler, "/api/document/guide/sub/deep.md", http.StatusOK)
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["content"] != "deep" {
		t.Fatalf("unexpected content %q", body["content"])
	}
}

func TestDocumentsAPI_RenderHTML(t *testing.T) {
	fx := setupRouter(t, map[string]string{
		"guide/intro.md": "---\ntitle: Intro\n---\n# Intro\n",
	})
	resp := doRequest(t, fx.handler, "/api/document/guide/intro.md?render=html", http.StatusOK)

	var body struct {
		Content string         `json:"content"`
		HTML    string         `json:"html"`
		Meta    map[string]any `json:"meta"`
	}
	decodeBody(t, resp, &body)
	if body.Content != "---\ntitle: Intro\n---\n# Intro\n" {
		t.Fatalf("expected raw content, got %q", body.Content)
	}
	if !strings.Contains(body.HTML, "<h1") || !strings.Contains(body.HTML, "Intro</h1>") {
		t.Fatalf("expected rendered heading, got %q", body.HTML)
	}
	if body.Meta["title"] != "Intro" {
		t.Fatalf("expected title meta, got %#v", body.Meta)
	}
}

type failingStore struct {
	err error
}

func (f failingStore) List(context.Context) ([]interfaces.Category, error) {
	return nil, f.err
}

func (f failingStore) Read(context.Context, string, string) (*interfaces.Document, error) {
	return nil, f.err
}

func TestDocumentsAPI_ServiceErrorsReportMessage(t *testing.T) {
	api := NewDocumentsAPI(WithDocumentStore(failingStore{err: errors.New("disk on fire")}))
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, target := range []string{"/api/documents", "/api/document/guide/intro.md"} {
		resp := doRequest(t, mux, target, http.StatusInternalServerError)
		var body errorResponse
		decodeBody(t, resp, &body)
		if body.Error != "disk on fire" {
			t.Fatalf("%s: expected failure message, got %q", target, body.Error)
		}
	}
}

func TestDocumentsAPI_RegisterRequiresStore(t *testing.T) {
	if err := NewDocumentsAPI().Register(http.NewServeMux()); err == nil {
		t.Fatal("expected error without a store")
	}
}

func TestDocumentsAPI_CustomBasePath(t *testing.T) {
	store, err := documents.NewStore(documents.Config{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	api := NewDocumentsAPI(WithDocumentStore(store), WithBasePath("/v2/"))
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("Register: %v", err)
	}
	doRequest(t, mux, "/v2/documents", http.StatusOK)
}

func TestHealthz(t *testing.T) {
	fx := setupRouter(t, nil)
	resp := doRequest(t, fx.handler, "/healthz", http.StatusOK)
	var body map[string]string
	decodeBody(t, resp, &body)
	if !reflect.DeepEqual(body, map[string]string{"status": "ok"}) {
		t.Fatalf("unexpected health body %#v", body)
	}
}
