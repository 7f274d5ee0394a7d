package notes

import (
	"context"
	"net/http"

	manifestcmd "github.com/goliatone/go-notes/internal/commands/manifest"
	"github.com/goliatone/go-notes/internal/di"
	"github.com/goliatone/go-notes/internal/manifest"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// DocumentStore exports the document store contract.
type DocumentStore = interfaces.DocumentStore

// DocumentRenderer exports the markdown renderer contract.
type DocumentRenderer = interfaces.DocumentRenderer

// Category exports the listing entry DTO.
type Category = interfaces.Category

// Document exports the fetched document DTO.
type Document = interfaces.Document

// Manifest exports the directory manifest DTO.
type Manifest = manifest.Manifest

// GenerateManifestCommand exports the manifest command message.
type GenerateManifestCommand = manifestcmd.GenerateManifestCommand

// Option customises the module wiring.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithDocumentStore  = di.WithDocumentStore
	WithRenderer       = di.WithRenderer
)

// Module is the top level notes runtime façade.
type Module struct {
	container *di.Container
}

// New validates cfg and wires the notes services.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.container.Config
}

// Documents returns the document store.
func (m *Module) Documents() DocumentStore {
	return m.container.DocumentStore()
}

// Handler returns the HTTP handler serving the API and the frontend.
func (m *Module) Handler() http.Handler {
	return m.container.HTTPHandler()
}

// Serve runs the HTTP server until ctx is cancelled.
func (m *Module) Serve(ctx context.Context) error {
	srv, err := m.container.Server()
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// GenerateManifest writes the directory manifest to output, or to the
// configured manifest.output when output is empty.
func (m *Module) GenerateManifest(ctx context.Context, output string) (*Manifest, error) {
	if output == "" {
		output = m.container.Config.Manifest.Output
	}
	var written *Manifest
	handler := m.container.GenerateManifestHandler(func(result *manifest.Manifest) {
		written = result
	})
	if err := handler.Execute(ctx, GenerateManifestCommand{Output: output}); err != nil {
		return nil, err
	}
	return written, nil
}
