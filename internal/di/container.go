package di

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-notes/internal/commands"
	manifestcmd "github.com/goliatone/go-notes/internal/commands/manifest"
	"github.com/goliatone/go-notes/internal/documents"
	noteshttp "github.com/goliatone/go-notes/internal/http"
	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/internal/logging/gologger"
	"github.com/goliatone/go-notes/internal/manifest"
	"github.com/goliatone/go-notes/internal/markdown"
	"github.com/goliatone/go-notes/internal/runtimeconfig"
	"github.com/goliatone/go-notes/internal/server"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Container wires the notes services from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	store          interfaces.DocumentStore
	manifestRoot   manifest.Source
	renderer       interfaces.DocumentRenderer

	generator *manifest.Generator
	metrics   *noteshttp.Metrics
	handler   http.Handler
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the go-logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithDocumentStore overrides the filesystem store. The manifest generator
// keeps reading the configured root unless the store also implements
// manifest.Source.
func WithDocumentStore(store interfaces.DocumentStore) Option {
	return func(c *Container) {
		if store != nil {
			c.store = store
		}
	}
}

// WithRenderer overrides the goldmark renderer.
func WithRenderer(renderer interfaces.DocumentRenderer) Option {
	return func(c *Container) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureDocuments(); err != nil {
		return nil, err
	}
	c.configureManifest()
	if err := c.configureHTTP(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
	})
	if err != nil {
		return fmt.Errorf("di: logger provider: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureDocuments() error {
	fsStore, err := documents.NewStore(
		documents.Config{Root: c.Config.Documents.Root},
		documents.WithLogger(logging.DocumentsLogger(c.loggerProvider)),
	)
	if err != nil {
		return err
	}
	c.manifestRoot = fsStore
	if c.store == nil {
		c.store = fsStore
	} else if source, ok := c.store.(manifest.Source); ok {
		c.manifestRoot = source
	}

	if c.renderer == nil {
		c.renderer = markdown.NewRenderer(markdown.Options{
			Extensions: c.Config.Markdown.Extensions,
			HardWraps:  c.Config.Markdown.HardWraps,
			SafeMode:   c.Config.Markdown.SafeMode,
		})
	}
	return nil
}

func (c *Container) configureManifest() {
	c.generator = manifest.NewGenerator(c.manifestRoot,
		manifest.WithLogger(logging.ManifestLogger(c.loggerProvider)),
	)
}

func (c *Container) configureHTTP() error {
	httpLogger := logging.HTTPLogger(c.loggerProvider)
	api := noteshttp.NewDocumentsAPI(
		noteshttp.WithDocumentStore(c.store),
		noteshttp.WithRenderer(c.renderer),
		noteshttp.WithLogger(httpLogger),
	)

	frontend, err := noteshttp.NewFrontend(c.Config.Static.Dir, c.Config.Static.Index)
	if err != nil {
		return fmt.Errorf("di: frontend: %w", err)
	}

	routerCfg := noteshttp.RouterConfig{
		API:      api,
		Frontend: frontend,
		Logger:   httpLogger,
	}
	if c.Config.Metrics.Enabled {
		c.metrics = noteshttp.NewMetrics("")
		routerCfg.Metrics = c.metrics
		routerCfg.MetricsPath = c.Config.Metrics.Path
	}

	handler, err := noteshttp.NewRouter(routerCfg)
	if err != nil {
		return fmt.Errorf("di: router: %w", err)
	}
	c.handler = handler
	return nil
}

// LoggerProvider returns the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DocumentStore returns the document store.
func (c *Container) DocumentStore() interfaces.DocumentStore {
	return c.store
}

// Renderer returns the markdown renderer.
func (c *Container) Renderer() interfaces.DocumentRenderer {
	return c.renderer
}

// ManifestGenerator returns the manifest generator.
func (c *Container) ManifestGenerator() *manifest.Generator {
	return c.generator
}

// GenerateManifestHandler returns the command handler writing manifests.
func (c *Container) GenerateManifestHandler(onWritten func(*manifest.Manifest)) *manifestcmd.GenerateManifestHandler {
	return manifestcmd.NewGenerateManifestHandler(
		c.generator,
		commands.CommandLogger(c.loggerProvider, "manifest"),
		onWritten,
	)
}

// Metrics returns the HTTP metrics, or nil when disabled.
func (c *Container) Metrics() *noteshttp.Metrics {
	return c.metrics
}

// HTTPHandler returns the root HTTP handler.
func (c *Container) HTTPHandler() http.Handler {
	return c.handler
}

// Server builds the HTTP server for the configured address.
func (c *Container) Server() (*server.Server, error) {
	if c.handler == nil {
		return nil, errors.New("di: http handler not configured")
	}
	return server.New(c.Config.Server, c.handler,
		server.WithLogger(logging.ServerLogger(c.loggerProvider)),
	)
}
