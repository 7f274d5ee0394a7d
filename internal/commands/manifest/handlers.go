package manifestcmd

import (
	"context"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-notes/internal/commands"
	"github.com/goliatone/go-notes/internal/manifest"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// ManifestWriter is the subset of manifest.Generator used by the handler.
type ManifestWriter interface {
	Write(ctx context.Context, path string) (*manifest.Manifest, error)
}

// GenerateManifestHandler runs GenerateManifestCommand through the shared
// command handler.
type GenerateManifestHandler struct {
	inner *commands.Handler[GenerateManifestCommand]
}

var _ command.Commander[GenerateManifestCommand] = (*GenerateManifestHandler)(nil)

// NewGenerateManifestHandler builds a handler writing through writer.
// The optional onWritten callback receives the manifest that was written.
func NewGenerateManifestHandler(writer ManifestWriter, logger interfaces.Logger, onWritten func(*manifest.Manifest), opts ...commands.HandlerOption[GenerateManifestCommand]) *GenerateManifestHandler {
	exec := func(ctx context.Context, msg GenerateManifestCommand) error {
		written, err := writer.Write(ctx, strings.TrimSpace(msg.Output))
		if err != nil {
			return err
		}
		if onWritten != nil {
			onWritten(written)
		}
		return nil
	}

	base := []commands.HandlerOption[GenerateManifestCommand]{
		commands.WithLogger[GenerateManifestCommand](logger),
		commands.WithOperation[GenerateManifestCommand]("manifest.generate"),
	}
	base = append(base, opts...)

	return &GenerateManifestHandler{
		inner: commands.NewHandler(exec, base...),
	}
}

// Execute implements command.Commander[GenerateManifestCommand].
func (h *GenerateManifestHandler) Execute(ctx context.Context, msg GenerateManifestCommand) error {
	return h.inner.Execute(ctx, msg)
}
