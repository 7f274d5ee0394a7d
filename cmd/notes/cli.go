package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	notes "github.com/goliatone/go-notes"
)

// app holds the seams the commands depend on.
type app struct {
	lookupEnv func(string) (string, bool)
	newModule func(notes.Config) (*notes.Module, error)
	serve     func(context.Context, *notes.Module) error
	out       io.Writer
}

func defaultApp() *app {
	return &app{
		lookupEnv: os.LookupEnv,
		newModule: func(cfg notes.Config) (*notes.Module, error) { return notes.New(cfg) },
		serve: func(ctx context.Context, m *notes.Module) error {
			return m.Serve(ctx)
		},
		out: os.Stdout,
	}
}

type overrides struct {
	configPath string
	address    string
	docsRoot   string
	staticDir  string
	logLevel   string
	logFormat  string
	output     string
}

func newRootCommand(a *app) *cobra.Command {
	opts := &overrides{}

	root := &cobra.Command{
		Use:           "notes",
		Short:         "Serve a directory of markdown documents over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&opts.docsRoot, "docs-root", "", "document root directory")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (trace|debug|info|warn|error|fatal)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (json|console|pretty)")

	root.AddCommand(newServeCommand(a, opts), newManifestCommand(a, opts))
	return root
}

func newServeCommand(a *app, opts *overrides) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the document API and frontend server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.resolveConfig(opts)
			if err != nil {
				return err
			}
			module, err := a.newModule(cfg)
			if err != nil {
				return err
			}
			return a.serve(cmd.Context(), module)
		},
	}
	cmd.Flags().StringVarP(&opts.address, "address", "a", "", "listen address (host:port)")
	cmd.Flags().StringVar(&opts.staticDir, "static-dir", "", "directory holding the frontend")
	return cmd
}

func newManifestCommand(a *app, opts *overrides) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write the directory manifest JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.resolveConfig(opts)
			if err != nil {
				return err
			}
			module, err := a.newModule(cfg)
			if err != nil {
				return err
			}
			written, err := module.GenerateManifest(cmd.Context(), "")
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "wrote %s (%d directories)\n", cfg.Manifest.Output, len(written.Directories))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "manifest output path")
	return cmd
}

// resolveConfig layers defaults, the YAML file, the environment and flags.
func (a *app) resolveConfig(opts *overrides) (notes.Config, error) {
	cfg := notes.DefaultConfig()
	if path := strings.TrimSpace(opts.configPath); path != "" {
		loaded, err := notes.LoadConfig(path)
		if err != nil {
			return notes.Config{}, err
		}
		cfg = loaded
	}
	if a.lookupEnv != nil {
		cfg.ApplyEnv(a.lookupEnv)
	}

	set := func(value string, target *string) {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			*target = trimmed
		}
	}
	set(opts.address, &cfg.Server.Address)
	set(opts.docsRoot, &cfg.Documents.Root)
	set(opts.staticDir, &cfg.Static.Dir)
	set(opts.logLevel, &cfg.Logging.Level)
	set(opts.logFormat, &cfg.Logging.Format)
	set(opts.output, &cfg.Manifest.Output)

	if err := cfg.Validate(); err != nil {
		return notes.Config{}, err
	}
	return cfg, nil
}
