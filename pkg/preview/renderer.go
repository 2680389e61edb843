// Package preview renders a survey draft as a static HTML form page.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-surveybuilder/pkg/model"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	name      string
}

// WithBaseDir loads templates from a directory on disk before falling back to
// the embedded bundle.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS replaces the embedded template bundle.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplate selects the page template by name.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// Renderer turns snapshots into HTML using a pongo2 template set.
type Renderer struct {
	mu       sync.Mutex
	set      *pongo2.TemplateSet
	name     string
	template *pongo2.Template
}

// New builds a Renderer. Templates are parsed lazily on first use.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{
		templates: TemplatesFS(),
		name:      DefaultTemplate,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("preview: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))

	return &Renderer{
		set:  pongo2.NewSet("surveybuilder", loaders...),
		name: cfg.name,
	}, nil
}

// Render returns the page for snapshot. Fields listed in invalid are marked
// with the error class.
func (r *Renderer) Render(snapshot model.Snapshot, invalid ...model.FieldID) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.RenderTo(&buf, snapshot, invalid...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo writes the page for snapshot to w.
func (r *Renderer) RenderTo(w io.Writer, snapshot model.Snapshot, invalid ...model.FieldID) error {
	if r == nil || r.set == nil {
		return errors.New("preview: renderer is nil")
	}
	tmpl, err := r.load()
	if err != nil {
		return err
	}
	ctx := pongo2.Context{"survey": newSurveyView(snapshot, invalid)}
	if err := tmpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("preview: execute template %q: %w", r.name, err)
	}
	return nil
}

func (r *Renderer) load() (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.template != nil {
		return r.template, nil
	}
	tmpl, err := r.set.FromFile(r.name)
	if err != nil {
		return nil, fmt.Errorf("preview: load template %q: %w", r.name, err)
	}
	r.template = tmpl
	return tmpl, nil
}
