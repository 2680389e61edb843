package tui

import "github.com/goliatone/go-surveybuilder/pkg/model"

// Theme captures optional formatting hints the editor applies when printing
// messages. Keep minimal to avoid coupling editor logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Previewer renders a snapshot as a standalone page. preview.Renderer
// satisfies it.
type Previewer interface {
	Render(snapshot model.Snapshot, invalid ...model.FieldID) ([]byte, error)
}

// Logger receives operational messages. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// Option configures the Editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver used by the editor.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(e *Editor) {
		e.theme = theme
	}
}

// WithPreview enables the preview action, writing rendered pages to path.
func WithPreview(previewer Previewer, path string) Option {
	return func(e *Editor) {
		if previewer != nil && path != "" {
			e.previewer = previewer
			e.previewPath = path
		}
	}
}

// WithLogger attaches a logger for failures that are not shown to the user.
func WithLogger(logger Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}
