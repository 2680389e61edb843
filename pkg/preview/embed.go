package preview

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// DefaultTemplate is the name of the bundled survey page template.
const DefaultTemplate = "templates/survey.html.tmpl"

// TemplatesFS exposes the embedded template bundle so callers can copy or
// extend it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
