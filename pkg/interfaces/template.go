package interfaces

import "io"

// TemplateRenderer renders named templates against typed page data. The
// optional writer mirrors the go-router renderer signature; when omitted the
// rendered output is returned as a string.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
