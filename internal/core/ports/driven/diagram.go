package driven

import "context"

// DiagramFormat is the rendered output format
type DiagramFormat string

const (
	DiagramFormatPNG DiagramFormat = "png"
	DiagramFormatSVG DiagramFormat = "svg"
)

// DiagramRenderService renders diagram source (mermaid, graphviz, ...) to
// image bytes via an external rendering service.
//
// Render must report a 4xx response as an error wrapping
// domain.ErrDiagramSyntax so callers can distinguish rejected source from
// transient failures.
type DiagramRenderService interface {
	// Render submits diagram source and returns the rendered image bytes
	Render(ctx context.Context, engine, source string, format DiagramFormat) ([]byte, error)

	// RenderURL builds a GET URL with the source compressed and encoded into
	// the path. Only practical for small sources; callers should verify the
	// URL with CheckURL before embedding it.
	RenderURL(engine, source string, format DiagramFormat) (string, error)

	// CheckURL performs a lightweight existence check on a render URL
	CheckURL(ctx context.Context, url string) error
}
