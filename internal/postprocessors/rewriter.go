package postprocessors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
)

// Resolved is a directive paired with its resolution outcome
type Resolved struct {
	Directive  Directive
	Resolution Resolution
}

// Rewrite replaces each directive's span in the text with a Markdown image
// tag (or an inline failure annotation) and returns the rewritten text plus
// the manifest of successfully embedded media.
//
// Spans address the immutable input by byte offset. The output is assembled
// by concatenating untouched slices with replacement text, so byte-identical
// spans each receive their own resolution and no replacement can land inside
// another directive's text. A span that does not match the input at its
// recorded offset is left untouched.
func Rewrite(text string, pairs []Resolved) (string, []domain.EmbeddedMedia) {
	sorted := make([]Resolved, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Directive.Position < sorted[j].Directive.Position
	})

	var out strings.Builder
	var manifest []domain.EmbeddedMedia
	cursor := 0
	for _, pair := range sorted {
		d := pair.Directive
		res := pair.Resolution

		start := d.Position
		end := start + len(d.RawSpan)
		if start < cursor || end > len(text) || text[start:end] != d.RawSpan {
			continue
		}

		var replacement string
		if res.Resolved() {
			replacement = fmt.Sprintf("![%s](%s)", mediaLabel(d), res.URL)
			manifest = append(manifest, domain.EmbeddedMedia{
				Description: mediaLabel(d),
				URL:         res.URL,
				Kind:        d.Kind.MediaKind(),
			})
		} else {
			// Keep the original directive visible so the author can see what
			// failed and retry, instead of silently dropping content.
			replacement = fmt.Sprintf("%s\n*(%s: %s)*", d.RawSpan, failureLabel(d.Kind), res.Failure)
		}

		out.WriteString(text[cursor:start])
		out.WriteString(replacement)
		cursor = end
	}
	out.WriteString(text[cursor:])

	return out.String(), manifest
}

func mediaLabel(d Directive) string {
	if d.Kind == DirectiveDiagram {
		return d.Engine + " diagram"
	}
	return d.Description
}

func failureLabel(kind DirectiveKind) string {
	switch kind {
	case DirectiveImageSearch:
		return "Image search failed"
	case DirectiveImageGenerate:
		return "Image generation failed"
	default:
		return "Diagram rendering failed"
	}
}
