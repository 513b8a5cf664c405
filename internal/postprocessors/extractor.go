package postprocessors

import (
	"regexp"
	"sort"
	"strings"
)

// The three directive grammars. The generation placeholder deliberately stops
// at the first newline so it cannot swallow the inline diagram form, which
// requires a newline straight after the engine name.
var (
	imageSearchRe   = regexp.MustCompile(`\{\{IMAGE:([^}]*)\}\}`)
	imageGenerateRe = regexp.MustCompile(`(?i)\{\{(?:GENERATE|DIAGRAM|ILLUSTRATION):([^}\n]*)\}\}`)
	inlineDiagramRe = regexp.MustCompile(`(?is)\{\{DIAGRAM:([a-zA-Z][a-zA-Z0-9_-]*)\r?\n(.*?)\}\}`)
	fencedDiagramRe = regexp.MustCompile(
		"(?is)```(" + strings.Join(engineNames(), "|") + ")[ \t]*\r?\n(.*?)```")
)

// Extractor scans Markdown text for image placeholders and diagram blocks.
// Extraction never fails: malformed markers simply do not match and remain
// literal text.
type Extractor struct{}

// NewExtractor creates an extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns every non-overlapping directive in the text, sorted by
// position. When grammars overlap on the same span, diagram forms win over
// placeholder forms.
func (e *Extractor) Extract(text string) []Directive {
	var directives []Directive

	// Fenced and inline diagram blocks first: their spans may contain text
	// that also matches the placeholder grammars.
	for _, m := range fencedDiagramRe.FindAllStringSubmatchIndex(text, -1) {
		directives = appendDirective(directives, Directive{
			Kind:     DirectiveDiagram,
			RawSpan:  text[m[0]:m[1]],
			Position: m[0],
			Engine:   strings.ToLower(text[m[2]:m[3]]),
			Source:   strings.TrimRight(text[m[4]:m[5]], "\r\n"),
		})
	}

	for _, m := range inlineDiagramRe.FindAllStringSubmatchIndex(text, -1) {
		directives = appendDirective(directives, Directive{
			Kind:     DirectiveDiagram,
			RawSpan:  text[m[0]:m[1]],
			Position: m[0],
			Engine:   strings.ToLower(text[m[2]:m[3]]),
			Source:   strings.TrimSpace(text[m[4]:m[5]]),
		})
	}

	for _, m := range imageSearchRe.FindAllStringSubmatchIndex(text, -1) {
		directives = appendDirective(directives, Directive{
			Kind:        DirectiveImageSearch,
			RawSpan:     text[m[0]:m[1]],
			Position:    m[0],
			Description: strings.TrimSpace(text[m[2]:m[3]]),
		})
	}

	for _, m := range imageGenerateRe.FindAllStringSubmatchIndex(text, -1) {
		directives = appendDirective(directives, Directive{
			Kind:        DirectiveImageGenerate,
			RawSpan:     text[m[0]:m[1]],
			Position:    m[0],
			Description: strings.TrimSpace(text[m[2]:m[3]]),
		})
	}

	sort.Slice(directives, func(i, j int) bool {
		return directives[i].Position < directives[j].Position
	})

	return directives
}

// appendDirective adds d unless it overlaps a previously accepted span
func appendDirective(directives []Directive, d Directive) []Directive {
	end := d.Position + len(d.RawSpan)
	for _, existing := range directives {
		existingEnd := existing.Position + len(existing.RawSpan)
		if d.Position < existingEnd && existing.Position < end {
			return directives
		}
	}
	return append(directives, d)
}
