package postprocessors

import (
	"testing"
)

func TestExtractor_ImageSearch(t *testing.T) {
	e := NewExtractor()

	directives := e.Extract("Before {{IMAGE: cell diagram}} after")
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	d := directives[0]
	if d.Kind != DirectiveImageSearch {
		t.Errorf("expected image_search, got %s", d.Kind)
	}
	if d.Description != "cell diagram" {
		t.Errorf("expected trimmed description, got %q", d.Description)
	}
	if d.RawSpan != "{{IMAGE: cell diagram}}" {
		t.Errorf("unexpected raw span %q", d.RawSpan)
	}
	if d.Position != len("Before ") {
		t.Errorf("expected position %d, got %d", len("Before "), d.Position)
	}
}

func TestExtractor_ImageSearch_CaseSensitive(t *testing.T) {
	e := NewExtractor()

	if got := e.Extract("{{image: lowercase tag}}"); len(got) != 0 {
		t.Errorf("lowercase IMAGE tag should not match, got %d directives", len(got))
	}
}

func TestExtractor_ImageGenerate_Tags(t *testing.T) {
	e := NewExtractor()

	for _, text := range []string{
		"{{GENERATE: mitochondria}}",
		"{{generate: mitochondria}}",
		"{{DIAGRAM: mitochondria}}",
		"{{Illustration: mitochondria}}",
	} {
		directives := e.Extract(text)
		if len(directives) != 1 {
			t.Fatalf("%q: expected 1 directive, got %d", text, len(directives))
		}
		if directives[0].Kind != DirectiveImageGenerate {
			t.Errorf("%q: expected image_generate, got %s", text, directives[0].Kind)
		}
		if directives[0].Description != "mitochondria" {
			t.Errorf("%q: unexpected description %q", text, directives[0].Description)
		}
	}
}

func TestExtractor_FencedDiagram(t *testing.T) {
	e := NewExtractor()

	text := "Intro\n```mermaid\ngraph TD;\nA-->B\n```\nOutro"
	directives := e.Extract(text)
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	d := directives[0]
	if d.Kind != DirectiveDiagram {
		t.Errorf("expected diagram, got %s", d.Kind)
	}
	if d.Engine != "mermaid" {
		t.Errorf("expected mermaid engine, got %q", d.Engine)
	}
	if d.Source != "graph TD;\nA-->B" {
		t.Errorf("unexpected source %q", d.Source)
	}
}

func TestExtractor_FencedDiagram_UnknownLanguageIgnored(t *testing.T) {
	e := NewExtractor()

	if got := e.Extract("```python\nprint('hi')\n```"); len(got) != 0 {
		t.Errorf("non-diagram fence should not match, got %d directives", len(got))
	}
}

func TestExtractor_InlineDiagram(t *testing.T) {
	e := NewExtractor()

	text := "{{DIAGRAM:dot\ndigraph { a -> b }\n}}"
	directives := e.Extract(text)
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	d := directives[0]
	if d.Kind != DirectiveDiagram {
		t.Fatalf("expected diagram, got %s (inline form must not be mistaken for generation)", d.Kind)
	}
	if d.Engine != "dot" {
		t.Errorf("expected dot engine, got %q", d.Engine)
	}
	if d.Source != "digraph { a -> b }" {
		t.Errorf("unexpected source %q", d.Source)
	}
}

func TestExtractor_MixedDirectives_Ordering(t *testing.T) {
	e := NewExtractor()

	text := "A {{IMAGE: one}} B {{GENERATE: two}} C\n```dot\ndigraph{}\n```\n"
	directives := e.Extract(text)
	if len(directives) != 3 {
		t.Fatalf("expected 3 directives, got %d", len(directives))
	}
	kinds := []DirectiveKind{DirectiveImageSearch, DirectiveImageGenerate, DirectiveDiagram}
	for i, want := range kinds {
		if directives[i].Kind != want {
			t.Errorf("directive %d: expected %s, got %s", i, want, directives[i].Kind)
		}
		if i > 0 && directives[i].Position <= directives[i-1].Position {
			t.Errorf("directives not sorted by position")
		}
	}
}

func TestExtractor_DirectiveAtBoundaries(t *testing.T) {
	e := NewExtractor()

	text := "{{IMAGE: start}} middle {{IMAGE: end}}"
	directives := e.Extract(text)
	if len(directives) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(directives))
	}
	if directives[0].Position != 0 {
		t.Errorf("expected first directive at position 0, got %d", directives[0].Position)
	}
	last := directives[1]
	if last.Position+len(last.RawSpan) != len(text) {
		t.Errorf("expected last directive to end at text end")
	}
}

func TestExtractor_EmptyDescriptionKept(t *testing.T) {
	e := NewExtractor()

	directives := e.Extract("{{IMAGE: }}")
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	if directives[0].Description != "" {
		t.Errorf("expected empty description, got %q", directives[0].Description)
	}
}

func TestExtractor_NoDirectives(t *testing.T) {
	e := NewExtractor()

	if got := e.Extract("Plain text with {single} braces and ``` fences\n```\ncode\n```"); len(got) != 0 {
		t.Errorf("expected no directives, got %d", len(got))
	}
}

func TestExtractor_IdenticalSpansDistinctPositions(t *testing.T) {
	e := NewExtractor()

	text := "{{IMAGE: same}} and {{IMAGE: same}} and {{IMAGE: same}}"
	directives := e.Extract(text)
	if len(directives) != 3 {
		t.Fatalf("expected 3 directives, got %d", len(directives))
	}
	for i, d := range directives {
		if text[d.Position:d.Position+len(d.RawSpan)] != d.RawSpan {
			t.Errorf("directive %d: position does not address its span", i)
		}
		if i > 0 && d.Position <= directives[i-1].Position {
			t.Errorf("directive %d: duplicate spans must have increasing positions", i)
		}
	}
}

func TestCanonicalEngine(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"dot", "graphviz"},
		{"DOT", "graphviz"},
		{"Mermaid", "mermaid"},
		{"plantuml", "plantuml"},
		{"somethingelse", "somethingelse"}, // unknown passes through
	}
	for _, tt := range tests {
		if got := CanonicalEngine(tt.name); got != tt.want {
			t.Errorf("CanonicalEngine(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
