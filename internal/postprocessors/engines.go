package postprocessors

import "strings"

// diagramEngines maps user-facing engine names to the canonical identifiers
// the rendering service understands. Built once; never mutated at runtime.
var diagramEngines = map[string]string{
	"mermaid":   "mermaid",
	"plantuml":  "plantuml",
	"graphviz":  "graphviz",
	"dot":       "graphviz",
	"d2":        "d2",
	"blockdiag": "blockdiag",
	"seqdiag":   "seqdiag",
	"actdiag":   "actdiag",
	"nwdiag":    "nwdiag",
	"ditaa":     "ditaa",
	"erd":       "erd",
	"nomnoml":   "nomnoml",
	"pikchr":    "pikchr",
	"svgbob":    "svgbob",
	"vega":      "vega",
	"vegalite":  "vegalite",
	"wavedrom":  "wavedrom",
}

// engineMermaid is the only engine with source sanitization rules
const engineMermaid = "mermaid"

// CanonicalEngine maps an engine name (case-insensitive) to the identifier
// the rendering service expects. Unknown names pass through unchanged as a
// best-effort identifier.
func CanonicalEngine(name string) string {
	if canonical, ok := diagramEngines[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// engineNames returns the allow-list of fence language tags, for building the
// fenced-block pattern.
func engineNames() []string {
	names := make([]string, 0, len(diagramEngines))
	for name := range diagramEngines {
		names = append(names, name)
	}
	return names
}
