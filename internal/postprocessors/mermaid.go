package postprocessors

import (
	"regexp"
	"strings"
)

// Mermaid source repair. The rendering service rejects a handful of patterns
// models habitually emit: smart quotes inside node labels, two statements
// jammed onto one line, and connector statements without terminating
// semicolons. These are heuristic pattern fixes, not a parser; they are kept
// bug-for-bug stable because already-stored notes were generated with them.

var (
	// closing bracket followed by 2+ spaces and what looks like a new node
	// definition on the same line
	mermaidRunOnRe = regexp.MustCompile(`([\]\})])[ ]{2,}([A-Za-z_][A-Za-z0-9_]*[\[\{\(])`)

	// connector tokens that make a line a statement needing a semicolon
	mermaidConnectors = []string{"-->", "---", "-.->", "-.-", "==>", "--|"}

	// declaration keywords that never take a semicolon
	mermaidKeywords = []string{
		"graph", "flowchart", "sequenceDiagram", "classDiagram",
		"stateDiagram", "erDiagram", "gantt", "pie", "subgraph",
	}
)

// SanitizeMermaid repairs mermaid source before submission to the renderer.
// Running it on already-sanitized source is a no-op.
func SanitizeMermaid(source string) string {
	// Smart punctuation breaks node-label parsing: curly single quotes,
	// straight apostrophes and backticks are removed; curly double quotes
	// become straight double quotes.
	replacer := strings.NewReplacer(
		"‘", "",
		"’", "",
		"“", `"`,
		"”", `"`,
		"'", "",
		"`", "",
	)
	source = replacer.Replace(source)

	// Split run-on statements: `A[x] --- B[y]    C[z]` becomes two lines
	source = mermaidRunOnRe.ReplaceAllString(source, "$1\n    $2")

	// Terminate connector statements with semicolons
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if !containsConnector(line) {
			continue
		}
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" || isDeclarationLine(trimmed) {
			continue
		}
		switch trimmed[len(trimmed)-1] {
		case ';', '{', ':':
			continue
		}
		lines[i] = trimmed + ";"
	}

	return strings.Join(lines, "\n")
}

func containsConnector(line string) bool {
	for _, conn := range mermaidConnectors {
		if strings.Contains(line, conn) {
			return true
		}
	}
	// pipe-labeled edge: A --|label|--> B or A -->|label| B
	return strings.Contains(line, "--") && strings.Contains(line, "|")
}

func isDeclarationLine(line string) bool {
	stripped := strings.TrimSpace(line)
	if stripped == "end" {
		return true
	}
	for _, kw := range mermaidKeywords {
		if stripped == kw || strings.HasPrefix(stripped, kw+" ") {
			return true
		}
	}
	return false
}
