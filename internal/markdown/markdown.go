// Package markdown provides helpers for inspecting generated Markdown notes:
// extracting the heading outline and stripping formatting down to plain text.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Heading is one entry in a document outline
type Heading struct {
	Level int
	Text  string
}

// Outline returns the heading structure of a Markdown document in order.
func Outline(source string) []Heading {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			headings = append(headings, Heading{
				Level: h.Level,
				Text:  nodeText(h, src),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return headings
}

// PlainText strips Markdown formatting and returns readable text, one block
// per line. Code fences are dropped; inline images degrade to their alt text.
func PlainText(source string) string {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			if t := strings.TrimSpace(nodeText(n, src)); t != "" {
				sb.WriteString(t)
				sb.WriteString("\n")
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimRight(sb.String(), "\n")
}

// OutlineText renders an outline as an indented list, one heading per line.
func OutlineText(source string) string {
	var sb strings.Builder
	for _, h := range Outline(source) {
		sb.WriteString(strings.Repeat("  ", h.Level-1))
		sb.WriteString("- ")
		sb.WriteString(h.Text)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Truncate limits text to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

// nodeText collects the raw text content beneath a node. Inline images
// contribute their alt text, links their label.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				sb.WriteString(" ")
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
