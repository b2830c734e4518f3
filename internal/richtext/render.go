// Package richtext renders annotated Notion rich text spans into inline
// Markdown.
package richtext

import (
	"strings"
	"unicode"
)

// Render converts spans into inline Markdown. Spans are concatenated without
// separators.
func Render(spans []Span) string {
	var sb strings.Builder
	for _, span := range spans {
		sb.WriteString(RenderSpan(span))
	}
	return sb.String()
}

// RenderSpan converts a single span into inline Markdown.
//
// Markup wraps only the whitespace-trimmed core of the content so delimiters
// never capture surrounding spaces. A code span is rendered literally and no
// other style is applied to it. A link, when present, wraps the final text.
func RenderSpan(span Span) string {
	content := span.Content()
	if span.Type == KindEquation {
		content = equationContent(span)
	}

	var text string
	if span.Annotations.Code {
		text = code(content)
	} else {
		leading, core, trailing := splitSpace(content)
		if span.Type == KindEquation {
			core = "$" + core + "$"
		}
		text = leading + decorate(core, span.Annotations) + trailing
	}

	if url, ok := span.URL(); ok {
		text = link(text, url)
	}
	return text
}

func decorate(text string, a Annotations) string {
	if a.Bold {
		text = bold(text)
	}
	if a.Italic {
		text = italic(text)
	}
	if a.Strikethrough {
		text = strikethrough(text)
	}
	if a.Underline {
		text = underline(text)
	}
	return text
}

// splitSpace separates leading and trailing whitespace from the core text.
// Pure whitespace content is returned whole as the core.
func splitSpace(s string) (leading, core, trailing string) {
	trimmed := strings.TrimFunc(s, unicode.IsSpace)
	if trimmed == "" {
		return "", s, ""
	}
	start := len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
	return s[:start], trimmed, s[start+len(trimmed):]
}

func equationContent(span Span) string {
	if span.Equation != nil && span.Equation.Expression != "" {
		return span.Equation.Expression
	}
	return span.PlainText
}

func bold(text string) string          { return "**" + text + "**" }
func italic(text string) string        { return "_" + text + "_" }
func strikethrough(text string) string { return "~~" + text + "~~" }
func code(text string) string          { return "`" + text + "`" }
func underline(text string) string     { return "<u>" + text + "</u>" }

func link(text, url string) string {
	return "[" + text + "](" + url + ")"
}
