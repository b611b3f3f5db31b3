package ui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders content for the terminal. Without color the notty
// style is used. A width of 0 keeps glamour's default wrapping. Content is
// returned as is when rendering fails.
func RenderMarkdown(content string, color bool, width int) string {
	if content == "" {
		return ""
	}

	var options []glamour.TermRendererOption
	if color {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle("notty"))
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content + "\n"
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content + "\n"
	}

	return rendered
}

// MarkdownRenderer renders .md help topics with RenderMarkdown and returns
// other content unchanged.
type MarkdownRenderer struct {
	Color bool
	Width int
}

// Render formats content according to its file extension
func (r MarkdownRenderer) Render(content, ext string) string {
	if ext != ".md" {
		return content
	}
	return RenderMarkdown(content, r.Color, r.Width)
}
