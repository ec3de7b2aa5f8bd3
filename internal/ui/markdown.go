package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// RenderMarkdown renders md for the terminal. Without color it uses the
// plain no-TTY style, so the output stays readable when piped.
func RenderMarkdown(md string, width int) (string, error) {
	styleOpt := glamour.WithStandardStyle(styles.NoTTYStyle)
	if ShouldUseColor() {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
