package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrNotInteractive is returned by prompts when stdin or stdout is not a
// terminal.
var ErrNotInteractive = errors.New("not running in a terminal")

// PromptSearch asks for a search term and, when withProperties is set, a
// comma-separated property list. An empty property answer means the
// handler's default.
func PromptSearch(title string, withProperties bool) (search, properties string, err error) {
	if !IsTerminal() || !IsInputTerminal() {
		return "", "", ErrNotInteractive
	}

	fields := []huh.Field{
		huh.NewInput().
			Title(title).
			Placeholder("e.g. Theodore Roosevelt").
			Value(&search).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("search term is required")
				}
				return nil
			}),
	}
	if withProperties {
		fields = append(fields, huh.NewInput().
			Title("Properties").
			Description("Comma-separated names, or * for all").
			Value(&properties))
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", "", fmt.Errorf("prompt cancelled")
		}
		return "", "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(search), strings.TrimSpace(properties), nil
}
