package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/flexiodata/functions-wikipedia/internal/params"
)

// maxStdinSize caps how much piped input is read.
const maxStdinSize = 1 << 20

var errNoInput = fmt.Errorf("%w: no input: pass a search term, --input, or pipe a JSON array", params.ErrInvalidInput)

// inputSource describes where a handler command can read its input from.
type inputSource struct {
	Args           []string
	Input          string
	Stdin          io.Reader
	StdinIsTTY     bool
	WithProperties bool

	// Prompt is called when no other input is available. Nil disables
	// prompting.
	Prompt func() (search, properties string, err error)
}

// buildInput returns the JSON input array for a handler. Precedence:
// --input, positional args, piped stdin, then the interactive prompt.
func buildInput(src inputSource) ([]byte, error) {
	if strings.TrimSpace(src.Input) != "" {
		return []byte(src.Input), nil
	}

	if len(src.Args) > 0 {
		return encodeArgs(src.Args[0], src.Args[1:], src.WithProperties)
	}

	if src.Stdin != nil && !src.StdinIsTTY {
		data, err := io.ReadAll(io.LimitReader(src.Stdin, maxStdinSize))
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return data, nil
		}
	}

	if src.Prompt != nil {
		search, properties, err := src.Prompt()
		if err != nil {
			return nil, err
		}
		var rest []string
		if properties != "" {
			rest = []string{properties}
		}
		return encodeArgs(search, rest, src.WithProperties)
	}

	return nil, errNoInput
}

// encodeArgs builds the input array from a search term and the remaining
// words, which are joined into one comma-separated property list.
func encodeArgs(search string, rest []string, withProperties bool) ([]byte, error) {
	values := []any{search}
	if withProperties && len(rest) > 0 {
		values = append(values, strings.Join(rest, ","))
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input: %w", err)
	}
	return data, nil
}

// isInputError reports whether err came from rejected input rather than a
// failed lookup.
func isInputError(err error) bool {
	return errors.Is(err, params.ErrInvalidInput)
}
