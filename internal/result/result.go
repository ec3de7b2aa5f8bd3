// Package result encodes handler output: a table of exactly one row.
package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"
)

// ContentType is the media type of JSON-encoded results.
const ContentType = "application/json"

// Table is an array of rows, each an array of column values.
type Table [][]any

// Single wraps one row of values into a table.
func Single(values ...any) Table {
	row := make([]any, len(values))
	copy(row, values)
	return Table{row}
}

// FromStrings wraps a row of strings into a table.
func FromStrings(values []string) Table {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	return Table{row}
}

// Empty is the result for a search that found nothing: one row holding one
// empty string.
func Empty() Table {
	return Single("")
}

// Stringify applies the output conversion rules to one value: times become
// ISO-8601 strings, arbitrary-precision numbers their exact decimal text.
// Everything else is returned unchanged.
func Stringify(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.Format(time.RFC3339Nano)
	case json.Number:
		return x.String()
	case *big.Float:
		if x == nil {
			return nil
		}
		return x.Text('f', -1)
	case *big.Int:
		if x == nil {
			return nil
		}
		return x.String()
	case *big.Rat:
		if x == nil {
			return nil
		}
		return ratString(x)
	}
	return v
}

// ratString renders r exactly when its decimal expansion terminates, and
// falls back to the a/b form otherwise.
func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	// A reduced fraction terminates iff its denominator has no prime
	// factors besides 2 and 5.
	d := new(big.Int).Set(r.Denom())
	digits := 0
	two, five, zero := big.NewInt(2), big.NewInt(5), big.NewInt(0)
	mod := new(big.Int)
	for twos := 0; ; twos++ {
		if mod.Mod(d, two).Cmp(zero) != 0 {
			if twos > digits {
				digits = twos
			}
			break
		}
		d.Quo(d, two)
	}
	for fives := 0; ; fives++ {
		if mod.Mod(d, five).Cmp(zero) != 0 {
			if fives > digits {
				digits = fives
			}
			break
		}
		d.Quo(d, five)
	}
	if d.Cmp(big.NewInt(1)) != 0 {
		return r.RatString()
	}
	return r.FloatString(digits)
}

// Normalize returns a copy of t with Stringify applied to every cell.
func (t Table) Normalize() Table {
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = make([]any, len(row))
		for j, v := range row {
			out[i][j] = Stringify(v)
		}
	}
	return out
}

// Strings returns the first row rendered as strings. Used by the terminal
// table renderer.
func (t Table) Strings() []string {
	if len(t) == 0 {
		return nil
	}
	row := t.Normalize()[0]
	out := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}

// Format selects an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatTable:
		return f, nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected json, yaml or table)", s)
}

// MarshalJSON encodes the table as compact JSON without HTML escaping.
func (t Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([][]any(t.Normalize())); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeJSON writes t as JSON followed by a newline, pretty-printed when
// indent is set.
func EncodeJSON(w io.Writer, t Table, indent bool) error {
	data, err := t.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if indent {
		data = pretty.Pretty(data)
	} else {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

// EncodeYAML writes t as a YAML sequence of sequences.
func EncodeYAML(w io.Writer, t Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode([][]any(t.Normalize())); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return enc.Close()
}
