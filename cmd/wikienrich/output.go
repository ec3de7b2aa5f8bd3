package main

import (
	"fmt"
	"io"

	"github.com/flexiodata/functions-wikipedia/internal/result"
	"github.com/flexiodata/functions-wikipedia/internal/ui"
)

type outputOptions struct {
	Format result.Format
	Pretty bool

	// Table rendering only.
	Title   string
	Columns []string
	Width   int
}

// writeResult encodes table to w in the selected format.
func writeResult(w io.Writer, table result.Table, opts outputOptions) error {
	switch opts.Format {
	case result.FormatYAML:
		return result.EncodeYAML(w, table)
	case result.FormatTable:
		width := opts.Width
		if width <= 0 {
			width = 80
		}
		_, err := fmt.Fprintln(w, ui.RenderRow(opts.Title, opts.Columns, table.Strings(), width))
		return err
	}
	return result.EncodeJSON(w, table, opts.Pretty)
}
