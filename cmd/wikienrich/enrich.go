package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/flexiodata/functions-wikipedia/internal/catalog"
	"github.com/flexiodata/functions-wikipedia/internal/config"
	"github.com/flexiodata/functions-wikipedia/internal/debug"
	"github.com/flexiodata/functions-wikipedia/internal/enrich"
	"github.com/flexiodata/functions-wikipedia/internal/params"
	"github.com/flexiodata/functions-wikipedia/internal/result"
	"github.com/flexiodata/functions-wikipedia/internal/ui"
)

var descriptionCmd = &cobra.Command{
	Use:   "description <search>",
	Short: "Print the first sentence of the best-matching Wikipedia article",
	Long: `Searches English Wikipedia and prints the first sentence of the top
result's introduction as [["<sentence>"]]. A search with no results prints
[[""]].

Examples:
  wikienrich description "Theodore Roosevelt"
  wikienrich description --input '["Ada Lovelace"]'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHandlerCmd(cmd, args, enrich.NameDescription)
	},
}

var orgCmd = &cobra.Command{
	Use:   "org <search> [properties...]",
	Short: "Look up facts about an organization on Wikidata",
	Long: `Searches Wikidata for an organization and prints the requested
properties as one row. Properties are given as further arguments or one
comma-separated list; '*' selects every property in catalog order.
The default is "description".

Run 'wikienrich properties org' for the property list.

Examples:
  wikienrich org Google label,country
  wikienrich org Google '*' --format table`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHandlerCmd(cmd, args, enrich.NameOrganization)
	},
}

var peopleCmd = &cobra.Command{
	Use:   "people <search> [properties...]",
	Short: "Look up facts about a person on Wikidata",
	Long: `Searches Wikidata for a person and prints the requested properties as
one row. Properties are given as further arguments or one comma-separated
list; '*' selects every property in catalog order. The default is
"description".

Run 'wikienrich properties people' for the property list.

Examples:
  wikienrich people "Theodore Roosevelt" birth_date,death_date
  wikienrich people "Marie Curie" '*' --pretty`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHandlerCmd(cmd, args, enrich.NamePeople)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{descriptionCmd, orgCmd, peopleCmd} {
		cmd.Flags().String("input", "", "JSON input array, e.g. '[\"Google\",\"label\"]'")
		cmd.Flags().BoolP("interactive", "i", false, "Prompt for the search term when no input is given")
		rootCmd.AddCommand(cmd)
	}
}

func runHandlerCmd(cmd *cobra.Command, args []string, name string) error {
	h := handlerByName(name)
	if h == nil {
		return fmt.Errorf("unknown handler %q", name)
	}
	_, withProperties := h.(*enrich.Entities)

	inputFlag, _ := cmd.Flags().GetString("input")
	interactive, _ := cmd.Flags().GetBool("interactive")

	src := inputSource{
		Args:           args,
		Input:          inputFlag,
		Stdin:          cmd.InOrStdin(),
		StdinIsTTY:     ui.IsInputTerminal(),
		WithProperties: withProperties,
	}
	if interactive {
		src.Prompt = func() (string, string, error) {
			return ui.PromptSearch("Search "+name, withProperties)
		}
	}

	input, err := buildInput(src)
	if err != nil {
		return err
	}
	debug.Logf("Debug: %s input %s\n", name, input)

	format, err := result.ParseFormat(config.GetString(config.KeyOutputFormat))
	if err != nil {
		return err
	}

	return runHandler(cmd.Context(), h, input, cmd.OutOrStdout(), outputOptions{
		Format: format,
		Pretty: config.GetBool(config.KeyOutputPretty),
		Width:  ui.GetWidth(),
	})
}

// runHandler invokes h and writes its result to w.
func runHandler(ctx context.Context, h enrich.Handler, input []byte, w io.Writer, opts outputOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	table, err := h.Handle(ctx, input)
	if err != nil {
		return err
	}
	if opts.Format == result.FormatTable {
		opts.Title = h.Name()
		opts.Columns = columnNames(h, input)
	}
	return writeResult(w, table, opts)
}

// columnNames returns the name of each output column, for the table
// renderer. Input has already been accepted by the handler.
func columnNames(h enrich.Handler, input []byte) []string {
	e, ok := h.(*enrich.Entities)
	if !ok {
		return []string{catalog.FieldDescription}
	}
	p, err := params.BindProperties(input)
	if err != nil {
		return nil
	}
	if enrich.IsWildcard(p.Properties) {
		return e.Catalog().Defaults()
	}
	return p.Properties
}
