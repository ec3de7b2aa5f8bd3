package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flexiodata/functions-wikipedia/internal/catalog"
	"github.com/flexiodata/functions-wikipedia/internal/ui"
)

var propertiesCmd = &cobra.Command{
	Use:   "properties [org|people]",
	Short: "List the properties the org and people commands can return",
	Long: `Lists property names in default column order, with the Wikidata
property each one reads and a short description. With no argument both
catalogs are listed.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"org", "people"},
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogs := catalog.All()
		if len(args) == 1 {
			c, ok := catalog.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown catalog %q (expected org or people)", args[0])
			}
			catalogs = []*catalog.Catalog{c}
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return writePropertiesJSON(w, catalogs)
		}

		var md strings.Builder
		for i, c := range catalogs {
			if i > 0 {
				md.WriteString("\n")
			}
			md.WriteString(c.Markdown())
		}
		if !ui.IsTerminal() {
			_, err := io.WriteString(w, md.String())
			return err
		}
		out, err := ui.RenderMarkdown(md.String(), ui.GetWidth())
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	},
}

type propertyInfo struct {
	Name        string `json:"name"`
	Property    string `json:"property,omitempty"`
	Description string `json:"description,omitempty"`
}

// writePropertiesJSON writes {"<kind>": [propertyInfo...]} in default
// column order.
func writePropertiesJSON(w io.Writer, catalogs []*catalog.Catalog) error {
	out := make(map[string][]propertyInfo, len(catalogs))
	for _, c := range catalogs {
		infos := make([]propertyInfo, 0, len(c.Defaults()))
		for _, name := range c.Defaults() {
			id, _ := c.PropertyID(name)
			infos = append(infos, propertyInfo{Name: name, Property: id, Description: c.Describe(name)})
		}
		out[c.Kind()] = infos
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	rootCmd.AddCommand(propertiesCmd)
}
