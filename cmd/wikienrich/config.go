package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/flexiodata/functions-wikipedia/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration settings",
	Long: `Shows every configuration key with its effective value and where the
value came from (default, config_file, env_var or flag).

Configuration is read from the first of:
  .wikienrich/config.yaml in the current directory or any parent
  ~/.config/wikienrich/config.yaml
  ~/.wikienrich/config.yaml

Environment variables override the file: http.user-agent is read from
WIKIENRICH_HTTP_USER_AGENT. A .env file in the current directory is loaded
first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Settings()
		for i, s := range settings {
			if flagKeys[s.Key] != "" && cmd.Flags().Changed(flagKeys[s.Key]) {
				settings[i].Source = config.SourceFlag
			}
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"file":     config.FileUsed(),
				"settings": settings,
			})
		}

		if file := config.FileUsed(); file != "" {
			fmt.Fprintf(w, "# loaded from %s\n", file)
		} else {
			fmt.Fprintln(w, "# no config file found")
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(settings); err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		return enc.Close()
	},
}

// flagKeys maps config keys to the persistent flag that can override them.
var flagKeys = map[string]string{
	config.KeyOutputFormat: "format",
	config.KeyOutputPretty: "pretty",
	config.KeyVerbose:      "verbose",
}

func init() {
	rootCmd.AddCommand(configCmd)
}
