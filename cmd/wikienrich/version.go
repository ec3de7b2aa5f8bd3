package main

import (
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	// Version is the current version of wikienrich (overridden by ldflags at build time)
	Version = "1.0.0"
	// Build can be set via ldflags at compile time
	Build = "dev"
	// Commit is the git revision the binary was built from (optional ldflag)
	Commit = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commit := resolveCommitHash()
		w := cmd.OutOrStdout()

		if jsonOutput {
			out := map[string]string{
				"version": Version,
				"build":   Build,
			}
			if commit != "" {
				out["commit"] = commit
			}
			return json.NewEncoder(w).Encode(out)
		}

		if commit != "" {
			fmt.Fprintf(w, "wikienrich version %s (%s: %s)\n", Version, Build, shortCommit(commit))
		} else {
			fmt.Fprintf(w, "wikienrich version %s (%s)\n", Version, Build)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func resolveCommitHash() string {
	if Commit != "" {
		return Commit
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}

	return ""
}

func shortCommit(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
