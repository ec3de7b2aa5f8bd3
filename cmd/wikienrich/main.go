package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flexiodata/functions-wikipedia/internal/config"
	"github.com/flexiodata/functions-wikipedia/internal/debug"
	"github.com/flexiodata/functions-wikipedia/internal/params"
	"github.com/flexiodata/functions-wikipedia/internal/result"
	"github.com/flexiodata/functions-wikipedia/internal/ui"
)

// Exit codes.
const (
	exitOK           = 0
	exitFatal        = 1
	exitInvalidInput = 2
)

var (
	jsonOutput   bool
	outputFormat string
	prettyOutput bool
	verboseFlag  bool

	rootCtx    context.Context
	rootCancel context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   "wikienrich",
	Short: "Enrich search terms with Wikipedia and Wikidata facts",
	Long: `wikienrich looks up a search term on Wikipedia or Wikidata and prints a
single-row table of the requested facts.

Examples:
  wikienrich description "Theodore Roosevelt"
  wikienrich org Google label,country
  wikienrich people "Marie Curie" '*' --format table
  echo '["Google","label,website"]' | wikienrich org`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		applyFlagOverrides(cmd)

		debug.SetVerbose(config.GetBool(config.KeyVerbose))
		if logCfg := config.GetLog(); logCfg.File != "" {
			debug.SetLogFile(logCfg.File, debug.RotationOptions{
				MaxSizeMB:  logCfg.MaxSizeMB,
				MaxBackups: logCfg.MaxBackups,
				MaxAgeDays: logCfg.MaxAgeDays,
			})
		}
		ui.ApplyColorProfile()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		debug.Close()
	},
}

// applyFlagOverrides copies explicitly set flags over config values so
// the rest of the program reads one source.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		config.Set(config.KeyVerbose, verboseFlag)
	}
	if flags.Changed("format") {
		config.Set(config.KeyOutputFormat, outputFormat)
	}
	if flags.Changed("pretty") {
		config.Set(config.KeyOutputPretty, prettyOutput)
	}
	if jsonOutput {
		config.Set(config.KeyOutputFormat, string(result.FormatJSON))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON (same as --format json)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format: json, yaml or table")
	rootCmd.PersistentFlags().BoolVar(&prettyOutput, "pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log requests and decisions to stderr")
}

// exitCode maps a command error to the process exit status. Anything but
// rejected input, including enrich.ErrFatal, is exitFatal.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, params.ErrInvalidInput):
		return exitInvalidInput
	}
	return exitFatal
}

func main() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(rootCtx, os.Args[1:], os.Stderr)
	rootCancel()
	os.Exit(code)
}

// run executes the command line and returns the exit code. The log file is
// released on every path; PersistentPostRun does not run after a failed
// command.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	defer func() { _ = debug.Close() }()

	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s %v\n", ui.ErrorStyle.Render("Error:"), err)
		return exitCode(err)
	}
	return exitOK
}
