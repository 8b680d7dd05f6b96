package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cite/internal/checker"
	"cite/internal/citation"
	"cite/internal/diagfmt"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [directory]",
	Short: "Validate citation directives in a Go source tree",
	Long: `Scan every *.go file under the directory for //cite: directives,
fetch each cited source, and report any content that drifted from what
the citation recorded. The run exits non-zero when any directive
resolves to an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	checkCmd.Flags().Bool("no-cache", false, "disable the persistent scan cache")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// runCheck executes the "check" command: it resolves the ambient
// behavior (defaults, cite.toml, CITE_* environment), runs the checker
// over the tree, prints diagnostics in the chosen format, and exits
// non-zero when the run produced errors.
func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	// configuration errors are fatal: an unrecognized value never
	// falls back silently
	ambient, err := citation.LoadAmbient(dir)
	if err != nil {
		return err
	}

	var cache *checker.DiskCache
	if !noCache {
		// a broken cache only costs rescans, never a failed run
		if c, cacheErr := checker.OpenDiskCache("cite"); cacheErr == nil {
			cache = c
		}
	}

	opts := checker.Options{
		Dir:            dir,
		Ambient:        ambient,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Cache:          cache,
	}

	var result *checker.Result
	if shouldUseTUI(mode) && format == "pretty" && !quiet {
		files, listErr := checker.ListGoFiles(dir)
		if listErr != nil {
			return fmt.Errorf("check failed: %w", listErr)
		}
		result, err = runCheckWithUI(cmd.Context(), "cite check", files, opts)
	} else {
		result, err = checker.Check(cmd.Context(), opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:      useColor,
			PathMode:   pathMode,
			ShowSource: true,
			Max:        maxDiagnostics,
		})
		if !quiet {
			printCheckSummary(os.Stdout, result)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              maxDiagnostics,
		}
		if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if result.Failed() {
		// Suppress cobra usage output; diagnostics already printed
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func printCheckSummary(out io.Writer, result *checker.Result) {
	fmt.Fprintf(out, "checked %d files, %d directives: %d valid, %d warnings, %d errors",
		result.Files, result.Directives, result.Valid, result.Warnings(), result.Errors())
	if result.SilentMismatches > 0 {
		fmt.Fprintf(out, ", %d silent mismatches", result.SilentMismatches)
	}
	fmt.Fprintln(out)
}
