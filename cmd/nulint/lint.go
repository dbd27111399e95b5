package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nulint/internal/diagfmt"
	"nulint/internal/driver"
	"nulint/internal/lint"
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint Nushell scripts in files or directories",
	Long: `Run every enabled rule over the given files, or over all *.nu files
under the given directories. With no arguments the current directory is
linted. The exit status is 1 when any error-severity violation is found.`,
	Args: cobra.ArbitraryArgs,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	lintCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	lintCmd.Flags().String("ui", "auto", "progress display while linting (auto|on|off)")
	lintCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	lintCmd.Flags().Bool("with-help", false, "include each rule's help text in output")
	lintCmd.Flags().Bool("suggest", false, "note available fixes in output")
	lintCmd.Flags().Bool("preview", false, "render before/after previews of available fixes")
	lintCmd.Flags().Int("max-violations", 0, "cap violations in json output (0=all)")
	lintCmd.Flags().String("baseline", "", "baseline mode (write|check)")
	lintCmd.Flags().String("baseline-file", "", "baseline snapshot path (default: per-root cache location)")
	lintCmd.Flags().Bool("per-file-timings", false, "break --timings out per file")
}

func runLint(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	withHelp, err := cmd.Flags().GetBool("with-help")
	if err != nil {
		return fmt.Errorf("failed to get with-help flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	maxViolations, err := cmd.Flags().GetInt("max-violations")
	if err != nil {
		return fmt.Errorf("failed to get max-violations flag: %w", err)
	}
	baselineMode, err := cmd.Flags().GetString("baseline")
	if err != nil {
		return fmt.Errorf("failed to get baseline flag: %w", err)
	}
	switch baselineMode {
	case "", "write", "check":
	default:
		return fmt.Errorf("unknown baseline mode %q (expected write or check)", baselineMode)
	}
	baselineFile, err := cmd.Flags().GetString("baseline-file")
	if err != nil {
		return fmt.Errorf("failed to get baseline-file flag: %w", err)
	}
	perFileTimings, err := cmd.Flags().GetBool("per-file-timings")
	if err != nil {
		return fmt.Errorf("failed to get per-file-timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorize, err := useColor(cmd)
	if err != nil {
		return err
	}
	uiMode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.Options{Config: cfg, Jobs: jobs, Warn: os.Stderr}

	var res *driver.Result
	if shouldUseTUI(uiMode) && format == "pretty" && !quiet {
		files, derr := driver.Discover(paths...)
		if derr != nil {
			return derr
		}
		res, err = runLintWithUI(cmd.Context(), lintTitle(paths), files, opts)
	} else {
		res, err = driver.LintPaths(cmd.Context(), paths, opts)
	}
	if err != nil {
		return err
	}

	if baselineMode != "" {
		if baselineFile == "" {
			baselineFile, err = driver.DefaultBaselinePath(paths[0])
			if err != nil {
				return err
			}
		}
		if baselineMode == "write" {
			b := driver.NewBaseline()
			b.Record(res)
			if err := b.Write(baselineFile); err != nil {
				return fmt.Errorf("failed to write baseline: %w", err)
			}
			if !quiet {
				fmt.Fprintf(os.Stdout, "baseline: recorded %d violations at %s\n", b.Len(), baselineFile)
			}
			return nil
		}
		b, found, lerr := driver.LoadBaseline(baselineFile)
		if lerr != nil {
			return fmt.Errorf("failed to load baseline: %w", lerr)
		}
		if !found {
			fmt.Fprintf(os.Stderr, "nu-lint: no baseline at %s; reporting everything\n", baselineFile)
		}
		if dropped := b.Filter(res); dropped > 0 && !quiet {
			fmt.Fprintf(os.Stderr, "baseline: suppressed %d known violations\n", dropped)
		}
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	if !quiet {
		switch format {
		case "pretty":
			renderPretty(res, diagfmt.PrettyOpts{
				Color:       colorize,
				Context:     1,
				PathMode:    pathMode,
				ShowHelp:    withHelp,
				ShowFixes:   suggest || preview,
				ShowPreview: preview,
			})
		case "short":
			for i := range res.Files {
				fr := &res.Files[i]
				if fr.Err != nil {
					fmt.Fprintf(os.Stderr, "nu-lint: %s: %v\n", fr.Path, fr.Err)
					continue
				}
				diagfmt.Short(os.Stdout, fr.Violations, fr.Set, pathMode)
			}
		case "json":
			jsonOpts := diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         pathMode,
				Max:              maxViolations,
				IncludeLabels:    withHelp,
				IncludeFixes:     suggest || preview,
				IncludePreviews:  preview,
			}
			if err := renderJSON(res, jsonOpts); err != nil {
				return err
			}
		}
	}

	if showTimings {
		fmt.Fprint(os.Stderr, driver.FormatTimings(res.TimingsPayload(perFileTimings)))
	}

	if res.HasErrors() {
		// Suppress cobra usage output; the violations are the message.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func lintTitle(paths []string) string {
	if len(paths) == 1 && paths[0] != "." {
		return "linting " + paths[0]
	}
	return "linting"
}

// renderPretty prints every file's violations followed by the run
// summary. Files that failed to load go to stderr so the report stays
// parseable.
func renderPretty(res *driver.Result, opts diagfmt.PrettyOpts) {
	printed := false
	var all []lint.Violation
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Err != nil {
			fmt.Fprintf(os.Stderr, "nu-lint: %s: %v\n", fr.Path, fr.Err)
			continue
		}
		if len(fr.Violations) == 0 {
			continue
		}
		if printed {
			fmt.Fprintln(os.Stdout)
		}
		diagfmt.Pretty(os.Stdout, fr.Violations, fr.Set, opts)
		printed = true
		all = append(all, fr.Violations...)
	}
	if printed {
		fmt.Fprintln(os.Stdout)
	}
	diagfmt.Summary(os.Stdout, all, opts.Color)
}

// renderJSON emits one payload for a single file and a path-keyed map
// for multi-file runs.
func renderJSON(res *driver.Result, opts diagfmt.JSONOpts) error {
	if len(res.Files) == 1 && res.Files[0].Err == nil {
		fr := &res.Files[0]
		return diagfmt.JSON(os.Stdout, fr.Violations, fr.Set, opts)
	}
	output := make(map[string]diagfmt.Output, len(res.Files))
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Err != nil {
			fmt.Fprintf(os.Stderr, "nu-lint: %s: %v\n", fr.Path, fr.Err)
			continue
		}
		output[fr.Path] = diagfmt.BuildOutput(fr.Violations, fr.Set, opts)
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to encode violations: %w", err)
	}
	return nil
}
