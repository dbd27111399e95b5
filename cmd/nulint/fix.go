package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nulint/internal/driver"
	"nulint/internal/lint"
	"nulint/internal/rules"
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Apply available fixes to Nushell scripts",
	Long: `Run the rules over the given files and splice in their fixes, repeating
until nothing new applies. Files are rewritten in place; use --dry-run
to preview the changes without touching anything.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every available fix (default)")
	fixCmd.Flags().Bool("dry-run", false, "show what would change without writing")
	fixCmd.Flags().String("rule", "", "apply fixes from this rule only")
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	ruleID, err := cmd.Flags().GetString("rule")
	if err != nil {
		return fmt.Errorf("failed to get rule flag: %w", err)
	}
	if ruleID != "" && applyAll {
		return fmt.Errorf("--rule cannot be combined with --all")
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colorize, err := useColor(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if ruleID != "" {
		cfg, err = scopeConfigToRule(cfg, ruleID)
		if err != nil {
			return err
		}
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := driver.Discover(paths...)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintln(os.Stdout, "no .nu files found")
		}
		return nil
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.Options{Config: cfg, Warn: os.Stderr}
	outcome, err := driver.FixFiles(cmd.Context(), files, !dryRun, opts)
	if err != nil {
		return err
	}

	failed := 0
	applied := 0
	changed := 0
	for i := range outcome.Files {
		ff := &outcome.Files[i]
		if ff.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "nu-lint: %s: %v\n", ff.Path, ff.Err)
			continue
		}
		if !ff.Changed {
			continue
		}
		changed++
		applied += len(ff.Applied)
		if quiet {
			continue
		}
		if dryRun {
			fmt.Fprintf(os.Stdout, "would fix %s (%s in %d passes):\n",
				ff.Path, counted(len(ff.Applied), "fix"), ff.Passes)
			for j := range ff.Previews {
				printPreview(os.Stdout, &ff.Previews[j], colorize)
			}
		} else {
			fmt.Fprintf(os.Stdout, "fixed %s (%s in %d passes)\n",
				ff.Path, counted(len(ff.Applied), "fix"), ff.Passes)
			for _, a := range ff.Applied {
				fmt.Fprintf(os.Stdout, "  %s: %s\n", a.Rule, a.Description)
			}
		}
	}

	if !quiet {
		switch {
		case changed == 0 && failed == 0:
			fmt.Fprintln(os.Stdout, "no applicable fixes found")
		case dryRun:
			fmt.Fprintf(os.Stdout, "%s available across %s (run without --dry-run to apply)\n",
				counted(applied, "fix"), counted(changed, "file"))
		default:
			fmt.Fprintf(os.Stdout, "applied %s across %s\n",
				counted(applied, "fix"), counted(changed, "file"))
		}
	}

	if failed > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%s failed", counted(failed, "file"))
	}
	return nil
}

// scopeConfigToRule disables every registered rule except the named
// one, leaving its own configured severity intact.
func scopeConfigToRule(cfg *lint.Config, ruleID string) (*lint.Config, error) {
	reg := lint.MustRegistry(rules.All()...)
	if !reg.Has(ruleID) {
		return nil, fmt.Errorf("unknown rule %q (run nu-lint rules for the list)", ruleID)
	}
	scoped := *cfg
	scoped.Rules = make(map[string]lint.Severity, reg.Len())
	for _, r := range reg.Rules() {
		id := r.Info().ID
		if id == ruleID {
			if sev, ok := cfg.Rules[id]; ok {
				scoped.Rules[id] = sev
			}
			continue
		}
		scoped.Rules[id] = lint.SevOff
	}
	return &scoped, nil
}

var (
	previewDelColor = color.New(color.FgRed)
	previewAddColor = color.New(color.FgGreen)
)

func printPreview(out io.Writer, p *driver.FixPreview, colorize bool) {
	fmt.Fprintf(out, "  %s: %s\n", p.Rule, p.Description)
	for _, line := range splitPreview(p.Before) {
		printed := "    - " + line
		if colorize {
			printed = previewDelColor.Sprint(printed)
		}
		fmt.Fprintln(out, printed)
	}
	for _, line := range splitPreview(p.After) {
		printed := "    + " + line
		if colorize {
			printed = previewAddColor.Sprint(printed)
		}
		fmt.Fprintln(out, printed)
	}
}

func splitPreview(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func counted(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
