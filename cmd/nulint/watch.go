package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"nulint/internal/diagfmt"
	"nulint/internal/driver"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-lint scripts as they change",
	Long: `Lint every *.nu file under the directory, then keep watching and re-lint
whatever changes. Runs until interrupted.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", driver.DefaultDebounce, "settle time before re-linting a burst of changes")
	watchCmd.Flags().String("format", "pretty", "output format (pretty|short)")
	watchCmd.Flags().Bool("clear", false, "clear the screen before each run")
}

func runWatch(cmd *cobra.Command, args []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short":
	default:
		return fmt.Errorf("unknown format: %s (watch supports pretty|short)", format)
	}
	clearScreen, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return fmt.Errorf("failed to get clear flag: %w", err)
	}
	colorize, err := useColor(cmd)
	if err != nil {
		return err
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	st, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("watch needs a directory, not %s", root)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := driver.Options{Config: cfg, Warn: os.Stderr}

	render := func(res *driver.Result) {
		if clearScreen {
			fmt.Fprint(os.Stdout, "\x1b[2J\x1b[H")
		}
		fmt.Fprintf(os.Stdout, "%s linted %s\n", time.Now().Format("15:04:05"),
			counted(len(res.Files), "file"))
		switch format {
		case "pretty":
			renderPretty(res, diagfmt.PrettyOpts{Color: colorize, Context: 1})
		case "short":
			for i := range res.Files {
				fr := &res.Files[i]
				if fr.Err != nil {
					fmt.Fprintf(os.Stderr, "nu-lint: %s: %v\n", fr.Path, fr.Err)
					continue
				}
				diagfmt.Short(os.Stdout, fr.Violations, fr.Set, diagfmt.PathModeAuto)
			}
		}
	}

	// Full pass before watching so the first picture is complete.
	res, err := driver.LintPaths(cmd.Context(), []string{root}, opts)
	if err != nil {
		return err
	}
	render(res)
	fmt.Fprintf(os.Stdout, "watching %s (interrupt to stop)\n", root)

	return driver.Watch(cmd.Context(), root, debounce, opts, render)
}
