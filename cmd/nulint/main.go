package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nulint/internal/config"
	"nulint/internal/lint"
	"nulint/internal/rules"
	"nulint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "nu-lint",
	Short: "Static analysis for Nushell scripts",
	Long:  `nu-lint finds bugs and style problems in Nushell scripts and can rewrite many of them in place`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "config file (default: nearest nu-lint.toml or nu-lint.yaml)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress everything except the exit status")
	rootCmd.PersistentFlags().Bool("timings", false, "show phase timings after the run")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to the given path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the output terminal.
func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(os.Stdout), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
}

// loadConfig resolves the effective configuration: the --config flag
// when set, otherwise the nearest config file above the working
// directory, otherwise defaults. Rule ids the registry does not know
// get a warning on stderr rather than an error, so a config written
// for a newer nu-lint still loads.
func loadConfig(cmd *cobra.Command) (*lint.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	if path == "" {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, wdErr
		}
		found, ok, findErr := config.Find(wd)
		if findErr != nil {
			return nil, findErr
		}
		if !ok {
			return lint.DefaultConfig(), nil
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	reg := lint.MustRegistry(rules.All()...)
	known := func(id string) bool {
		switch id {
		case lint.RuleParseError, lint.RuleUnknownIgnore, lint.RuleInvalidFix, lint.RuleFixSuperseded:
			return true
		}
		return reg.Has(id)
	}
	for _, id := range config.UnknownRules(cfg, known) {
		fmt.Fprintf(os.Stderr, "nu-lint: %s: unknown rule %q\n", path, id)
	}
	return cfg, nil
}
