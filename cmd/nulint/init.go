package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nulint/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter nu-lint.toml",
	Long: `Write a commented starter configuration into the given directory (the
current directory by default). Refuses to overwrite an existing config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else if filepath.IsAbs(args[0]) {
		target = args[0]
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = filepath.Join(wd, args[0])
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	path, err := config.WriteDefault(target)
	if err != nil {
		return err
	}

	rel := path
	if wd, wdErr := os.Getwd(); wdErr == nil {
		if r, relErr := filepath.Rel(wd, path); relErr == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", rel)
	return nil
}
