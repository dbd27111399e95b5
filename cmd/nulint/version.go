package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nulint/internal/version"
)

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show nu-lint build fingerprints",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	switch format {
	case "pretty":
		fmt.Fprintln(os.Stdout, version.Summary())
		return nil
	case "json":
		payload := versionPayload{
			Tool:       "nu-lint",
			Version:    strings.TrimSpace(version.Version),
			GitCommit:  strings.TrimSpace(version.GitCommit),
			GitMessage: strings.TrimSpace(version.GitMessage),
			BuildDate:  strings.TrimSpace(version.BuildDate),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}
	return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
}
