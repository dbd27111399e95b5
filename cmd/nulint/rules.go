package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"nulint/internal/lint"
	"nulint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List every rule with its default level",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	rulesCmd.Flags().String("group", "", "list only rules in this group")
}

type ruleListing struct {
	ID      string   `json:"id"`
	Level   string   `json:"level"`
	Fixable bool     `json:"fixable"`
	Short   string   `json:"short"`
	Groups  []string `json:"groups,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Link    string   `json:"link,omitempty"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	group, err := cmd.Flags().GetString("group")
	if err != nil {
		return fmt.Errorf("failed to get group flag: %w", err)
	}
	if group != "" {
		if _, ok := rules.Groups[group]; !ok {
			return fmt.Errorf("unknown group %q (have: %s)", group, strings.Join(groupNames(), ", "))
		}
	}

	reg := lint.MustRegistry(rules.All()...)
	listings := make([]ruleListing, 0, reg.Len())
	for _, r := range reg.Rules() {
		info := r.Info()
		groups := groupsOf(info.ID)
		if group != "" && !contains(groups, group) {
			continue
		}
		_, fixable := r.(lint.FixableRule)
		listings = append(listings, ruleListing{
			ID:      info.ID,
			Level:   info.Level.String(),
			Fixable: fixable,
			Short:   info.Short,
			Groups:  groups,
			Tags:    info.Tags,
			Link:    info.Link,
		})
	}

	if format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(listings)
	}
	if format != "pretty" {
		return fmt.Errorf("unknown format: %s", format)
	}

	for _, l := range listings {
		fix := ""
		if l.Fixable {
			fix = "fix"
		}
		fmt.Fprintf(os.Stdout, "%-34s %-8s %-4s %s\n", l.ID, l.Level, fix, l.Short)
	}
	if group == "" {
		var parts []string
		for _, name := range groupNames() {
			parts = append(parts, fmt.Sprintf("%s (%d)", name, len(rules.Groups[name])))
		}
		fmt.Fprintf(os.Stdout, "\ngroups: %s\n", strings.Join(parts, ", "))
	}
	return nil
}

func groupNames() []string {
	names := make([]string, 0, len(rules.Groups))
	for name := range rules.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// groupsOf returns the groups containing a rule, sorted.
func groupsOf(id string) []string {
	var out []string
	for _, name := range groupNames() {
		if contains(rules.Groups[name], id) {
			out = append(out, name)
		}
	}
	return out
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
