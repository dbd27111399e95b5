package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nulint/internal/lint"
	"nulint/internal/rules"
)

var explainCmd = &cobra.Command{
	Use:   "explain <rule>",
	Short: "Show a rule's full description",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	id := args[0]
	reg := lint.MustRegistry(rules.All()...)
	rule, ok := reg.Get(id)
	if !ok {
		if near := nearRules(reg, id); len(near) > 0 {
			return fmt.Errorf("unknown rule %q; did you mean %s?", id, strings.Join(near, " or "))
		}
		return fmt.Errorf("unknown rule %q (run nu-lint rules for the list)", id)
	}

	info := rule.Info()
	fmt.Fprintf(os.Stdout, "%s: %s\n", info.ID, info.Short)

	meta := []string{"level: " + info.Level.String()}
	if groups := groupsOf(info.ID); len(groups) > 0 {
		meta = append(meta, "groups: "+strings.Join(groups, ", "))
	}
	if _, fixable := rule.(lint.FixableRule); fixable {
		meta = append(meta, "fixable")
	}
	fmt.Fprintln(os.Stdout, strings.Join(meta, "   "))

	if long := strings.TrimSpace(info.Long); long != "" {
		fmt.Fprintf(os.Stdout, "\n%s\n", long)
	}
	if info.Link != "" {
		fmt.Fprintf(os.Stdout, "\nsee: %s\n", info.Link)
	}
	return nil
}

// nearRules finds rules whose id shares a substring with the query, for
// the typo case.
func nearRules(reg *lint.Registry, query string) []string {
	query = strings.ToLower(query)
	var out []string
	for _, r := range reg.Rules() {
		id := r.Info().ID
		if strings.Contains(id, query) || strings.Contains(query, id) {
			out = append(out, id)
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}
