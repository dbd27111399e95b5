package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Template is the commented starter config written by `nu-lint init`.
// Every key is present so the file doubles as the reference for the
// configuration surface.
const Template = `# nu-lint configuration.
#
# Severities: "error", "warn", "hint", "allow" ("off" works too).
# A rule set to "allow" stays silent; a disabled group silences all its
# members unless a rule is overridden individually.

pipeline_placement = "start"
max_pipeline_length = 80
explicit_optional_access = false
skip_external_parse_errors = true

[lints.rules]
# unsafe_dynamic_record_access = "error"
# manual_loop_counter = "allow"

[lints.groups]
# pedantic = true
# safety = true
`

// WriteDefault writes the starter config into dir and returns its path.
// An existing config is never overwritten.
func WriteDefault(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, TOMLName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
