// Package config loads nu-lint configuration files into the in-memory
// lint.Config the core consumes. TOML is the primary form, YAML the
// secondary; both decode strictly, so a misspelled key fails the load
// instead of silently configuring nothing.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"nulint/internal/lint"
)

// Config file names probed during discovery, in preference order.
const (
	TOMLName = "nu-lint.toml"
	YAMLName = "nu-lint.yaml"
)

// fileConfig is the on-disk shape shared by both formats. Pointer fields
// distinguish "absent" from a written zero so defaults survive partial
// files.
type fileConfig struct {
	Lints struct {
		Rules  map[string]string `toml:"rules" yaml:"rules"`
		Groups map[string]bool   `toml:"groups" yaml:"groups"`
	} `toml:"lints" yaml:"lints"`

	PipelinePlacement       string `toml:"pipeline_placement" yaml:"pipeline_placement"`
	MaxPipelineLength       *int   `toml:"max_pipeline_length" yaml:"max_pipeline_length"`
	ExplicitOptionalAccess  *bool  `toml:"explicit_optional_access" yaml:"explicit_optional_access"`
	SkipExternalParseErrors *bool  `toml:"skip_external_parse_errors" yaml:"skip_external_parse_errors"`

	Options map[string]map[string]any `toml:"options" yaml:"options"`
}

// Find walks up from startDir to locate a nu-lint config file. When a
// directory holds both forms the TOML one wins.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range []string{TOMLName, YAMLName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and validates the config file at path. The format follows
// the file extension; anything that is not .yaml or .yml decodes as TOML.
func Load(path string) (*lint.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	default:
		return ParseTOML(path, data)
	}
}

// ParseTOML decodes TOML config bytes. path only labels errors.
func ParseTOML(path string, data []byte) (*lint.Config, error) {
	var fc fileConfig
	meta, err := toml.Decode(string(data), &fc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown config keys: %s", path, strings.Join(keys, ", "))
	}
	return build(path, &fc)
}

// ParseYAML decodes YAML config bytes. path only labels errors.
func ParseYAML(path string, data []byte) (*lint.Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	return build(path, &fc)
}

func build(path string, fc *fileConfig) (*lint.Config, error) {
	cfg := lint.DefaultConfig()
	for id, text := range fc.Lints.Rules {
		sev, err := lint.ParseSeverity(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("%s: rule %s: %w", path, id, err)
		}
		cfg.Rules[id] = sev
	}
	for name, on := range fc.Lints.Groups {
		cfg.Groups[name] = on
	}
	if fc.PipelinePlacement != "" {
		p, err := lint.ParsePlacement(fc.PipelinePlacement)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg.PipelinePlacement = p
	}
	if fc.MaxPipelineLength != nil {
		// Zero disables the reflow limit; negative widths mean nothing.
		if *fc.MaxPipelineLength < 0 {
			return nil, fmt.Errorf("%s: max_pipeline_length must not be negative, got %d", path, *fc.MaxPipelineLength)
		}
		cfg.MaxPipelineLength = *fc.MaxPipelineLength
	}
	if fc.ExplicitOptionalAccess != nil {
		cfg.ExplicitOptionalAccess = *fc.ExplicitOptionalAccess
	}
	if fc.SkipExternalParseErrors != nil {
		cfg.SkipExternalParseErrors = *fc.SkipExternalParseErrors
	}
	if len(fc.Options) > 0 {
		cfg.Options = fc.Options
	}
	return cfg, nil
}

// UnknownRules lists configured rule ids the known predicate rejects,
// sorted for stable reporting. The loader itself accepts any id; the
// caller decides what the registry actually contains.
func UnknownRules(cfg *lint.Config, known func(string) bool) []string {
	var out []string
	for id := range cfg.Rules {
		if !known(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
