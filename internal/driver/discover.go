package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover resolves lint targets to a sorted, deduplicated list of
// script files. Directory arguments are walked recursively for *.nu
// files, skipping hidden directories; file arguments are kept as
// given, so an explicitly named script lints whatever its extension.
func Discover(paths ...string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, arg := range paths {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		walkErr := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".nu") {
				add(path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	sort.Strings(files)
	return files, nil
}
