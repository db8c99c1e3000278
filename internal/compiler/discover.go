// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rukata-org/rukata/pkg/puzzleconfig"
)

// manifestPattern matches both manifest flavors at any depth.
const manifestPattern = "**/puzzle-config.{json,cue}"

// Discover returns every manifest under root, sorted by path. A directory
// holding both a JSON and a CUE manifest is rejected.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &IOError{Op: "open puzzle root", Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &IOError{Op: "open puzzle root", Path: root, Err: errNotDirectory}
	}

	matches, err := doublestar.Glob(os.DirFS(root), manifestPattern, doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, &IOError{Op: "walk puzzle root", Path: root, Err: err}
	}
	slices.Sort(matches)

	manifests := make([]string, 0, len(matches))
	byDir := make(map[string]string, len(matches))
	for _, m := range matches {
		dir := path.Dir(m)
		full := filepath.Join(root, filepath.FromSlash(m))
		if other, dup := byDir[dir]; dup {
			return nil, &puzzleconfig.ManifestError{
				Path: full,
				Err:  fmt.Errorf("%s already defines this puzzle; keep only one manifest per directory", filepath.Base(other)),
			}
		}
		byDir[dir] = full
		manifests = append(manifests, full)
	}
	return manifests, nil
}
