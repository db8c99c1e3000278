// SPDX-License-Identifier: MPL-2.0

package puzzleconfig

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/rukata-org/rukata/pkg/cueutil"
	"github.com/rukata-org/rukata/pkg/platform"
	"github.com/rukata-org/rukata/pkg/puzzle"
)

// ErrInvalidManifest is the sentinel wrapped by every ManifestError.
var ErrInvalidManifest = errors.New("invalid puzzle manifest")

// ManifestError reports a manifest that could not be read or that breaks a
// structural rule. Field names the offending top-level field when known.
type ManifestError struct {
	Path  string
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ManifestError) Error() string {
	// Schema errors already carry the file path.
	var ve *cueutil.ValidationError
	if errors.As(e.Err, &ve) {
		return ve.Error()
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns ErrInvalidManifest and the underlying cause.
func (e *ManifestError) Unwrap() []error {
	return []error{ErrInvalidManifest, e.Err}
}

// Validate checks the structural rules the schema cannot express: paths
// stay inside the puzzle directory, are unique per list, and documentation
// files never collide with starter or solution files.
func (m *Manifest) Validate() error {
	lists := []struct {
		field string
		paths []string
	}{
		{"starter", m.Starter},
		{"solution", m.Solution},
		{"readme_files", m.ReadmeFiles},
	}
	for _, l := range lists {
		seen := make(map[string]struct{}, len(l.paths))
		for _, p := range l.paths {
			if err := validateRelPath(p); err != nil {
				return &ManifestError{Path: m.Path, Field: l.field, Err: err}
			}
			if _, dup := seen[p]; dup {
				return &ManifestError{Path: m.Path, Field: l.field, Err: fmt.Errorf("path %q is listed twice", p)}
			}
			seen[p] = struct{}{}
		}
	}

	readme := make(map[string]struct{}, len(m.ReadmeFiles))
	for _, p := range m.ReadmeFiles {
		if p == puzzle.ReadmePath {
			return &ManifestError{Path: m.Path, Field: "readme_files", Err: fmt.Errorf("%s is generated and cannot be listed", puzzle.ReadmePath)}
		}
		readme[p] = struct{}{}
	}
	for _, l := range lists[:2] {
		for _, p := range l.paths {
			if _, clash := readme[p]; clash {
				return &ManifestError{Path: m.Path, Field: "readme_files", Err: fmt.Errorf("path %q is also a %s file", p, l.field)}
			}
			if p == puzzle.ReadmePath {
				return &ManifestError{Path: m.Path, Field: l.field, Err: fmt.Errorf("%s is reserved for the generated readme", puzzle.ReadmePath)}
			}
		}
	}
	return nil
}

// validateRelPath accepts clean, slash-separated paths that stay inside
// the directory they are resolved against.
func validateRelPath(p string) error {
	switch {
	case p == "":
		return errors.New("path is empty")
	case strings.Contains(p, `\`):
		return fmt.Errorf("path %q must use forward slashes", p)
	case path.IsAbs(p):
		return fmt.Errorf("path %q must be relative", p)
	case p == ".." || strings.HasPrefix(p, "../"):
		return fmt.Errorf("path %q escapes the puzzle directory", p)
	case path.Clean(p) != p || p == ".":
		return fmt.Errorf("path %q is not in canonical form", p)
	}
	return platform.CheckPath(p)
}
