// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
)

const dsStore = ".DS_Store"

// workspaceDirNames are the only directories rukata creates under its root.
var workspaceDirNames = []string{"working", "solution"}

// ValidateDirectory checks that dir can serve as the workspace root. A
// directory that does not exist yet is valid. Every unexpected entry is
// reported; the problems are joined into one error.
func ValidateDirectory(dir string) error {
	switch {
	case dir == "":
		return &DirectoryError{Dir: dir, Problem: "is empty"}
	case !filepath.IsAbs(dir):
		return &DirectoryError{Dir: dir, Problem: "is not an absolute path"}
	}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return &DirectoryError{Dir: dir, Problem: "cannot be inspected", Err: err}
	case !info.IsDir():
		return &DirectoryError{Dir: dir, Problem: "is not a directory"}
	case info.Mode().Perm()&0o200 == 0:
		return &DirectoryError{Dir: dir, Problem: "is read-only"}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return &DirectoryError{Dir: dir, Problem: "cannot be read", Err: err}
	}

	var errs []error
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case entry.IsDir() && slices.Contains(workspaceDirNames, name):
		case entry.IsDir():
			errs = append(errs, &DirectoryError{Dir: dir, Problem: "contains an unrecognized directory: " + name})
		case name == dsStore:
		default:
			errs = append(errs, &DirectoryError{Dir: dir, Problem: "contains a non-directory entry: " + name})
		}
	}
	return errors.Join(errs...)
}
