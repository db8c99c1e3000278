// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rukata-org/rukata/pkg/puzzle"
)

var (
	errIsDirectory  = errors.New("is a directory")
	errNotDirectory = errors.New("not a directory")
	errNotRoundTrip = errors.New("decoded bundle does not re-encode identically")
)

// ResolveFileSet reads every path (slash-separated, relative to base) into
// an immutable file, preserving order. The first unreadable path aborts
// with a *MissingFileError.
func ResolveFileSet(base string, set FileSet, paths []string) ([]puzzle.File, error) {
	files := make([]puzzle.File, 0, len(paths))
	for _, p := range paths {
		data, err := readRegular(filepath.Join(base, filepath.FromSlash(p)))
		if err != nil {
			return nil, &MissingFileError{Set: set, Path: p, Err: err}
		}
		files = append(files, puzzle.NewFile(p, puzzle.BytesContent(data)))
	}
	return files, nil
}

func readRegular(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errIsDirectory
	}
	return os.ReadFile(path)
}
