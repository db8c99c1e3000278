// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"errors"
	"fmt"

	"github.com/rukata-org/rukata/pkg/puzzle"
)

const (
	// FileSetStarter names files resolved under starter/.
	FileSetStarter FileSet = "starter"
	// FileSetSolution names files resolved under solution/.
	FileSetSolution FileSet = "solution"
	// FileSetReadmeFiles names extra documentation files.
	FileSetReadmeFiles FileSet = "readme_files"
	// FileSetReadme names the puzzle README.md.
	FileSetReadme FileSet = "readme"
)

var (
	// ErrMissingFile is returned when a referenced file is absent or unreadable.
	ErrMissingFile = errors.New("missing puzzle file")

	// ErrDuplicateID is returned when two manifests declare the same id.
	ErrDuplicateID = puzzle.ErrDuplicateID

	// ErrIO is returned when the corpus cannot be walked or the bundle
	// cannot be written.
	ErrIO = errors.New("puzzle compiler i/o failure")
)

type (
	// FileSet names the manifest list a file was referenced from.
	FileSet string

	// MissingFileError is returned when a file referenced by a manifest
	// cannot be read. It wraps ErrMissingFile.
	MissingFileError struct {
		// Manifest is the manifest that referenced the file.
		Manifest string
		Set      FileSet
		// Path is the path as written in the manifest.
		Path string
		Err  error
	}

	// DuplicateIDError is returned when two manifests declare the same id.
	// First and Second are ordered by path, independent of traversal order.
	DuplicateIDError struct {
		ID     puzzle.ID
		First  string
		Second string
	}

	// IOError is returned for filesystem failures outside of file
	// resolution: walking the corpus, creating directories, writing the
	// bundle. It wraps ErrIO.
	IOError struct {
		Op   string
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *MissingFileError) Error() string {
	prefix := ""
	if e.Manifest != "" {
		prefix = e.Manifest + ": "
	}
	return fmt.Sprintf("%smissing %s file %s: %v", prefix, e.Set, e.Path, e.Err)
}

// Unwrap returns ErrMissingFile and the underlying cause.
func (e *MissingFileError) Unwrap() []error {
	return []error{ErrMissingFile, e.Err}
}

// Error implements the error interface.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf(
		"puzzle id %d is declared in both:\n"+
			"  - %s\n"+
			"  - %s",
		e.ID, e.First, e.Second)
}

// Unwrap returns ErrDuplicateID for errors.Is() compatibility.
func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns ErrIO and the underlying cause.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
