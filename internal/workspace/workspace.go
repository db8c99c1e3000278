// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rukata-org/rukata/pkg/puzzle"
)

const (
	// WorkingDir holds the learner's working copies.
	WorkingDir = "working"
	// SolutionDir holds materialized reference solutions.
	SolutionDir = "solution"

	fileMode     os.FileMode = 0o644
	readOnlyMode os.FileMode = 0o444
	dirMode      os.FileMode = 0o755
)

var folderNameReplacer = strings.NewReplacer("/", "-", "\\", "-")

// FolderName returns the directory name of p's workspaces: the padded id
// and the title, "p00001 - Sum Two". Path separators in the title become
// dashes.
func FolderName(p *puzzle.Puzzle) string {
	return "p" + p.ID().Padded() + " - " + folderNameReplacer.Replace(p.Title())
}

// WorkingPath returns the working copy directory of p under root.
func WorkingPath(root string, p *puzzle.Puzzle) string {
	return filepath.Join(root, WorkingDir, FolderName(p))
}

// SolutionPath returns the solution directory of p under root.
func SolutionPath(root string, p *puzzle.Puzzle) string {
	return filepath.Join(root, SolutionDir, FolderName(p))
}

// Generate scaffolds a fresh working copy of p under root: starter files,
// README.md and readme files. Read-only starter files are written with
// mode 0444. An existing working copy is never touched.
func Generate(root string, p *puzzle.Puzzle) (string, error) {
	dir := WorkingPath(root, p)
	if err := create(dir, p.BaseFiles()); err != nil {
		return dir, err
	}

	var errs []error
	for _, rel := range p.ReadOnlyPaths() {
		target := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.Chmod(target, readOnlyMode); err != nil {
			errs = append(errs, &DirError{Dir: dir, Err: fmt.Errorf("mark %s read-only: %w", rel, err)})
		}
	}
	return dir, errors.Join(errs...)
}

// Solution materializes the reference solution of p under root.
func Solution(root string, p *puzzle.Puzzle) (string, error) {
	dir := SolutionPath(root, p)
	return dir, create(dir, p.FinalFiles())
}

// Verify checks that every read-only file of p's working copy exists with
// its original bytes. All problems are reported, joined.
func Verify(root string, p *puzzle.Puzzle) (string, error) {
	dir := WorkingPath(root, p)
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return dir, &DirError{Dir: dir, Err: ErrWorkspaceMissing}
	case err != nil:
		return dir, &DirError{Dir: dir, Err: err}
	case !info.IsDir():
		return dir, &DirError{Dir: dir, Err: fmt.Errorf("%w: not a directory", ErrWorkspaceMissing)}
	}

	var errs []error
	for _, f := range p.ReadOnlyFiles() {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Path())))
		switch {
		case errors.Is(err, os.ErrNotExist):
			errs = append(errs, &TamperedFileError{Path: f.Path(), Reason: ReasonMissing})
		case err != nil:
			errs = append(errs, &TamperedFileError{Path: f.Path(), Reason: ReasonUnreadable, Err: err})
		case !f.Equal(data):
			errs = append(errs, &TamperedFileError{Path: f.Path(), Reason: ReasonModified})
		}
	}
	return dir, errors.Join(errs...)
}

// create makes dir, which must not exist, and writes files into it.
func create(dir string, files []puzzle.File) error {
	if _, err := os.Lstat(dir); err == nil {
		return &DirError{Dir: dir, Err: ErrWorkspaceExists}
	} else if !errors.Is(err, os.ErrNotExist) {
		return &DirError{Dir: dir, Err: err}
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return &DirError{Dir: dir, Err: err}
	}

	var errs []error
	for _, f := range files {
		if err := writeFile(dir, f); err != nil {
			errs = append(errs, &DirError{Dir: dir, Err: err})
		}
	}
	return errors.Join(errs...)
}

func writeFile(dir string, f puzzle.File) error {
	target := filepath.Join(dir, filepath.FromSlash(f.Path()))
	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return err
	}
	return os.WriteFile(target, f.Bytes(), fileMode)
}
