// SPDX-License-Identifier: MPL-2.0

package puzzle

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidPuzzle is the sentinel error wrapped by InvalidPuzzleError.
var ErrInvalidPuzzle = errors.New("invalid puzzle")

type (
	// Definition carries everything needed to build a Puzzle. It is the
	// mutable staging form used by the compiler and the bundle decoder.
	Definition struct {
		Title         string
		ID            ID
		Starter       []File
		Solution      []File
		Readme        File
		ReadmeFiles   []File
		ReadOnlyPaths []string
		Difficulty    Difficulty
		Categories    []string
		Libraries     []string
	}

	// Puzzle is a compiled, immutable puzzle bundle.
	Puzzle struct {
		title       string
		id          ID
		starter     []File
		solution    []File
		readme      File
		readmeFiles []File
		readOnly    map[string]struct{}
		difficulty  Difficulty
		categories  []string
		libraries   []string
	}

	// InvalidPuzzleError is returned when a Definition violates a structural
	// invariant. It wraps ErrInvalidPuzzle for errors.Is() compatibility.
	InvalidPuzzleError struct {
		ID     ID
		Reason string
	}
)

// New validates def and freezes it into a Puzzle. The definition's slices
// are copied; later changes to def do not affect the Puzzle.
//
// Invariants checked: the readme is text content at ReadmePath, the
// difficulty is known, every read-only path names a starter file and no
// read-only path is also a solution path.
func New(def Definition) (*Puzzle, error) {
	if def.Title == "" {
		return nil, &InvalidPuzzleError{ID: def.ID, Reason: "empty title"}
	}
	if def.Readme.Path() != ReadmePath || !def.Readme.IsText() {
		return nil, &InvalidPuzzleError{ID: def.ID, Reason: "readme must be text content at " + ReadmePath}
	}
	difficulty := def.Difficulty
	if difficulty == "" {
		difficulty = DifficultyNone
	}
	if !difficulty.IsValid() {
		return nil, &InvalidPuzzleError{ID: def.ID, Reason: fmt.Sprintf("unknown difficulty %q", def.Difficulty)}
	}

	readOnly := make(map[string]struct{}, len(def.ReadOnlyPaths))
	for _, p := range def.ReadOnlyPaths {
		if !slices.ContainsFunc(def.Starter, func(f File) bool { return f.path == p }) {
			return nil, &InvalidPuzzleError{ID: def.ID, Reason: fmt.Sprintf("read-only path %q is not a starter file", p)}
		}
		if slices.ContainsFunc(def.Solution, func(f File) bool { return f.path == p }) {
			return nil, &InvalidPuzzleError{ID: def.ID, Reason: fmt.Sprintf("read-only path %q is also a solution file", p)}
		}
		readOnly[p] = struct{}{}
	}

	return &Puzzle{
		title:       def.Title,
		id:          def.ID,
		starter:     slices.Clone(def.Starter),
		solution:    slices.Clone(def.Solution),
		readme:      def.Readme,
		readmeFiles: slices.Clone(def.ReadmeFiles),
		readOnly:    readOnly,
		difficulty:  difficulty,
		categories:  slices.Clone(def.Categories),
		libraries:   slices.Clone(def.Libraries),
	}, nil
}

// Title returns the puzzle title.
func (p *Puzzle) Title() string { return p.title }

// ID returns the puzzle identifier.
func (p *Puzzle) ID() ID { return p.id }

// Difficulty returns the difficulty tier.
func (p *Puzzle) Difficulty() Difficulty { return p.difficulty }

// Starter returns a copy of the starter files in manifest order.
func (p *Puzzle) Starter() []File { return slices.Clone(p.starter) }

// Solution returns a copy of the solution files in manifest order.
func (p *Puzzle) Solution() []File { return slices.Clone(p.solution) }

// Readme returns the synthesized README.md.
func (p *Puzzle) Readme() File { return p.readme }

// ReadmeFiles returns a copy of the extra documentation files.
func (p *Puzzle) ReadmeFiles() []File { return slices.Clone(p.readmeFiles) }

// Categories returns a copy of the sorted category set.
func (p *Puzzle) Categories() []string { return slices.Clone(p.categories) }

// Libraries returns a copy of the sorted library set.
func (p *Puzzle) Libraries() []string { return slices.Clone(p.libraries) }

// IsReadOnly reports whether path is a read-only starter path.
func (p *Puzzle) IsReadOnly(path string) bool {
	_, ok := p.readOnly[path]
	return ok
}

// ReadOnlyPaths returns the read-only paths in starter order.
func (p *Puzzle) ReadOnlyPaths() []string {
	paths := make([]string, 0, len(p.readOnly))
	for _, f := range p.starter {
		if p.IsReadOnly(f.path) {
			paths = append(paths, f.path)
		}
	}
	return paths
}

// BaseFiles returns starter files, then README.md, then readme files.
// This is the file set written when scaffolding a fresh working copy.
func (p *Puzzle) BaseFiles() []File {
	files := make([]File, 0, len(p.starter)+1+len(p.readmeFiles))
	files = append(files, p.starter...)
	files = append(files, p.readme)
	return append(files, p.readmeFiles...)
}

// ReadOnlyFiles returns the starter files whose path is read-only, in
// starter order.
func (p *Puzzle) ReadOnlyFiles() []File {
	files := make([]File, 0, len(p.readOnly))
	for _, f := range p.starter {
		if p.IsReadOnly(f.path) {
			files = append(files, f)
		}
	}
	return files
}

// FinalFiles returns README.md, readme files, read-only files and then the
// solution files. Editable starter files are left out: the solution replaces
// them entirely.
func (p *Puzzle) FinalFiles() []File {
	files := make([]File, 0, 1+len(p.readmeFiles)+len(p.readOnly)+len(p.solution))
	files = append(files, p.readme)
	files = append(files, p.readmeFiles...)
	files = append(files, p.ReadOnlyFiles()...)
	return append(files, p.solution...)
}

// definition returns the staging form of p, used by the encoder.
func (p *Puzzle) definition() Definition {
	return Definition{
		Title:         p.title,
		ID:            p.id,
		Starter:       p.starter,
		Solution:      p.solution,
		Readme:        p.readme,
		ReadmeFiles:   p.readmeFiles,
		ReadOnlyPaths: p.ReadOnlyPaths(),
		Difficulty:    p.difficulty,
		Categories:    p.categories,
		Libraries:     p.libraries,
	}
}

// Error implements the error interface.
func (e *InvalidPuzzleError) Error() string {
	return fmt.Sprintf("invalid puzzle %s: %s", e.ID.Padded(), e.Reason)
}

// Unwrap returns ErrInvalidPuzzle for errors.Is() compatibility.
func (e *InvalidPuzzleError) Unwrap() error { return ErrInvalidPuzzle }
