// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/rukata-org/rukata/pkg/puzzle"
	"github.com/rukata-org/rukata/pkg/puzzleconfig"
)

type (
	// Option configures Compile.
	Option func(*options)

	options struct {
		logger *slog.Logger
	}
)

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Compile discovers every manifest under root and compiles the corpus into
// a frozen store. The first error of any kind aborts the pass; no partial
// store is ever returned.
func Compile(ctx context.Context, root string, opts ...Option) (*puzzle.Store, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	manifests, err := Discover(root)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("discovered puzzle manifests", "root", root, "count", len(manifests))

	puzzles := make([]*puzzle.Puzzle, 0, len(manifests))
	seen := make(map[puzzle.ID]string, len(manifests))
	for _, path := range manifests {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m, err := puzzleconfig.Parse(path)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[m.ID]; dup {
			return nil, &DuplicateIDError{ID: m.ID, First: first, Second: path}
		}
		seen[m.ID] = path

		p, err := CompilePuzzle(m)
		if err != nil {
			return nil, err
		}
		o.logger.Debug("compiled puzzle", "id", p.ID(), "title", p.Title(), "manifest", path)
		puzzles = append(puzzles, p)
	}

	store, err := puzzle.NewStore(puzzles)
	if err != nil {
		return nil, err
	}
	o.logger.Info("compiled puzzle catalog", "root", root, "puzzles", store.Len())
	return store, nil
}

// CompilePuzzle resolves the files of one manifest and assembles the
// compiled puzzle: starter files under starter/, solution files under
// solution/, README.md and readme files at the puzzle directory root.
func CompilePuzzle(m *puzzleconfig.Manifest) (*puzzle.Puzzle, error) {
	dir := m.Dir()

	starter, err := ResolveFileSet(filepath.Join(dir, puzzleconfig.StarterDir), FileSetStarter, m.Starter)
	if err != nil {
		return nil, withManifest(err, m.Path)
	}
	solution, err := ResolveFileSet(filepath.Join(dir, puzzleconfig.SolutionDir), FileSetSolution, m.Solution)
	if err != nil {
		return nil, withManifest(err, m.Path)
	}
	readmeFiles, err := ResolveFileSet(dir, FileSetReadmeFiles, m.ReadmeFiles)
	if err != nil {
		return nil, withManifest(err, m.Path)
	}
	raw, err := ResolveFileSet(dir, FileSetReadme, []string{puzzle.ReadmePath})
	if err != nil {
		return nil, withManifest(err, m.Path)
	}

	readme := SynthesizeReadme(string(raw[0].Bytes()), m.Title, m.ID)
	return puzzle.New(puzzle.Definition{
		Title:         m.Title,
		ID:            m.ID,
		Starter:       starter,
		Solution:      solution,
		Readme:        puzzle.NewFile(puzzle.ReadmePath, puzzle.TextContent(readme)),
		ReadmeFiles:   readmeFiles,
		ReadOnlyPaths: m.ReadOnlyPaths(),
		Difficulty:    m.Difficulty,
		Categories:    m.Categories,
		Libraries:     m.Libraries,
	})
}

func withManifest(err error, manifest string) error {
	var mfe *MissingFileError
	if errors.As(err, &mfe) {
		mfe.Manifest = manifest
	}
	return err
}
