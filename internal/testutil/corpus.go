// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/rukata-org/rukata/pkg/puzzle"
)

type (
	// FixtureFile is one file of a puzzle fixture.
	FixtureFile struct {
		Path    string
		Content string
	}

	// PuzzleFixture describes a puzzle directory to write with WritePuzzle.
	PuzzleFixture struct {
		// Dir is the puzzle directory relative to the corpus root.
		// Defaults to "pNNNNN".
		Dir         string
		Title       string
		ID          int
		Starter     []FixtureFile
		Solution    []FixtureFile
		ReadmeFiles []FixtureFile
		Readme      string
		Difficulty  string
		Categories  []string
		Libraries   []string
	}
)

// SumTwo returns a one-file puzzle whose starter and solution share
// src/main.rs, so it has no read-only files.
func SumTwo(id int) PuzzleFixture {
	return PuzzleFixture{
		Title:      "Sum Two",
		ID:         id,
		Starter:    []FixtureFile{{Path: "src/main.rs", Content: "fn sum(a: i32, b: i32) -> i32 { todo!() }\n"}},
		Solution:   []FixtureFile{{Path: "src/main.rs", Content: "fn sum(a: i32, b: i32) -> i32 { a + b }\n"}},
		Readme:     "Add two numbers.\n",
		Difficulty: "basic",
	}
}

// WritePuzzle writes f under root as a puzzle directory with a
// puzzle-config.json manifest and returns the directory path.
func WritePuzzle(t testing.TB, root string, f PuzzleFixture) string {
	t.Helper()

	rel := f.Dir
	if rel == "" {
		rel = fmt.Sprintf("p%05d", f.ID)
	}
	dir := filepath.Join(root, filepath.FromSlash(rel))

	manifest := map[string]any{
		"title":        f.Title,
		"id":           f.ID,
		"starter":      fixturePaths(f.Starter),
		"solution":     fixturePaths(f.Solution),
		"readme_files": fixturePaths(f.ReadmeFiles),
	}
	if f.Difficulty != "" {
		manifest["difficulty"] = f.Difficulty
	}
	if len(f.Categories) > 0 {
		manifest["categories"] = f.Categories
	}
	if len(f.Libraries) > 0 {
		manifest["libraries"] = f.Libraries
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode manifest: %v", err)
	}

	MustWriteFile(t, filepath.Join(dir, "puzzle-config.json"), string(data))
	MustWriteFile(t, filepath.Join(dir, "README.md"), f.Readme)
	for _, file := range f.Starter {
		MustWriteFile(t, filepath.Join(dir, "starter", filepath.FromSlash(file.Path)), file.Content)
	}
	for _, file := range f.Solution {
		MustWriteFile(t, filepath.Join(dir, "solution", filepath.FromSlash(file.Path)), file.Content)
	}
	for _, file := range f.ReadmeFiles {
		MustWriteFile(t, filepath.Join(dir, filepath.FromSlash(file.Path)), file.Content)
	}
	return dir
}

func fixturePaths(files []FixtureFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

// CargoCrate returns a puzzle with a read-only Cargo.toml and test file next
// to an editable src/lib.rs, plus one readme file.
func CargoCrate(id int) PuzzleFixture {
	return PuzzleFixture{
		Title: "Cargo Crate",
		ID:    id,
		Starter: []FixtureFile{
			{Path: "Cargo.toml", Content: "[package]\nname = \"crate\"\nversion = \"0.1.0\"\nedition = \"2021\"\n"},
			{Path: "src/lib.rs", Content: "pub fn answer() -> u32 { todo!() }\n"},
			{Path: "tests/answer.rs", Content: "#[test]\nfn answer() { assert_eq!(crate::answer(), 42); }\n"},
		},
		Solution:    []FixtureFile{{Path: "src/lib.rs", Content: "pub fn answer() -> u32 { 42 }\n"}},
		ReadmeFiles: []FixtureFile{{Path: "docs/hints.md", Content: "# Hints\n\nSix times seven.\n"}},
		Readme:      "Return the answer.\n",
		Difficulty:  "intermediate",
		Categories:  []string{"numbers"},
		Libraries:   []string{"std"},
	}
}

// MustPuzzle builds f in memory the way the compiler would: starter paths
// absent from the solution are read-only and the readme is used verbatim.
func MustPuzzle(t testing.TB, f PuzzleFixture) *puzzle.Puzzle {
	t.Helper()

	solution := fixtureFiles(f.Solution)
	var readOnly []string
	for _, file := range f.Starter {
		if !slices.ContainsFunc(f.Solution, func(s FixtureFile) bool { return s.Path == file.Path }) {
			readOnly = append(readOnly, file.Path)
		}
	}
	difficulty := puzzle.DifficultyNone
	if f.Difficulty != "" {
		d, err := puzzle.ParseDifficulty(f.Difficulty)
		if err != nil {
			t.Fatalf("fixture difficulty: %v", err)
		}
		difficulty = d
	}

	p, err := puzzle.New(puzzle.Definition{
		Title:         f.Title,
		ID:            puzzle.ID(f.ID),
		Starter:       fixtureFiles(f.Starter),
		Solution:      solution,
		Readme:        puzzle.NewFile(puzzle.ReadmePath, puzzle.TextContent(f.Readme)),
		ReadmeFiles:   fixtureFiles(f.ReadmeFiles),
		ReadOnlyPaths: readOnly,
		Difficulty:    difficulty,
		Categories:    f.Categories,
		Libraries:     f.Libraries,
	})
	if err != nil {
		t.Fatalf("failed to build puzzle %d: %v", f.ID, err)
	}
	return p
}

// MustStore builds a store holding every fixture.
func MustStore(t testing.TB, fixtures ...PuzzleFixture) *puzzle.Store {
	t.Helper()

	puzzles := make([]*puzzle.Puzzle, len(fixtures))
	for i, f := range fixtures {
		puzzles[i] = MustPuzzle(t, f)
	}
	s, err := puzzle.NewStore(puzzles)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return s
}

func fixtureFiles(files []FixtureFile) []puzzle.File {
	out := make([]puzzle.File, len(files))
	for i, f := range files {
		out[i] = puzzle.NewFile(f.Path, puzzle.TextContent(f.Content))
	}
	return out
}
