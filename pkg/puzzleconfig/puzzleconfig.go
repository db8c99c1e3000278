// SPDX-License-Identifier: MPL-2.0

package puzzleconfig

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/rukata-org/rukata/pkg/cueutil"
	"github.com/rukata-org/rukata/pkg/puzzle"
)

const (
	// JSONFilename is the JSON manifest name looked up in a puzzle directory.
	JSONFilename = "puzzle-config.json"
	// CUEFilename is the CUE manifest name looked up in a puzzle directory.
	CUEFilename = "puzzle-config.cue"

	// StarterDir holds the starter files of a puzzle directory.
	StarterDir = "starter"
	// SolutionDir holds the solution files of a puzzle directory.
	SolutionDir = "solution"
)

var (
	//go:embed puzzle_schema.cue
	puzzleSchemaSrc string

	puzzleSchema = cueutil.MustCompileSchema(puzzleSchemaSrc, "#PuzzleConfig")
)

type (
	// Manifest is the parsed puzzle-config of one puzzle directory.
	Manifest struct {
		// Path is the manifest file the values were read from.
		Path string

		Title       string
		ID          puzzle.ID
		Starter     []string
		Solution    []string
		ReadmeFiles []string
		Difficulty  puzzle.Difficulty
		// Categories and Libraries are sets: deduplicated and sorted.
		Categories []string
		Libraries  []string
	}

	// rawManifest mirrors #PuzzleConfig for CUE decoding.
	rawManifest struct {
		Title       string   `json:"title"`
		ID          int      `json:"id"`
		Starter     []string `json:"starter"`
		Solution    []string `json:"solution"`
		ReadmeFiles []string `json:"readme_files"`
		Difficulty  string   `json:"difficulty"`
		Categories  []string `json:"categories"`
		Libraries   []string `json:"libraries"`
	}
)

// Filenames returns the accepted manifest file names.
func Filenames() []string {
	return []string{JSONFilename, CUEFilename}
}

// Parse reads and parses the manifest at path.
func Parse(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}
	return ParseBytes(data, path)
}

// ParseBytes parses manifest content. JSON and CUE input share one schema
// since JSON is valid CUE.
func ParseBytes(data []byte, path string) (*Manifest, error) {
	raw, err := cueutil.Decode[rawManifest](puzzleSchema, data, cueutil.WithFilename(path))
	if err != nil {
		field := ""
		var ve *cueutil.ValidationError
		if errors.As(err, &ve) {
			field = ve.Field()
		}
		return nil, &ManifestError{Path: path, Field: field, Err: err}
	}

	difficulty, err := puzzle.ParseDifficulty(raw.Difficulty)
	if err != nil {
		return nil, &ManifestError{Path: path, Field: "difficulty", Err: err}
	}

	m := &Manifest{
		Path:        path,
		Title:       raw.Title,
		ID:          puzzle.ID(raw.ID),
		Starter:     nonNil(raw.Starter),
		Solution:    nonNil(raw.Solution),
		ReadmeFiles: nonNil(raw.ReadmeFiles),
		Difficulty:  difficulty,
		Categories:  toSet(raw.Categories),
		Libraries:   toSet(raw.Libraries),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Dir returns the puzzle directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// ReadOnlyPaths returns the starter paths that the solution does not
// replace, in starter order.
func (m *Manifest) ReadOnlyPaths() []string {
	paths := make([]string, 0, len(m.Starter))
	for _, p := range m.Starter {
		if !slices.Contains(m.Solution, p) {
			paths = append(paths, p)
		}
	}
	return paths
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toSet(values []string) []string {
	set := slices.Clone(nonNil(values))
	slices.Sort(set)
	return slices.Compact(set)
}
