// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rukata-org/rukata/internal/testutil"
	"github.com/rukata-org/rukata/pkg/puzzle"
	"github.com/rukata-org/rukata/pkg/puzzleconfig"
)

func filePaths(files []puzzle.File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path()
	}
	return out
}

func TestCompileSumTwo(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	f := testutil.SumTwo(7)
	testutil.WritePuzzle(t, root, f)

	store, err := Compile(context.Background(), root)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	p, ok := store.Lookup(7)
	if !ok {
		t.Fatal("Lookup(7) missed")
	}
	if got := p.ReadOnlyPaths(); len(got) != 0 {
		t.Errorf("ReadOnlyPaths() = %v, want empty", got)
	}
	base := p.BaseFiles()
	if diff := cmp.Diff([]string{"src/main.rs", "README.md"}, filePaths(base)); diff != "" {
		t.Errorf("BaseFiles() mismatch (-want +got):\n%s", diff)
	}
	if !base[0].Equal([]byte(f.Starter[0].Content)) {
		t.Errorf("BaseFiles()[0] = %q, want starter content", base[0].Bytes())
	}

	wantReadme := "# Sum Two - Puzzle ID 00007\nAdd two numbers.\n\n\n### Command\n`rukata generate 7`\n"
	if got := p.Readme().Text(); got != wantReadme {
		t.Errorf("Readme() =\n%q\nwant\n%q", got, wantReadme)
	}
	if p.Difficulty() != puzzle.DifficultyBasic {
		t.Errorf("Difficulty() = %q, want basic", p.Difficulty())
	}
}

func TestCompileReadOnlyHelper(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	f := testutil.SumTwo(7)
	f.Starter = append(f.Starter, testutil.FixtureFile{Path: "src/helper.rs", Content: "pub fn helper() {}\n"})
	testutil.WritePuzzle(t, root, f)

	store, err := Compile(context.Background(), root)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	p, _ := store.Lookup(7)

	if diff := cmp.Diff([]string{"src/helper.rs"}, p.ReadOnlyPaths()); diff != "" {
		t.Errorf("ReadOnlyPaths() mismatch (-want +got):\n%s", diff)
	}
	ro := p.ReadOnlyFiles()
	if len(ro) != 1 || ro[0].Path() != "src/helper.rs" || !ro[0].Equal([]byte("pub fn helper() {}\n")) {
		t.Errorf("ReadOnlyFiles() = %v", filePaths(ro))
	}
}

func TestCompileMissingSolutionFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	f := testutil.SumTwo(7)
	f.Solution = append(f.Solution, testutil.FixtureFile{Path: "src/missing.rs"})
	dir := testutil.WritePuzzle(t, root, f)
	if err := os.Remove(filepath.Join(dir, "solution", "src", "missing.rs")); err != nil {
		t.Fatal(err)
	}

	store, err := Compile(context.Background(), root)
	if store != nil {
		t.Error("Compile() returned a store alongside an error")
	}
	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("Compile() error = %v, want ErrMissingFile", err)
	}
	var mfe *MissingFileError
	if !errors.As(err, &mfe) {
		t.Fatalf("Compile() error = %T, want *MissingFileError", err)
	}
	if mfe.Path != "src/missing.rs" || mfe.Set != FileSetSolution {
		t.Errorf("MissingFileError = {Set: %q, Path: %q}", mfe.Set, mfe.Path)
	}
	if mfe.Manifest != filepath.Join(dir, puzzleconfig.JSONFilename) {
		t.Errorf("MissingFileError.Manifest = %q", mfe.Manifest)
	}
	if !strings.Contains(err.Error(), "src/missing.rs") {
		t.Errorf("error message %q does not name the missing path", err)
	}
}

func TestCompileMissingFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		remove  string
		wantSet FileSet
	}{
		{name: "starter", remove: "starter/src/main.rs", wantSet: FileSetStarter},
		{name: "readme", remove: "README.md", wantSet: FileSetReadme},
		{name: "readme file", remove: "docs/hints.md", wantSet: FileSetReadmeFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			f := testutil.SumTwo(1)
			f.ReadmeFiles = []testutil.FixtureFile{{Path: "docs/hints.md", Content: "hint"}}
			dir := testutil.WritePuzzle(t, root, f)
			if err := os.Remove(filepath.Join(dir, filepath.FromSlash(tt.remove))); err != nil {
				t.Fatal(err)
			}

			_, err := Compile(context.Background(), root)
			var mfe *MissingFileError
			if !errors.As(err, &mfe) {
				t.Fatalf("Compile() error = %v, want *MissingFileError", err)
			}
			if mfe.Set != tt.wantSet {
				t.Errorf("MissingFileError.Set = %q, want %q", mfe.Set, tt.wantSet)
			}
		})
	}
}

func TestCompileDirectoryIsNotAFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	f := testutil.SumTwo(1)
	f.Solution = append(f.Solution, testutil.FixtureFile{Path: "lib"})
	dir := testutil.WritePuzzle(t, root, f)
	lib := filepath.Join(dir, "solution", "lib")
	if err := os.Remove(lib); err != nil {
		t.Fatal(err)
	}
	testutil.MustMkdirAll(t, lib, 0o755)

	_, err := Compile(context.Background(), root)
	var mfe *MissingFileError
	if !errors.As(err, &mfe) || mfe.Path != "lib" {
		t.Errorf("Compile() error = %v, want *MissingFileError for lib", err)
	}
}

func TestCompileDuplicateID(t *testing.T) {
	t.Parallel()

	for _, dirs := range [][2]string{{"a", "b"}, {"b", "a"}} {
		root := t.TempDir()
		first := testutil.SumTwo(5)
		first.Dir = dirs[0]
		second := testutil.SumTwo(5)
		second.Dir = dirs[1]
		second.Title = "Another"
		testutil.WritePuzzle(t, root, first)
		testutil.WritePuzzle(t, root, second)

		_, err := Compile(context.Background(), root)
		if !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("Compile() error = %v, want ErrDuplicateID", err)
		}
		var dup *DuplicateIDError
		if !errors.As(err, &dup) {
			t.Fatalf("Compile() error = %T, want *DuplicateIDError", err)
		}
		wantFirst := filepath.Join(root, "a", puzzleconfig.JSONFilename)
		wantSecond := filepath.Join(root, "b", puzzleconfig.JSONFilename)
		if dup.ID != 5 || dup.First != wantFirst || dup.Second != wantSecond {
			t.Errorf("DuplicateIDError = %+v, want id 5 in %s and %s", dup, wantFirst, wantSecond)
		}
	}
}

func TestCompileNestedCorpus(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, f := range []testutil.PuzzleFixture{
		{Dir: "basic/p00003", Title: "Three", ID: 3, Readme: "three", Difficulty: "basic"},
		{Dir: "advanced/deep/p00001", Title: "One", ID: 1, Readme: "one", Difficulty: "ADVANCED"},
		{Dir: "p65535", Title: "Last", ID: 65535, Readme: "last", Categories: []string{"b", "a", "b"}},
	} {
		testutil.WritePuzzle(t, root, f)
	}

	store, err := Compile(context.Background(), root)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if diff := cmp.Diff([]puzzle.ID{1, 3, 65535}, store.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
	last, _ := store.Lookup(65535)
	if diff := cmp.Diff([]string{"a", "b"}, last.Categories()); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}
	one, _ := store.Lookup(1)
	if one.Difficulty() != puzzle.DifficultyAdvanced {
		t.Errorf("Difficulty() = %q, want advanced", one.Difficulty())
	}
}

func TestCompileEmptyCorpus(t *testing.T) {
	t.Parallel()

	store, err := Compile(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
}

func TestCompileInvalidManifest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WritePuzzle(t, root, testutil.SumTwo(1))
	testutil.MustWriteFile(t, filepath.Join(root, "broken", puzzleconfig.JSONFilename), `{"title": "Broken"}`)

	_, err := Compile(context.Background(), root)
	if !errors.Is(err, puzzleconfig.ErrInvalidManifest) {
		t.Errorf("Compile() error = %v, want ErrInvalidManifest", err)
	}
}

func TestCompileMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Compile(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrIO) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Compile() error = %v, want ErrIO wrapping os.ErrNotExist", err)
	}
}

func TestCompileCanceled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WritePuzzle(t, root, testutil.SumTwo(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Compile(ctx, root); !errors.Is(err, context.Canceled) {
		t.Errorf("Compile() error = %v, want context.Canceled", err)
	}
}

func TestDiscoverRejectsBothManifestFlavors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := testutil.WritePuzzle(t, root, testutil.SumTwo(1))
	testutil.MustWriteFile(t, filepath.Join(dir, puzzleconfig.CUEFilename), `title: "Sum Two"`)

	_, err := Discover(root)
	if !errors.Is(err, puzzleconfig.ErrInvalidManifest) {
		t.Errorf("Discover() error = %v, want ErrInvalidManifest", err)
	}
}

func TestDiscoverSorted(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "z", puzzleconfig.JSONFilename), "{}")
	testutil.MustWriteFile(t, filepath.Join(root, "a", "b", puzzleconfig.CUEFilename), "")
	testutil.MustWriteFile(t, filepath.Join(root, "m", "notes.json"), "{}")

	got, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{
		filepath.Join(root, "a", "b", puzzleconfig.CUEFilename),
		filepath.Join(root, "z", puzzleconfig.JSONFilename),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizeReadme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "unix",
			raw:  "Body\nline\n",
			want: "# T - Puzzle ID 00042\nBody\nline\n\n\n### Command\n`rukata generate 42`\n",
		},
		{
			name: "crlf",
			raw:  "Body\r\nline\r\n",
			want: "# T - Puzzle ID 00042\nBody\nline\n\n\n### Command\n`rukata generate 42`\n",
		},
		{
			name: "bare cr",
			raw:  "Body\rline",
			want: "# T - Puzzle ID 00042\nBody\nline\n\n### Command\n`rukata generate 42`\n",
		},
		{
			name: "empty",
			raw:  "",
			want: "# T - Puzzle ID 00042\n\n\n### Command\n`rukata generate 42`\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SynthesizeReadme(tt.raw, "T", 42)
			if got != tt.want {
				t.Errorf("SynthesizeReadme() = %q, want %q", got, tt.want)
			}
			if again := SynthesizeReadme(tt.raw, "T", 42); again != got {
				t.Error("SynthesizeReadme() is not deterministic")
			}
		})
	}
}
