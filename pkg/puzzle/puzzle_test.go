// SPDX-License-Identifier: MPL-2.0

package puzzle

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func bytesFile(path, content string) File {
	return NewFile(path, BytesContent([]byte(content)))
}

func readmeFile(text string) File {
	return NewFile(ReadmePath, TextContent(text))
}

func paths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path()
	}
	return out
}

func sumTwo(t *testing.T, starter []File, readOnly []string) *Puzzle {
	t.Helper()

	p, err := New(Definition{
		Title:         "Sum Two",
		ID:            7,
		Starter:       starter,
		Solution:      []File{bytesFile("src/main.rs", "fn main() { solved() }")},
		Readme:        readmeFile("# Sum Two - Puzzle ID 00007\n"),
		ReadOnlyPaths: readOnly,
		Difficulty:    DifficultyBasic,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestPuzzleViewsWithoutReadOnly(t *testing.T) {
	t.Parallel()

	p := sumTwo(t, []File{bytesFile("src/main.rs", "fn main() { todo!() }")}, nil)

	if got := p.ReadOnlyPaths(); len(got) != 0 {
		t.Errorf("ReadOnlyPaths() = %v, want empty", got)
	}
	if diff := cmp.Diff([]string{"src/main.rs", "README.md"}, paths(p.BaseFiles())); diff != "" {
		t.Errorf("BaseFiles() paths mismatch (-want +got):\n%s", diff)
	}
	if got := string(p.BaseFiles()[0].Bytes()); got != "fn main() { todo!() }" {
		t.Errorf("BaseFiles()[0] = %q, want starter content", got)
	}
	if got := p.ReadOnlyFiles(); len(got) != 0 {
		t.Errorf("ReadOnlyFiles() = %v, want empty", paths(got))
	}
	if diff := cmp.Diff([]string{"README.md", "src/main.rs"}, paths(p.FinalFiles())); diff != "" {
		t.Errorf("FinalFiles() paths mismatch (-want +got):\n%s", diff)
	}
}

func TestPuzzleViewsWithReadOnly(t *testing.T) {
	t.Parallel()

	p := sumTwo(t, []File{
		bytesFile("src/main.rs", "fn main() { todo!() }"),
		bytesFile("src/helper.rs", "pub fn helper() {}"),
	}, []string{"src/helper.rs"})

	if !p.IsReadOnly("src/helper.rs") {
		t.Error("IsReadOnly(src/helper.rs) = false, want true")
	}
	if p.IsReadOnly("src/main.rs") {
		t.Error("IsReadOnly(src/main.rs) = true, want false")
	}

	ro := p.ReadOnlyFiles()
	if len(ro) != 1 || ro[0].Path() != "src/helper.rs" {
		t.Fatalf("ReadOnlyFiles() = %v, want [src/helper.rs]", paths(ro))
	}
	if !ro[0].Equal([]byte("pub fn helper() {}")) {
		t.Errorf("ReadOnlyFiles()[0] content = %q, want starter content", ro[0].Bytes())
	}

	want := []string{"README.md", "src/helper.rs", "src/main.rs"}
	if diff := cmp.Diff(want, paths(p.FinalFiles())); diff != "" {
		t.Errorf("FinalFiles() paths mismatch (-want +got):\n%s", diff)
	}
	if got := string(p.FinalFiles()[2].Bytes()); got != "fn main() { solved() }" {
		t.Errorf("FinalFiles() main.rs = %q, want solution content", got)
	}
}

func TestPuzzleViewOrdering(t *testing.T) {
	t.Parallel()

	p, err := New(Definition{
		Title: "Ordering",
		ID:    3,
		Starter: []File{
			bytesFile("b.rs", "b"),
			bytesFile("a.rs", "a"),
			bytesFile("c.rs", "c"),
		},
		Solution:      []File{bytesFile("a.rs", "A")},
		Readme:        readmeFile("readme"),
		ReadmeFiles:   []File{bytesFile("docs/z.md", "z"), bytesFile("docs/y.md", "y")},
		ReadOnlyPaths: []string{"c.rs", "b.rs"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if diff := cmp.Diff([]string{"b.rs", "a.rs", "c.rs", "README.md", "docs/z.md", "docs/y.md"}, paths(p.BaseFiles())); diff != "" {
		t.Errorf("BaseFiles() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b.rs", "c.rs"}, paths(p.ReadOnlyFiles())); diff != "" {
		t.Errorf("ReadOnlyFiles() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b.rs", "c.rs"}, p.ReadOnlyPaths()); diff != "" {
		t.Errorf("ReadOnlyPaths() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"README.md", "docs/z.md", "docs/y.md", "b.rs", "c.rs", "a.rs"}, paths(p.FinalFiles())); diff != "" {
		t.Errorf("FinalFiles() mismatch (-want +got):\n%s", diff)
	}
	if p.Difficulty() != DifficultyNone {
		t.Errorf("Difficulty() = %q, want %q", p.Difficulty(), DifficultyNone)
	}
}

// Read-only files come from starter and never collide with solution paths.
func TestPuzzleViewProperties(t *testing.T) {
	t.Parallel()

	p := sumTwo(t, []File{
		bytesFile("src/main.rs", "main"),
		bytesFile("src/helper.rs", "helper"),
		bytesFile("Cargo.toml", "[package]"),
	}, []string{"src/helper.rs", "Cargo.toml"})

	starter := make(map[string]bool)
	for _, f := range p.Starter() {
		starter[f.Path()] = true
	}
	solution := make(map[string]bool)
	for _, f := range p.Solution() {
		solution[f.Path()] = true
	}
	for _, f := range p.ReadOnlyFiles() {
		if !starter[f.Path()] {
			t.Errorf("read-only file %q is not a starter file", f.Path())
		}
		if solution[f.Path()] {
			t.Errorf("read-only file %q is also a solution file", f.Path())
		}
	}

	seen := make(map[string]bool)
	for _, f := range p.FinalFiles() {
		if seen[f.Path()] {
			t.Errorf("FinalFiles() lists %q twice", f.Path())
		}
		seen[f.Path()] = true
	}
}

func TestNewRejectsInvalidDefinitions(t *testing.T) {
	t.Parallel()

	valid := func() Definition {
		return Definition{
			Title:    "Valid",
			ID:       1,
			Starter:  []File{bytesFile("main.rs", "s")},
			Solution: []File{bytesFile("main.rs", "x")},
			Readme:   readmeFile("r"),
		}
	}

	tests := []struct {
		name   string
		mutate func(*Definition)
	}{
		{name: "empty title", mutate: func(d *Definition) { d.Title = "" }},
		{name: "byte readme", mutate: func(d *Definition) { d.Readme = bytesFile(ReadmePath, "r") }},
		{name: "readme at wrong path", mutate: func(d *Definition) { d.Readme = NewFile("README.txt", TextContent("r")) }},
		{name: "unknown difficulty", mutate: func(d *Definition) { d.Difficulty = "expert" }},
		{name: "read-only path not in starter", mutate: func(d *Definition) { d.ReadOnlyPaths = []string{"lib.rs"} }},
		{name: "read-only path in solution", mutate: func(d *Definition) { d.ReadOnlyPaths = []string{"main.rs"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			def := valid()
			tt.mutate(&def)
			_, err := New(def)
			if !errors.Is(err, ErrInvalidPuzzle) {
				t.Fatalf("New() error = %v, want ErrInvalidPuzzle", err)
			}
			var ipe *InvalidPuzzleError
			if !errors.As(err, &ipe) || ipe.ID != 1 {
				t.Errorf("New() error = %#v, want *InvalidPuzzleError for id 1", err)
			}
		})
	}
}

func TestPuzzleAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	def := Definition{
		Title:      "Copies",
		ID:         4,
		Starter:    []File{bytesFile("main.rs", "s")},
		Solution:   []File{bytesFile("main.rs", "x")},
		Readme:     readmeFile("r"),
		Categories: []string{"strings"},
	}
	p, err := New(def)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	def.Categories[0] = "mutated"
	if got := p.Categories(); got[0] != "strings" {
		t.Errorf("Categories() = %v after mutating the definition", got)
	}
	cats := p.Categories()
	cats[0] = "mutated"
	if got := p.Categories(); got[0] != "strings" {
		t.Errorf("Categories() = %v after mutating a returned slice", got)
	}
	b := p.Starter()[0].Bytes()
	b[0] = 'Z'
	if got := string(p.Starter()[0].Bytes()); got != "s" {
		t.Errorf("starter content = %q after mutating Bytes()", got)
	}
}
