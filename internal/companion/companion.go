// SPDX-License-Identifier: MPL-2.0

package companion

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/rukata-org/rukata/pkg/puzzle"
)

const (
	srcDir     = "src"
	puzzlesDir = "puzzles"
)

var (
	//go:embed templates
	templates embed.FS

	pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html"))

	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	difficultyPages = []struct {
		difficulty puzzle.Difficulty
		file       string
	}{
		{puzzle.DifficultyBasic, "basic.md"},
		{puzzle.DifficultyIntermediate, "intermediate.md"},
		{puzzle.DifficultyAdvanced, "advanced.md"},
	}
)

type (
	// Option configures Generate.
	Option func(*options)

	options struct {
		logger *slog.Logger
	}

	// Result summarizes a generated book source tree.
	Result struct {
		Dir     string
		Puzzles int
		Files   int
	}

	// entry is one puzzle link.
	entry struct {
		pid   string
		title string
	}

	writer struct {
		files int
		err   error
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

// Generate writes the companion book sources for every puzzle of store
// under outDir/src. The src/puzzles tree is rebuilt from scratch; the
// output depends only on the store contents.
func Generate(store *puzzle.Store, outDir string, opts ...Option) (*Result, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	src := filepath.Join(outDir, srcDir)
	out := filepath.Join(src, puzzlesDir)
	if err := os.RemoveAll(out); err != nil {
		return nil, fmt.Errorf("clear %s: %w", out, err)
	}

	w := &writer{}
	var (
		index        []entry
		byDifficulty = map[puzzle.Difficulty][]entry{}
		byCategory   = map[string][]entry{}
		byLibrary    = map[string][]entry{}
	)

	for p := range store.All() {
		e := entry{pid: "p" + p.ID().Padded(), title: p.Title()}
		index = append(index, e)
		byDifficulty[p.Difficulty()] = append(byDifficulty[p.Difficulty()], e)
		for _, c := range p.Categories() {
			byCategory[c] = append(byCategory[c], e)
		}
		for _, l := range p.Libraries() {
			byLibrary[l] = append(byLibrary[l], e)
		}

		dir := filepath.Join(out, e.pid)
		readme := p.Readme()
		w.write(filepath.Join(dir, puzzle.ReadmePath), readme.Bytes())
		for _, f := range p.ReadmeFiles() {
			w.write(filepath.Join(dir, filepath.FromSlash(f.Path())), f.Bytes())
		}
		page, err := renderPage(e, readme.Text())
		if err != nil {
			return nil, err
		}
		w.write(filepath.Join(dir, "index.html"), page)
		o.logger.Debug("wrote companion page", "puzzle", e.pid)
	}

	for _, page := range difficultyPages {
		var b strings.Builder
		b.WriteString(mustTemplate(page.file))
		for _, e := range byDifficulty[page.difficulty] {
			fmt.Fprintf(&b, "- %s\n", e.link("./puzzles/"))
		}
		w.write(filepath.Join(src, page.file), []byte(b.String()))
	}
	w.write(filepath.Join(src, "categories.md"), groupedPage("categories.md", byCategory))
	w.write(filepath.Join(src, "libraries.md"), groupedPage("libraries.md", byLibrary))
	w.write(filepath.Join(src, "introduction.md"), []byte(mustTemplate("introduction.md")))

	var list, summary strings.Builder
	list.WriteString("# Puzzle List\n\n")
	summary.WriteString(mustTemplate("SUMMARY.md"))
	summary.WriteString("\n- [Puzzle List](./puzzles/index.md)\n")
	for _, e := range index {
		fmt.Fprintf(&list, "- %s\n", e.link("./"))
		fmt.Fprintf(&summary, "   - [%s - %s](./puzzles/%s/README.md)\n", e.pid, e.title, e.pid)
	}
	w.write(filepath.Join(out, "index.md"), []byte(list.String()))
	w.write(filepath.Join(src, "SUMMARY.md"), []byte(summary.String()))

	if w.err != nil {
		return nil, w.err
	}
	o.logger.Info("generated companion sources", "dir", src, "puzzles", len(index), "files", w.files)
	return &Result{Dir: src, Puzzles: len(index), Files: w.files}, nil
}

// RenderHTML converts Markdown to an HTML fragment.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

func renderPage(e entry, readme string) ([]byte, error) {
	body, err := RenderHTML(readme)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = pageTemplate.ExecuteTemplate(&buf, "page.html", struct {
		Title string
		Body  template.HTML
	}{
		Title: e.pid + " - " + e.title,
		Body:  template.HTML(body), //nolint:gosec // goldmark output with raw HTML disabled
	})
	if err != nil {
		return nil, fmt.Errorf("render page %s: %w", e.pid, err)
	}
	return buf.Bytes(), nil
}

// groupedPage lists every group in name order, each followed by its
// puzzles in id order.
func groupedPage(name string, groups map[string][]entry) []byte {
	var b strings.Builder
	b.WriteString(mustTemplate(name))
	for _, group := range slices.Sorted(maps.Keys(groups)) {
		fmt.Fprintf(&b, "\n- %s\n", group)
		for _, e := range groups[group] {
			fmt.Fprintf(&b, "   - %s\n", e.link("./puzzles/"))
		}
	}
	return []byte(b.String())
}

func mustTemplate(name string) string {
	data, err := templates.ReadFile("templates/" + name)
	if err != nil {
		panic(fmt.Sprintf("companion template %s: %v", name, err))
	}
	return string(data)
}

func (e entry) link(prefix string) string {
	return fmt.Sprintf("[%s - %s](%s%s/index.html)", e.pid, e.title, prefix, e.pid)
}

// write stops writing after the first failure and keeps that error.
func (w *writer) write(path string, data []byte) {
	if w.err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.err = err
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		w.err = err
		return
	}
	w.files++
}
