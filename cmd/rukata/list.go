// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rukata-org/rukata/pkg/puzzle"
)

type (
	// listEntry is one puzzle in the machine readable listing.
	listEntry struct {
		ID         uint16   `json:"id" yaml:"id" toml:"id"`
		Title      string   `json:"title" yaml:"title" toml:"title"`
		Difficulty string   `json:"difficulty" yaml:"difficulty" toml:"difficulty"`
		Categories []string `json:"categories" yaml:"categories" toml:"categories"`
		Libraries  []string `json:"libraries" yaml:"libraries" toml:"libraries"`
	}

	listDocument struct {
		Puzzles []listEntry `json:"puzzles" yaml:"puzzles" toml:"puzzles"`
	}

	listFilter struct {
		difficulty string
		category   string
		library    string
	}
)

var listFormats = []string{"text", "json", "yaml", "toml"}

func newListCommand(app *App) *cobra.Command {
	var (
		format string
		filter listFilter
	)
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the puzzles in the catalog",
		Example: "  rukata list\n  rukata list --difficulty basic --format json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(listFormats, format) {
				return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(listFormats, ", "))
			}
			var difficulty puzzle.Difficulty
			if filter.difficulty != "" {
				d, err := puzzle.ParseDifficulty(filter.difficulty)
				if err != nil {
					return err
				}
				difficulty = d
			}

			var entries []listEntry
			for _, id := range app.Store.IDs() {
				p, _ := app.Store.Lookup(id)
				if !filter.matches(p, difficulty) {
					continue
				}
				entries = append(entries, listEntry{
					ID:         uint16(p.ID()),
					Title:      p.Title(),
					Difficulty: p.Difficulty().String(),
					Categories: nonNil(p.Categories()),
					Libraries:  nonNil(p.Libraries()),
				})
			}
			return writeList(cmd.OutOrStdout(), format, entries)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: "+strings.Join(listFormats, ", "))
	cmd.Flags().StringVar(&filter.difficulty, "difficulty", "", "only puzzles of this difficulty")
	cmd.Flags().StringVar(&filter.category, "category", "", "only puzzles in this category")
	cmd.Flags().StringVar(&filter.library, "library", "", "only puzzles using this library")
	return cmd
}

func (f listFilter) matches(p *puzzle.Puzzle, difficulty puzzle.Difficulty) bool {
	if difficulty != "" && p.Difficulty() != difficulty {
		return false
	}
	if f.category != "" && !slices.Contains(p.Categories(), f.category) {
		return false
	}
	if f.library != "" && !slices.Contains(p.Libraries(), f.library) {
		return false
	}
	return true
}

func writeList(w io.Writer, format string, entries []listEntry) error {
	doc := listDocument{Puzzles: nonNil(entries)}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(doc)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No puzzles match."))
		return nil
	}
	for _, e := range entries {
		style := difficultyStyles[e.Difficulty]
		fmt.Fprintf(w, "%s  %-14s %s\n",
			CmdStyle.Render(puzzle.ID(e.ID).Padded()),
			style.Render(e.Difficulty),
			e.Title)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
