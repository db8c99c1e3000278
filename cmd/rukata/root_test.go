// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rukata-org/rukata/internal/config"
	"github.com/rukata-org/rukata/internal/issue"
	"github.com/rukata-org/rukata/internal/testrunner"
	"github.com/rukata-org/rukata/internal/workspace"
	"github.com/rukata-org/rukata/pkg/puzzle"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	h := newHarness(t)
	h.app.Fingerprint = puzzle.Fingerprint([]byte("bundle"))

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := h.app.getVersionString()
		want := fmt.Sprintf("v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z, catalog: 2 puzzles %s)", h.app.Fingerprint.Short())
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })
		Version = "dev"

		got := h.app.getVersionString()
		if !strings.HasPrefix(got, "dev (built from source, catalog: 2 puzzles ") {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestVersionWithoutCatalog(t *testing.T) {
	t.Parallel()

	empty, err := puzzle.NewStore(nil)
	if err != nil {
		t.Fatal(err)
	}
	app := NewApp(Dependencies{Store: empty})
	if got := app.getVersionString(); !strings.Contains(got, "catalog: none") {
		t.Errorf("getVersionString() = %q", got)
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"unknown puzzle", &unknownPuzzleError{ID: 3}, issue.PuzzleNotFoundId},
		{"workspace exists", &workspace.DirError{Dir: "/x", Err: workspace.ErrWorkspaceExists}, issue.WorkspaceExistsId},
		{"tampered", &workspace.TamperedFileError{Path: "Cargo.toml", Reason: workspace.ReasonModified}, issue.TamperedFilesId},
		{"tests failed", issue.WrapWithOperation(&testrunner.FailedError{Command: "cargo test", Code: 101}, "check puzzle 1"), issue.TestsFailedId},
		{"directory", &config.DirectoryError{Dir: "rel", Problem: "is not an absolute path"}, issue.InvalidPuzzleDirectoryId},
		{"settings", fmt.Errorf("%w: bad", config.ErrInvalidSettings), issue.SettingsLoadFailedId},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := classifyError(tt.err)
			if !ok || got.Id() != tt.want {
				t.Errorf("classifyError() = %v, %v; want issue %d", got, ok, tt.want)
			}
		})
	}

	if _, ok := classifyError(errors.New("something else")); ok {
		t.Error("classifyError() matched an unrelated error")
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{&ExitError{Code: 3}, 3},
		{&testrunner.FailedError{Code: 101}, 101},
		{&testrunner.FailedError{Code: -1}, 1},
		{errors.New("plain"), 1},
	}
	for _, tt := range tests {
		if got := exitCodeFor(tt.err); got != tt.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestPrintError(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	err := h.run("generate", "42", "--dir", h.dir)
	if err == nil {
		t.Fatal("generate 42 succeeded")
	}

	var buf bytes.Buffer
	h.app.printError(&buf, err)
	out := buf.String()
	for _, want := range []string{"Error:", "Puzzle ID is not valid 42", "rukata list"} {
		if !strings.Contains(out, want) {
			t.Errorf("printError output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	h.app.printError(&buf, &ExitError{Code: 2})
	if buf.Len() != 0 {
		t.Errorf("bare ExitError printed %q", buf.String())
	}
}
