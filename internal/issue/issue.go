// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	CatalogUnavailableId Id = iota + 1
	PuzzleNotFoundId
	SettingsLoadFailedId
	InvalidPuzzleDirectoryId
	WorkspaceExistsId
	WorkspaceMissingId
	TamperedFilesId
	TestsFailedId
	TestCommandInvalidId
	PermissionDeniedId
	ManifestInvalidId
	DuplicatePuzzleId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // lookup key
	mdMsg    MarkdownMsg // rendered with glamour
	extLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the glamour style at
// stylePath ("" picks glamour's default, "notty" plain text).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	catalogUnavailableIssue = &Issue{
		id: CatalogUnavailableId,
		mdMsg: `
# The puzzle catalog is unavailable

This build of rukata carries no usable puzzle bundle.

## Things you can try
- Rebuild the catalog and the binary:
~~~
$ go generate ./internal/puzzledata
$ go build ./cmd/rukata
~~~
- Reinstall a released rukata binary`,
	}

	puzzleNotFoundIssue = &Issue{
		id: PuzzleNotFoundId,
		mdMsg: `
# Puzzle not found

No puzzle with that id ships with this build.

## Things you can try
- List the available puzzles:
~~~
$ rukata list
~~~
- Puzzle ids are plain numbers: ` + "`rukata generate 42`" + ` works, and so does ` + "`00042`",
	}

	settingsLoadFailedIssue = &Issue{
		id: SettingsLoadFailedId,
		mdMsg: `
# Could not load your settings

The settings file exists but could not be read or does not match the
expected shape.

## Things you can try
- Show where the file lives:
~~~
$ rukata settings --path
~~~
- Fix the JSON by hand (comments and trailing commas are accepted)
- Or store a fresh directory:
~~~
$ rukata settings --directory /absolute/path/to/puzzles
~~~`,
	}

	invalidPuzzleDirectoryIssue = &Issue{
		id: InvalidPuzzleDirectoryId,
		mdMsg: `
# The puzzle directory is not usable

rukata writes workspaces into a single directory that only it manages.

## Requirements
- The path must be absolute
- It must be a writable directory, or not exist yet
- It may only contain ` + "`working/`" + ` and ` + "`solution/`" + `

## Things you can try
- Pick an empty or new directory:
~~~
$ rukata settings --directory ~/rukata
~~~`,
	}

	workspaceExistsIssue = &Issue{
		id: WorkspaceExistsId,
		mdMsg: `
# That workspace already exists

rukata never overwrites your work in progress.

## Things you can try
- Keep going in the existing workspace and run ` + "`rukata check <id>`" + `
- Move or delete the folder yourself if you want a fresh start`,
	}

	workspaceMissingIssue = &Issue{
		id: WorkspaceMissingId,
		mdMsg: `
# No workspace for this puzzle

Checking needs a generated working copy.

## Things you can try
~~~
$ rukata generate <id>
~~~`,
	}

	tamperedFilesIssue = &Issue{
		id: TamperedFilesId,
		mdMsg: `
# Read-only puzzle files were modified

Some files in the workspace belong to the puzzle itself (usually the
tests and the crate manifest). They must match the originals for a check
to mean anything.

## Things you can try
- Restore the listed files from a fresh copy:
~~~
$ rukata generate <id> --dir /tmp/fresh
~~~
- Only edit the files the README asks you to change`,
	}

	testsFailedIssue = &Issue{
		id: TestsFailedId,
		mdMsg: `
# The puzzle tests did not pass

The test command ran and exited with a failure.

## Things you can try
- Read the test output above and fix your solution
- Peek at the reference solution:
~~~
$ rukata solution <id>
~~~`,
		extLinks: []HttpLink{"https://doc.rust-lang.org/cargo/commands/cargo-test.html"},
	}

	testCommandInvalidIssue = &Issue{
		id: TestCommandInvalidId,
		mdMsg: `
# The test command is not valid

The configured test command could not be parsed as a shell command line.

## Things you can try
- Reset it to the default:
~~~
$ rukata settings --test-command "cargo test"
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

rukata could not read or write a file it needs.

## Things you can try
- Check the ownership of the puzzle directory
- Choose a directory inside your home folder`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# A puzzle manifest is invalid

Every puzzle directory needs one ` + "`puzzle-config.json`" + ` or
` + "`puzzle-config.cue`" + ` with a title, an id, and the starter and
solution file lists.

## Things you can try
- Fix the field named in the error above
- Paths are relative to ` + "`starter/`" + `, ` + "`solution/`" + ` or the puzzle directory, with forward slashes`,
	}

	duplicatePuzzleIssue = &Issue{
		id: DuplicatePuzzleId,
		mdMsg: `
# Two puzzles share an id

Puzzle ids must be unique across the whole corpus.

## Things you can try
- Renumber one of the two manifests named above`,
	}

	issues = map[Id]*Issue{
		catalogUnavailableIssue.Id():     catalogUnavailableIssue,
		puzzleNotFoundIssue.Id():         puzzleNotFoundIssue,
		settingsLoadFailedIssue.Id():     settingsLoadFailedIssue,
		invalidPuzzleDirectoryIssue.Id(): invalidPuzzleDirectoryIssue,
		workspaceExistsIssue.Id():        workspaceExistsIssue,
		workspaceMissingIssue.Id():       workspaceMissingIssue,
		tamperedFilesIssue.Id():          tamperedFilesIssue,
		testsFailedIssue.Id():            testsFailedIssue,
		testCommandInvalidIssue.Id():     testCommandInvalidIssue,
		permissionDeniedIssue.Id():       permissionDeniedIssue,
		manifestInvalidIssue.Id():        manifestInvalidIssue,
		duplicatePuzzleIssue.Id():        duplicatePuzzleIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, id := range slices.Sorted(maps.Keys(issues)) {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
