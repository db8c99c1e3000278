// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io/fs"

	"github.com/rukata-org/rukata/internal/config"
	"github.com/rukata-org/rukata/internal/issue"
	"github.com/rukata-org/rukata/internal/testrunner"
	"github.com/rukata-org/rukata/internal/workspace"
)

// errPuzzleNotFound is wrapped when an id is missing from the catalog.
var errPuzzleNotFound = errors.New("puzzle not found")

// classifiers map error sentinels to issue pages, most specific first.
var classifiers = []struct {
	target error
	id     issue.Id
}{
	{errPuzzleNotFound, issue.PuzzleNotFoundId},
	{workspace.ErrWorkspaceExists, issue.WorkspaceExistsId},
	{workspace.ErrWorkspaceMissing, issue.WorkspaceMissingId},
	{workspace.ErrTampered, issue.TamperedFilesId},
	{testrunner.ErrTestsFailed, issue.TestsFailedId},
	{testrunner.ErrInvalidCommand, issue.TestCommandInvalidId},
	{config.ErrInvalidDirectory, issue.InvalidPuzzleDirectoryId},
	{config.ErrInvalidSettings, issue.SettingsLoadFailedId},
	{fs.ErrPermission, issue.PermissionDeniedId},
}

// classifyError returns the issue page explaining err, if any.
func classifyError(err error) (*issue.Issue, bool) {
	for _, c := range classifiers {
		if errors.Is(err, c.target) {
			return issue.Get(c.id), true
		}
	}
	return nil, false
}

// exitCodeFor maps err to the process exit status: the test command's own
// status for failed tests, 1 otherwise.
func exitCodeFor(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var failed *testrunner.FailedError
	if errors.As(err, &failed) && failed.Code > 0 {
		return failed.Code
	}
	return 1
}
