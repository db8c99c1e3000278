// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"errors"
	"fmt"
)

const (
	ReasonMissing    TamperReason = "does not exist"
	ReasonModified   TamperReason = "does not match the original"
	ReasonUnreadable TamperReason = "cannot be read"
)

var (
	// ErrWorkspaceExists is returned instead of overwriting a workspace.
	ErrWorkspaceExists = errors.New("workspace already exists")
	// ErrWorkspaceMissing is returned when checking a puzzle that was never generated.
	ErrWorkspaceMissing = errors.New("workspace does not exist")
	// ErrTampered is wrapped by every TamperedFileError.
	ErrTampered = errors.New("read-only file was modified")
)

type (
	// TamperReason says what is wrong with a read-only file.
	TamperReason string

	// DirError ties a failure to the workspace directory it happened in.
	DirError struct {
		Dir string
		Err error
	}

	// TamperedFileError reports a read-only file that no longer matches
	// the puzzle. Path is relative to the workspace.
	TamperedFileError struct {
		Path   string
		Reason TamperReason
		Err    error
	}
)

func (e *DirError) Error() string {
	return fmt.Sprintf("workspace %q: %v", e.Dir, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

func (e *TamperedFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("file %s %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("file %s %s", e.Path, e.Reason)
}

func (e *TamperedFileError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrTampered, e.Err}
	}
	return []error{ErrTampered}
}
