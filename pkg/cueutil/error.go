// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// ValidationError represents a CUE validation error with context.
type ValidationError struct {
	// FilePath is the file being validated.
	FilePath string

	// CUEPath is the JSON path of the first invalid value (e.g., "starter[0]").
	// Empty when the error is not tied to a field (syntax errors).
	CUEPath string

	// Message is the validation error message. Multiple CUE errors are
	// joined one per line.
	Message string

	// Cause is the underlying CUE error.
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.CUEPath != "" && !strings.Contains(e.Message, "\n") {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.CUEPath, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// Unwrap returns the underlying CUE error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Field returns the top-level field name of CUEPath ("starter" for
// "starter[0]"), or "" when no path is known.
func (e *ValidationError) Field() string {
	field := e.CUEPath
	if i := strings.IndexAny(field, ".["); i >= 0 {
		field = field[:i]
	}
	return field
}

// FormatError converts a CUE error into a *ValidationError with JSON path
// prefixes for clear error messages.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - puzzle-config.json: id: invalid value 70000 (out of bound <=65535)
//   - settings.json: version: conflicting values "V1" and "V2"
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return &ValidationError{FilePath: filePath, Message: err.Error(), Cause: err}
	}

	var (
		lines     []string
		firstPath string
	)
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes includes the path in the message itself
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		if firstPath == "" {
			firstPath = pathStr
		}
		if pathStr != "" && len(cueErrors) > 1 {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	message := lines[0]
	if len(lines) > 1 {
		message = "validation failed:\n  " + strings.Join(lines, "\n  ")
	}

	return &ValidationError{
		FilePath: filePath,
		CUEPath:  firstPath,
		Message:  message,
		Cause:    err,
	}
}

// formatPath converts a CUE error path to JSON-path notation for user-facing
// messages: ["starter", "0"] becomes "starter[0]". A leading schema
// definition ("#PuzzleConfig") is dropped.
func formatPath(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}

// CheckFileSize verifies that data does not exceed the specified maximum size.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return &ValidationError{
			FilePath: filename,
			Message:  fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", len(data), maxSize),
		}
	}
	return nil
}
