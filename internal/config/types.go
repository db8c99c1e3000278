// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// VersionV1 is the only settings format.
	VersionV1 Version = "V1"

	// DefaultTestCommand runs the Rust test suite of a workspace.
	DefaultTestCommand = "cargo test"
)

var (
	// ErrInvalidDirectory is wrapped by every DirectoryError.
	ErrInvalidDirectory = errors.New("invalid rukata directory")
	// ErrInvalidSettings is returned when a settings file cannot be used.
	ErrInvalidSettings = errors.New("invalid settings")
)

type (
	// Version tags the settings file format.
	Version string

	// Settings is the persisted user configuration.
	Settings struct {
		Version Version `json:"version" mapstructure:"version"`
		// Directory is where workspaces are generated. Empty until configured.
		Directory string `json:"directory" mapstructure:"directory"`
		// TestCommand is the shell command `check` runs in a workspace.
		TestCommand string `json:"test_command" mapstructure:"test_command"`
	}

	// DirectoryError is one problem found by ValidateDirectory.
	DirectoryError struct {
		Dir     string
		Problem string
		Err     error
	}
)

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Version:     VersionV1,
		TestCommand: DefaultTestCommand,
	}
}

// HasDirectory reports whether a workspace directory has been configured.
func (s *Settings) HasDirectory() bool {
	return s != nil && s.Directory != ""
}

func (e *DirectoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rukata directory %q %s: %v", e.Dir, e.Problem, e.Err)
	}
	return fmt.Sprintf("rukata directory %q %s", e.Dir, e.Problem)
}

func (e *DirectoryError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidDirectory, e.Err}
	}
	return []error{ErrInvalidDirectory}
}
