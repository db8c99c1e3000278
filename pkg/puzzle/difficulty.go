// SPDX-License-Identifier: MPL-2.0

package puzzle

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DifficultyNone marks a puzzle without a difficulty tier. It is the
	// default when a manifest omits the field.
	DifficultyNone Difficulty = "none"
	// DifficultyBasic is the entry tier.
	DifficultyBasic Difficulty = "basic"
	// DifficultyIntermediate is the middle tier.
	DifficultyIntermediate Difficulty = "intermediate"
	// DifficultyAdvanced is the hardest tier.
	DifficultyAdvanced Difficulty = "advanced"
)

// ErrInvalidDifficulty is returned when a Difficulty value is not recognized.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

type (
	// Difficulty is the puzzle difficulty tier.
	Difficulty string

	// InvalidDifficultyError is returned when a Difficulty value is not recognized.
	// It wraps ErrInvalidDifficulty for errors.Is() compatibility.
	InvalidDifficultyError struct {
		Value string
	}
)

// Difficulties returns every tier in ascending order, None last.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced, DifficultyNone}
}

// ParseDifficulty parses a difficulty token case-insensitively. The empty
// string maps to DifficultyNone.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return DifficultyNone, nil
	}
	if !d.IsValid() {
		return "", &InvalidDifficultyError{Value: s}
	}
	return d, nil
}

// IsValid reports whether d is one of the known tiers.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyNone, DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// String returns the lowercase token.
func (d Difficulty) String() string { return string(d) }

// Label returns the capitalized display form ("Basic").
func (d Difficulty) Label() string {
	if d == "" {
		return "None"
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Error implements the error interface.
func (e *InvalidDifficultyError) Error() string {
	return fmt.Sprintf("invalid difficulty %q (valid: basic, intermediate, advanced, none)", e.Value)
}

// Unwrap returns ErrInvalidDifficulty for errors.Is() compatibility.
func (e *InvalidDifficultyError) Unwrap() error { return ErrInvalidDifficulty }
