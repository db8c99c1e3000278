// SPDX-License-Identifier: MPL-2.0

package puzzle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a string cannot be parsed as a puzzle ID.
var ErrInvalidID = errors.New("invalid puzzle id")

type (
	// ID is the numeric puzzle identifier, unique across the corpus.
	ID uint16

	// InvalidIDError is returned when a puzzle ID string is malformed or out
	// of range. It wraps ErrInvalidID for errors.Is() compatibility.
	InvalidIDError struct {
		Value string
	}
)

// ParseID parses a decimal puzzle ID. Leading zeros are accepted so that
// "00007" and "7" name the same puzzle.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, &InvalidIDError{Value: s}
	}
	return ID(n), nil
}

// String returns the decimal form of the ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Padded returns the ID zero-padded to five digits ("00007").
func (id ID) Padded() string {
	return fmt.Sprintf("%05d", uint16(id))
}

// Error implements the error interface.
func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid puzzle id %q (must be a number between 0 and 65535)", e.Value)
}

// Unwrap returns ErrInvalidID for errors.Is() compatibility.
func (e *InvalidIDError) Unwrap() error { return ErrInvalidID }
