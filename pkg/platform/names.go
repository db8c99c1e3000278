// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotPortable is wrapped by NameError.
var ErrNotPortable = errors.New("name is not portable")

// reservedNames cannot be used as a file or directory name on Windows,
// with or without an extension.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// forbiddenChars are rejected by at least one supported file system.
const forbiddenChars = `<>:"|?*`

// NameError reports a path element that some OS cannot create.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%q %s", e.Name, e.Reason)
}

func (e *NameError) Unwrap() error { return ErrNotPortable }

// IsWindowsReservedName reports whether name, ignoring its extension, is a
// Windows device name.
func IsWindowsReservedName(name string) bool {
	upper := strings.ToUpper(name)
	if idx := strings.IndexByte(upper, '.'); idx != -1 {
		upper = upper[:idx]
	}
	return reservedNames[upper]
}

// CheckName validates one path element.
func CheckName(name string) error {
	switch {
	case IsWindowsReservedName(name):
		return &NameError{Name: name, Reason: "is a reserved device name on Windows"}
	case strings.ContainsAny(name, forbiddenChars):
		return &NameError{Name: name, Reason: "contains one of " + forbiddenChars}
	case strings.IndexFunc(name, func(r rune) bool { return r < 0x20 }) != -1:
		return &NameError{Name: name, Reason: "contains a control character"}
	case strings.HasSuffix(name, ".") || strings.HasSuffix(name, " "):
		return &NameError{Name: name, Reason: "ends with a dot or space"}
	}
	return nil
}

// CheckPath validates every element of a slash-separated relative path.
func CheckPath(p string) error {
	for elem := range strings.SplitSeq(p, "/") {
		if err := CheckName(elem); err != nil {
			return err
		}
	}
	return nil
}
