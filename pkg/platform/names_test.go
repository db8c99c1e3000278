// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"testing"
)

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"CON lowercase", "con", true},
		{"CON mixed case", "Con", true},
		{"NUL", "nul", true},
		{"COM9", "com9", true},
		{"LPT1", "lpt1", true},

		// Reserved names with extensions
		{"CON.txt", "con.txt", true},
		{"AUX.tar.gz", "aux.tar.gz", true},

		{"normal file", "lib.rs", false},
		{"contains reserved", "console.rs", false},
		{"COM10", "com10", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsWindowsReservedName(tt.input); got != tt.expected {
				t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCheckPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"src/lib.rs", false},
		{"tests/answer.rs", false},
		{"Cargo.toml", false},
		{"src/con.rs", true},
		{"docs/what?.md", true},
		{"a:b/c.rs", true},
		{"src/trailing./x.rs", true},
		{"notes ", true},
		{"tab\there.rs", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			err := CheckPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrNotPortable) {
				t.Errorf("CheckPath(%q) error = %v, want ErrNotPortable", tt.path, err)
			}
		})
	}
}
