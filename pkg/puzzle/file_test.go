// SPDX-License-Identifier: MPL-2.0

package puzzle

import (
	"bytes"
	"errors"
	"testing"
)

func TestContentFlavors(t *testing.T) {
	t.Parallel()

	raw := []byte{0x00, 0xff, 'a'}
	b := BytesContent(raw)
	raw[0] = 'x'

	if b.IsText() || b.Kind() != ContentBytes {
		t.Errorf("BytesContent kind = %v, want ContentBytes", b.Kind())
	}
	if !b.Equal([]byte{0x00, 0xff, 'a'}) {
		t.Errorf("BytesContent did not copy its input: %v", b.Bytes())
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}

	txt := TextContent("hello\n")
	if !txt.IsText() {
		t.Error("TextContent IsText() = false")
	}
	if got := txt.Text(); got != "hello\n" {
		t.Errorf("Text() = %q", got)
	}
	if got := string(txt.Bytes()); got != "hello\n" {
		t.Errorf("Bytes() on text content = %q", got)
	}
}

func TestTextOnByteContentPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("Text() on byte content did not panic")
		}
	}()
	f := NewFile("main.rs", BytesContent([]byte("fn main() {}")))
	_ = f.Text()
}

func TestFileWriteToAndDigest(t *testing.T) {
	t.Parallel()

	f := NewFile("src/lib.rs", BytesContent([]byte("pub fn f() {}")))
	var buf bytes.Buffer
	n, err := f.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(f.Len()) || buf.String() != "pub fn f() {}" {
		t.Errorf("WriteTo() wrote %d bytes %q", n, buf.String())
	}

	same := NewFile("other.rs", TextContent("pub fn f() {}"))
	if f.Digest() != same.Digest() {
		t.Error("Digest() differs for identical content")
	}
	if len(f.Digest().String()) != 64 || len(f.Digest().Short()) != 12 {
		t.Errorf("Digest() hex forms = %q / %q", f.Digest().String(), f.Digest().Short())
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{in: "7", want: 7},
		{in: "00007", want: 7},
		{in: " 42 ", want: 42},
		{in: "65535", want: 65535},
		{in: "65536", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "seven", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseID(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("ParseID(%q) error = %v, want ErrInvalidID", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseID(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
			}
		})
	}

	if got := ID(7).Padded(); got != "00007" {
		t.Errorf("Padded() = %q, want 00007", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{in: "basic", want: DifficultyBasic},
		{in: "Intermediate", want: DifficultyIntermediate},
		{in: "ADVANCED", want: DifficultyAdvanced},
		{in: "none", want: DifficultyNone},
		{in: "", want: DifficultyNone},
		{in: "expert", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDifficulty(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDifficulty) {
					t.Errorf("ParseDifficulty(%q) error = %v, want ErrInvalidDifficulty", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseDifficulty(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}

	if got := DifficultyIntermediate.Label(); got != "Intermediate" {
		t.Errorf("Label() = %q", got)
	}
}
