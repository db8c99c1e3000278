// SPDX-License-Identifier: MPL-2.0

package puzzle

import (
	"encoding/hex"
	"io"

	"github.com/zeebo/blake3"
)

const (
	// ContentBytes holds raw file bytes (starter, solution and readme files).
	ContentBytes ContentKind = iota
	// ContentText holds synthesized text (the generated README.md).
	ContentText
)

// ReadmePath is the fixed relative path of the synthesized readme.
const ReadmePath = "README.md"

type (
	// ContentKind tags which flavor a Content value carries.
	ContentKind uint8

	// Content is immutable file content. Both flavors expose raw bytes;
	// only text content may be read as a string.
	Content struct {
		kind ContentKind
		data string
	}

	// File is one embedded file: a slash-separated path relative to the
	// puzzle workspace and its content.
	File struct {
		path    string
		content Content
	}

	// Digest is the BLAKE3-256 digest of a file's content.
	Digest [32]byte
)

// BytesContent returns byte-flavored content holding a copy of b.
func BytesContent(b []byte) Content {
	return Content{kind: ContentBytes, data: string(b)}
}

// TextContent returns text-flavored content.
func TextContent(s string) Content {
	return Content{kind: ContentText, data: s}
}

// Kind returns the content flavor.
func (c Content) Kind() ContentKind { return c.kind }

// IsText reports whether the content is text-flavored.
func (c Content) IsText() bool { return c.kind == ContentText }

// Len returns the content size in bytes.
func (c Content) Len() int { return len(c.data) }

// Bytes returns a copy of the raw content. Valid for both flavors.
func (c Content) Bytes() []byte { return []byte(c.data) }

// Text returns text content. Calling Text on byte content is a programming
// error and panics.
func (c Content) Text() string {
	if c.kind != ContentText {
		panic("puzzle: Text called on byte content")
	}
	return c.data
}

// Equal reports whether b holds exactly the same bytes as the content.
func (c Content) Equal(b []byte) bool {
	return len(b) == len(c.data) && string(b) == c.data
}

// WriteTo writes the content to w without copying it first.
func (c Content) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.data)
	return int64(n), err
}

// Digest returns the BLAKE3-256 digest of the content.
func (c Content) Digest() Digest {
	return blake3.Sum256([]byte(c.data))
}

// NewFile returns a File for the given slash-separated relative path.
func NewFile(path string, content Content) File {
	return File{path: path, content: content}
}

// Path returns the slash-separated path relative to the workspace root.
func (f File) Path() string { return f.path }

// Content returns the file content.
func (f File) Content() Content { return f.content }

// IsText reports whether the file carries text content.
func (f File) IsText() bool { return f.content.IsText() }

// Len returns the content size in bytes.
func (f File) Len() int { return f.content.Len() }

// Bytes returns a copy of the raw content.
func (f File) Bytes() []byte { return f.content.Bytes() }

// Text returns text content; it panics on byte content.
func (f File) Text() string { return f.content.Text() }

// Equal reports whether b matches the stored content byte for byte.
func (f File) Equal(b []byte) bool { return f.content.Equal(b) }

// WriteTo writes the content to w.
func (f File) WriteTo(w io.Writer) (int64, error) { return f.content.WriteTo(w) }

// Digest returns the BLAKE3-256 digest of the content.
func (f File) Digest() Digest { return f.content.Digest() }

// String returns the lowercase hex form of the digest.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Short returns the first 12 hex characters of the digest.
func (d Digest) Short() string { return d.String()[:12] }
