// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Schema is an embedded CUE schema compiled once and reused for every
// document. A cue.Context is not safe for concurrent use, so Decode calls
// on one Schema are serialized.
type Schema struct {
	mu         sync.Mutex
	ctx        *cue.Context
	root       cue.Value
	definition string
}

// CompileSchema compiles src and selects the definition documents are
// unified with ("#PuzzleConfig").
func CompileSchema(src, definition string) (*Schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	root := v.LookupPath(cue.ParsePath(definition))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("schema definition %s: %w", definition, err)
	}
	return &Schema{ctx: ctx, root: root, definition: definition}, nil
}

// MustCompileSchema is CompileSchema for embedded schemas, where a compile
// error is a build defect.
func MustCompileSchema(src, definition string) *Schema {
	s, err := CompileSchema(src, definition)
	if err != nil {
		panic("cueutil: " + err.Error())
	}
	return s
}

// Definition returns the definition documents are unified with.
func (s *Schema) Definition() string {
	return s.definition
}

// Decode compiles data (CUE, or JSON which is a subset of CUE), unifies it
// with the schema, validates it and decodes it into a T. Failures are
// returned as *ValidationError.
func Decode[T any](s *Schema, data []byte, opts ...Option) (*T, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}
	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.ctx.CompileBytes(data, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, FormatError(err, filename)
	}
	unified := s.root.Unify(doc)
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}
	return &out, nil
}
