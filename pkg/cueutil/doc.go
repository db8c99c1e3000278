// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates puzzle manifests and user settings against
// embedded CUE schemas.
//
// A schema is compiled once, at package initialization, and every document
// goes through the same steps: compile the CUE or plain JSON input, unify
// it with the schema definition, validate and decode.
//
//	//go:embed puzzle_schema.cue
//	var src string
//
//	var schema = cueutil.MustCompileSchema(src, "#PuzzleConfig")
//
//	m, err := cueutil.Decode[Manifest](schema, data, cueutil.WithFilename(path))
//	if err != nil {
//	    return nil, err // *cueutil.ValidationError carries the field path
//	}
//
// Errors carry the file name and the JSON path of the offending field.
package cueutil
