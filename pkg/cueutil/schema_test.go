// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

const testSchema = `
#Exercise: close({
	name:   string & !=""
	points: int & >=0
	draft:  bool | *false
	notes?: string
})
`

type exercise struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Draft  bool   `json:"draft"`
	Notes  string `json:"notes,omitempty"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	schema := MustCompileSchema(testSchema, "#Exercise")

	tests := []struct {
		name      string
		data      string
		opts      []Option
		want      exercise
		wantField string
		wantErr   bool
	}{
		{
			name: "CUE document",
			data: "name: \"sum\"\npoints: 3\nnotes: \"warm-up\"\n",
			want: exercise{Name: "sum", Points: 3, Notes: "warm-up"},
		},
		{
			name: "JSON document with default",
			data: `{"name": "sum", "points": 1}`,
			want: exercise{Name: "sum", Points: 1},
		},
		{
			name:      "wrong type names the field",
			data:      `{"name": "sum", "points": "many"}`,
			opts:      []Option{WithFilename("exercise.json")},
			wantField: "points",
			wantErr:   true,
		},
		{
			name:      "constraint violation",
			data:      `{"name": "sum", "points": -1}`,
			wantField: "points",
			wantErr:   true,
		},
		{
			name:    "missing required field",
			data:    `{"name": "sum"}`,
			wantErr: true,
		},
		{
			name:    "unknown field on closed definition",
			data:    `{"name": "sum", "points": 1, "bonus": 2}`,
			wantErr: true,
		},
		{
			name:    "size limit",
			data:    `{"name": "sum", "points": 1}`,
			opts:    []Option{WithMaxFileSize(8)},
			wantErr: true,
		},
		{
			name:    "syntax error",
			data:    `{"name": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode[exercise](schema, []byte(tt.data), tt.opts...)
			if tt.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("Decode() error = %v, want *ValidationError", err)
				}
				if tt.wantField != "" && ve.Field() != tt.wantField {
					t.Errorf("Field() = %q, want %q (err: %v)", ve.Field(), tt.wantField, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("Decode() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestDecodeErrorNamesFile(t *testing.T) {
	t.Parallel()

	schema := MustCompileSchema(testSchema, "#Exercise")
	_, err := Decode[exercise](schema, []byte(`{"name": 1, "points": 1}`), WithFilename("p00001/puzzle-config.json"))
	if err == nil || !strings.HasPrefix(err.Error(), "p00001/puzzle-config.json") {
		t.Errorf("Decode() error = %v, want it to start with the file name", err)
	}
}

func TestDecodeNotConcrete(t *testing.T) {
	t.Parallel()

	schema := MustCompileSchema(testSchema, "#Exercise")
	if _, err := Decode[exercise](schema, []byte(`{"name": "sum"}`), WithConcrete(false)); err != nil {
		t.Errorf("Decode(WithConcrete(false)) error = %v", err)
	}
}

func TestDecodeIntoMap(t *testing.T) {
	t.Parallel()

	schema := MustCompileSchema(testSchema, "#Exercise")
	got, err := Decode[map[string]any](schema, []byte(`{"name": "sum", "points": 2}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if (*got)["name"] != "sum" || (*got)["draft"] != false {
		t.Errorf("Decode() = %v", *got)
	}
}

func TestDecodeConcurrent(t *testing.T) {
	t.Parallel()

	schema := MustCompileSchema(testSchema, "#Exercise")
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Go(func() {
			if _, err := Decode[exercise](schema, []byte(`{"name": "sum", "points": 1}`)); err != nil {
				errs <- err
			}
		})
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Decode() error = %v", err)
	}
}

func TestCompileSchemaErrors(t *testing.T) {
	t.Parallel()

	if _, err := CompileSchema("#A: {", "#A"); err == nil {
		t.Error("CompileSchema() accepted a syntax error")
	}
	if _, err := CompileSchema(testSchema, "#Missing"); err == nil {
		t.Error("CompileSchema() accepted a missing definition")
	}
	if got := MustCompileSchema(testSchema, "#Exercise").Definition(); got != "#Exercise" {
		t.Errorf("Definition() = %q", got)
	}
}
