// SPDX-License-Identifier: MPL-2.0

// Package puzzledata exposes the puzzle catalog compiled into the binary.
//
// The bundle under catalog/ is produced by cmd/puzzlec from the puzzles/
// corpus. It is decoded once, on first use, into a frozen store; every
// later call returns that same store.
package puzzledata

import (
	"embed"
	"errors"
	"io/fs"
	"sync"

	"github.com/rukata-org/rukata/pkg/puzzle"
)

//go:generate go run ../../cmd/puzzlec --puzzles ../../puzzles --out catalog/puzzles.cbor

// BundlePath is the bundle location inside the embedded catalog.
const BundlePath = "catalog/puzzles.cbor"

var (
	//go:embed all:catalog
	catalogFS embed.FS

	loadOnce sync.Once
	store    *puzzle.Store
	raw      []byte
)

// Default returns the embedded store. A binary built without a bundle gets
// an empty store; a bundle that fails to decode is a build defect and
// panics.
func Default() *puzzle.Store {
	loadOnce.Do(func() {
		store, raw = mustLoad(catalogFS, BundlePath)
	})
	return store
}

// Lookup returns the embedded puzzle with the given ID.
func Lookup(id puzzle.ID) (*puzzle.Puzzle, bool) {
	return Default().Lookup(id)
}

// IDs returns every embedded puzzle ID in ascending order.
func IDs() []puzzle.ID {
	return Default().IDs()
}

// Available reports whether a compiled bundle was embedded.
func Available() bool {
	Default()
	return raw != nil
}

// Fingerprint returns the BLAKE3 digest of the embedded bundle, or the zero
// digest when none was embedded.
func Fingerprint() puzzle.Digest {
	Default()
	if raw == nil {
		return puzzle.Digest{}
	}
	return puzzle.Fingerprint(raw)
}

func mustLoad(fsys fs.FS, name string) (*puzzle.Store, []byte) {
	s, data, err := load(fsys, name)
	if err != nil {
		panic("puzzledata: embedded catalog is corrupt, rerun go generate ./...: " + err.Error())
	}
	return s, data
}

func load(fsys fs.FS, name string) (*puzzle.Store, []byte, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		empty, _ := puzzle.NewStore(nil)
		return empty, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	s, err := puzzle.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	return s, data, nil
}
