// SPDX-License-Identifier: MPL-2.0

package puzzle

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// bundleFormat is the wire format version written by Encode.
const bundleFormat = 1

var (
	// ErrInvalidBundle is returned when a bundle cannot be decoded into a
	// consistent store.
	ErrInvalidBundle = errors.New("invalid puzzle bundle")

	encMode cbor.EncMode
	decMode cbor.DecMode
)

type (
	// DecodeOption configures Decode.
	DecodeOption func(*decodeOptions)

	decodeOptions struct {
		digest *Digest
	}

	// BundleError describes why a bundle was rejected. It wraps
	// ErrInvalidBundle for errors.Is() compatibility.
	BundleError struct {
		Reason string
		Err    error
	}

	wireBundle struct {
		Format  uint         `cbor:"format"`
		Seed    uint64       `cbor:"seed"`
		Disps   [][2]uint32  `cbor:"disps"`
		IDs     []uint16     `cbor:"ids"`
		Puzzles []wirePuzzle `cbor:"puzzles"`
	}

	wirePuzzle struct {
		Title       string     `cbor:"title"`
		ID          uint16     `cbor:"id"`
		Starter     []wireFile `cbor:"starter"`
		Solution    []wireFile `cbor:"solution"`
		Readme      wireFile   `cbor:"readme"`
		ReadmeFiles []wireFile `cbor:"readme_files"`
		ReadOnly    []string   `cbor:"read_only"`
		Difficulty  string     `cbor:"difficulty"`
		Categories  []string   `cbor:"categories"`
		Libraries   []string   `cbor:"libraries"`
	}

	wireFile struct {
		_    struct{} `cbor:",toarray"`
		Path string
		Text bool
		Data []byte
	}
)

func init() {
	var err error

	// Core Deterministic Encoding: the same store always yields the same
	// bytes, which keeps the embedded bundle stable across rebuilds.
	encOptions := cbor.CoreDetEncOptions()
	encOptions.NilContainers = cbor.NilContainerAsEmpty
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("puzzle: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("puzzle: CBOR decoder initialization failed: " + err.Error())
	}
}

// VerifyDigest makes Decode reject a bundle whose Fingerprint differs from
// want.
func VerifyDigest(want Digest) DecodeOption {
	return func(o *decodeOptions) { o.digest = &want }
}

// Fingerprint returns the BLAKE3-256 digest of an encoded bundle.
func Fingerprint(data []byte) Digest {
	return blake3.Sum256(data)
}

// Encode serializes the store and its precomputed index. Equal stores
// always encode to identical bytes.
func Encode(s *Store) ([]byte, error) {
	w := wireBundle{
		Format:  bundleFormat,
		Seed:    s.seed,
		Disps:   make([][2]uint32, len(s.disps)),
		IDs:     make([]uint16, len(s.ids)),
		Puzzles: make([]wirePuzzle, len(s.slots)),
	}
	for i, d := range s.disps {
		w.Disps[i] = [2]uint32{d.d1, d.d2}
	}
	for i, id := range s.ids {
		w.IDs[i] = uint16(id)
	}
	for i, p := range s.slots {
		w.Puzzles[i] = toWire(p.definition())
	}

	data, err := encMode.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode puzzle bundle: %w", err)
	}
	return data, nil
}

// Decode loads a bundle produced by Encode into a frozen store. The index
// is taken from the bundle as-is; Decode only checks that every puzzle sits
// in the slot its ID hashes to.
func Decode(data []byte, opts ...DecodeOption) (*Store, error) {
	var options decodeOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.digest != nil {
		if got := Fingerprint(data); got != *options.digest {
			return nil, &BundleError{Reason: fmt.Sprintf("fingerprint mismatch: got %s, want %s", got.Short(), options.digest.Short())}
		}
	}

	var w wireBundle
	if err := decMode.Unmarshal(data, &w); err != nil {
		return nil, &BundleError{Reason: "malformed CBOR", Err: err}
	}
	if w.Format != bundleFormat {
		return nil, &BundleError{Reason: fmt.Sprintf("unsupported bundle format %d", w.Format)}
	}
	if len(w.IDs) != len(w.Puzzles) {
		return nil, &BundleError{Reason: fmt.Sprintf("%d ids but %d puzzles", len(w.IDs), len(w.Puzzles))}
	}
	if len(w.Puzzles) > 0 && len(w.Disps) != bucketCount(len(w.Puzzles)) {
		return nil, &BundleError{Reason: fmt.Sprintf("%d displacements for %d puzzles", len(w.Disps), len(w.Puzzles))}
	}

	s := &Store{
		seed:  w.Seed,
		disps: make([]displacement, len(w.Disps)),
		slots: make([]*Puzzle, len(w.Puzzles)),
		ids:   make([]ID, len(w.IDs)),
	}
	for i, d := range w.Disps {
		s.disps[i] = displacement{d1: d[0], d2: d[1]}
	}
	for i, id := range w.IDs {
		if i > 0 && w.IDs[i-1] >= id {
			return nil, &BundleError{Reason: "ids are not strictly ascending"}
		}
		s.ids[i] = ID(id)
	}
	for i, wp := range w.Puzzles {
		p, err := New(fromWire(wp))
		if err != nil {
			return nil, &BundleError{Reason: "invalid puzzle", Err: err}
		}
		s.slots[i] = p
	}

	for _, id := range s.ids {
		if _, ok := s.Lookup(id); !ok {
			return nil, &BundleError{Reason: fmt.Sprintf("puzzle %s is not reachable through the index", id.Padded())}
		}
	}
	return s, nil
}

func toWire(def Definition) wirePuzzle {
	return wirePuzzle{
		Title:       def.Title,
		ID:          uint16(def.ID),
		Starter:     toWireFiles(def.Starter),
		Solution:    toWireFiles(def.Solution),
		Readme:      toWireFile(def.Readme),
		ReadmeFiles: toWireFiles(def.ReadmeFiles),
		ReadOnly:    def.ReadOnlyPaths,
		Difficulty:  string(def.Difficulty),
		Categories:  def.Categories,
		Libraries:   def.Libraries,
	}
}

func fromWire(w wirePuzzle) Definition {
	return Definition{
		Title:         w.Title,
		ID:            ID(w.ID),
		Starter:       fromWireFiles(w.Starter),
		Solution:      fromWireFiles(w.Solution),
		Readme:        fromWireFile(w.Readme),
		ReadmeFiles:   fromWireFiles(w.ReadmeFiles),
		ReadOnlyPaths: w.ReadOnly,
		Difficulty:    Difficulty(w.Difficulty),
		Categories:    w.Categories,
		Libraries:     w.Libraries,
	}
}

func toWireFile(f File) wireFile {
	return wireFile{Path: f.path, Text: f.content.IsText(), Data: []byte(f.content.data)}
}

func fromWireFile(w wireFile) File {
	if w.Text {
		return NewFile(w.Path, TextContent(string(w.Data)))
	}
	return NewFile(w.Path, BytesContent(w.Data))
}

func toWireFiles(files []File) []wireFile {
	out := make([]wireFile, len(files))
	for i, f := range files {
		out[i] = toWireFile(f)
	}
	return out
}

func fromWireFiles(files []wireFile) []File {
	out := make([]File, len(files))
	for i, f := range files {
		out[i] = fromWireFile(f)
	}
	return out
}

// Error implements the error interface.
func (e *BundleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid puzzle bundle: %s: %v", e.Reason, e.Err)
	}
	return "invalid puzzle bundle: " + e.Reason
}

// Unwrap returns both ErrInvalidBundle and the underlying cause.
func (e *BundleError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidBundle, e.Err}
	}
	return []error{ErrInvalidBundle}
}
