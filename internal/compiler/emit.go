// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rukata-org/rukata/pkg/puzzle"
)

// EmitResult describes a written bundle.
type EmitResult struct {
	Path        string
	Size        int
	Fingerprint puzzle.Digest
}

// Emit encodes store and writes the bundle to out, replacing any previous
// bundle atomically. The written bytes are decoded and re-encoded before
// the rename; a bundle that does not round-trip byte for byte is never
// installed.
func Emit(store *puzzle.Store, out string) (*EmitResult, error) {
	data, err := puzzle.Encode(store)
	if err != nil {
		return nil, err
	}
	fingerprint := puzzle.Fingerprint(data)

	decoded, err := puzzle.Decode(data, puzzle.VerifyDigest(fingerprint))
	if err != nil {
		return nil, fmt.Errorf("verify encoded bundle: %w", err)
	}
	again, err := puzzle.Encode(decoded)
	if err != nil {
		return nil, fmt.Errorf("verify encoded bundle: %w", err)
	}
	if !bytes.Equal(data, again) {
		return nil, fmt.Errorf("verify encoded bundle: %w", errNotRoundTrip)
	}

	if err := writeAtomic(out, data); err != nil {
		return nil, err
	}
	return &EmitResult{Path: out, Size: len(data), Fingerprint: fingerprint}, nil
}

// writeAtomic writes data next to path and renames it into place so readers
// never observe a partial bundle.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "create bundle directory", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".puzzles-*.tmp")
	if err != nil {
		return &IOError{Op: "create bundle", Path: path, Err: err}
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &IOError{Op: "write bundle", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "write bundle", Path: path, Err: err}
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return &IOError{Op: "write bundle", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &IOError{Op: "install bundle", Path: path, Err: err}
	}
	renamed = true
	return nil
}
