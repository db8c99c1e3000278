// SPDX-License-Identifier: MPL-2.0

package puzzle

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrDuplicateID is returned by NewStore when two puzzles share an ID.
var ErrDuplicateID = errors.New("duplicate puzzle id")

type (
	// Store is the frozen, ID-addressable collection of compiled puzzles.
	// It is never mutated after construction and is safe for concurrent use
	// without locking.
	Store struct {
		seed  uint64
		disps []displacement
		// slots holds the puzzles in perfect-hash slot order.
		slots []*Puzzle
		// ids is the ascending ID list, precomputed at construction.
		ids []ID
	}

	// DuplicateIDError is returned by NewStore when the same ID occurs
	// twice. It wraps ErrDuplicateID for errors.Is() compatibility.
	DuplicateIDError struct {
		ID ID
	}
)

// NewStore builds a store over puzzles, computing the perfect-hash index.
// The input order does not affect lookups or the encoded bundle.
func NewStore(puzzles []*Puzzle) (*Store, error) {
	sorted := slices.Clone(puzzles)
	slices.SortFunc(sorted, func(a, b *Puzzle) int { return int(a.id) - int(b.id) })

	ids := make([]ID, len(sorted))
	for i, p := range sorted {
		if i > 0 && sorted[i-1].id == p.id {
			return nil, &DuplicateIDError{ID: p.id}
		}
		ids[i] = p.id
	}

	idx, err := buildIndex(ids)
	if err != nil {
		return nil, err
	}

	slots := make([]*Puzzle, len(idx.slots))
	for slot, pos := range idx.slots {
		slots[slot] = sorted[pos]
	}

	return &Store{seed: idx.seed, disps: idx.disps, slots: slots, ids: ids}, nil
}

// Lookup returns the puzzle with the given ID. It never allocates.
func (s *Store) Lookup(id ID) (*Puzzle, bool) {
	if s == nil || len(s.slots) == 0 {
		return nil, false
	}
	g, f1, f2 := hashID(id, s.seed)
	d := s.disps[g%uint32(len(s.disps))]
	p := s.slots[slotFor(d, f1, f2, uint32(len(s.slots)))]
	if p.id != id {
		return nil, false
	}
	return p, true
}

// IDs returns every ID in ascending order.
func (s *Store) IDs() []ID {
	if s == nil {
		return nil
	}
	return slices.Clone(s.ids)
}

// Len returns the number of puzzles.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// All yields every puzzle in ascending ID order.
func (s *Store) All() iter.Seq[*Puzzle] {
	return func(yield func(*Puzzle) bool) {
		if s == nil {
			return
		}
		for _, id := range s.ids {
			p, _ := s.Lookup(id)
			if !yield(p) {
				return
			}
		}
	}
}

// Error implements the error interface.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("puzzle id %d is declared more than once", e.ID)
}

// Unwrap returns ErrDuplicateID for errors.Is() compatibility.
func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }
