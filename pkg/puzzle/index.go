// SPDX-License-Identifier: MPL-2.0

package puzzle

import (
	"errors"
	"slices"
)

// Minimal perfect hashing by hash-and-displace (CHD). Keys are split into
// buckets of about bucketLoad keys; each bucket gets a displacement pair
// (d1, d2) chosen so that every key in it lands on a free slot:
//
//	slot = (d2 + f1*d1 + f2) mod n
//
// The index is computed once by the compiler and serialized with the
// bundle. Lookups only evaluate hashID and the formula above.

const (
	bucketLoad      = 5
	maxSeedAttempts = 64
)

var errIndexExhausted = errors.New("puzzle: no perfect hash found for id set")

type (
	displacement struct {
		d1, d2 uint32
	}

	// index is the precomputed perfect hash over a fixed ID set. slots[i]
	// holds the position (in the caller's input order) of the ID placed in
	// slot i.
	index struct {
		seed  uint64
		disps []displacement
		slots []int
	}
)

func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

// hashID derives the bucket selector g and the two slot hashes f1, f2.
func hashID(id ID, seed uint64) (g, f1, f2 uint32) {
	h := splitmix64(uint64(id) ^ seed)
	return uint32(h >> 32), uint32(h), uint32(splitmix64(h) >> 32)
}

func slotFor(d displacement, f1, f2, n uint32) uint32 {
	return (d.d2 + f1*d.d1 + f2) % n
}

func bucketCount(n int) int {
	return (n + bucketLoad - 1) / bucketLoad
}

// buildIndex computes a minimal perfect hash for ids, which must be
// duplicate-free. The search is deterministic: the same ID set always
// yields the same index.
func buildIndex(ids []ID) (index, error) {
	if len(ids) == 0 {
		return index{}, nil
	}
	for attempt := range maxSeedAttempts {
		seed := splitmix64(uint64(attempt))
		if idx, ok := tryBuildIndex(ids, seed); ok {
			return idx, nil
		}
	}
	return index{}, errIndexExhausted
}

func tryBuildIndex(ids []ID, seed uint64) (index, bool) {
	type hashed struct {
		pos    int
		f1, f2 uint32
	}

	n := uint32(len(ids))
	buckets := make([][]hashed, bucketCount(len(ids)))
	for pos, id := range ids {
		g, f1, f2 := hashID(id, seed)
		b := g % uint32(len(buckets))
		buckets[b] = append(buckets[b], hashed{pos: pos, f1: f1, f2: f2})
	}

	// Place the fullest buckets first while the table is emptiest.
	order := make([]int, len(buckets))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return len(buckets[b]) - len(buckets[a])
	})

	slots := make([]int, n)
	for i := range slots {
		slots[i] = -1
	}
	disps := make([]displacement, len(buckets))
	tentative := make([]uint32, 0, bucketLoad*2)

	for _, b := range order {
		keys := buckets[b]
		if len(keys) == 0 {
			break
		}

		fits := func(d displacement) bool {
			tentative = tentative[:0]
			for _, k := range keys {
				slot := slotFor(d, k.f1, k.f2, n)
				if slots[slot] != -1 || slices.Contains(tentative, slot) {
					return false
				}
				tentative = append(tentative, slot)
			}
			return true
		}

		placed := false
	search:
		for d1 := range n {
			for d2 := range n {
				d := displacement{d1: d1, d2: d2}
				if !fits(d) {
					continue
				}
				for i, k := range keys {
					slots[tentative[i]] = k.pos
				}
				disps[b] = d
				placed = true
				break search
			}
		}
		if !placed {
			return index{}, false
		}
	}

	return index{seed: seed, disps: disps, slots: slots}, true
}
