// SPDX-License-Identifier: MPL-2.0

// Package puzzle defines compiled puzzles and the frozen store that holds them.
//
// A Puzzle is built once by the asset compiler and never changes afterwards:
// every field is unexported and accessors hand out copies. The Store maps
// puzzle IDs to puzzles through a minimal perfect hash computed ahead of time
// over the statically known ID set, so a lookup is one seeded hash, one
// displacement and one comparison, without allocation.
//
// Stores travel between the compiler and the runtime as a deterministic CBOR
// bundle (see Encode and Decode). Decoding places puzzles straight into their
// precomputed slots; no index is rebuilt at program start.
//
// File set views:
//   - BaseFiles: starter files, README.md, then readme files (scaffolding)
//   - ReadOnlyFiles: starter files that the solution does not replace
//   - FinalFiles: README.md, readme files, read-only files, solution files
package puzzle
