// SPDX-License-Identifier: MPL-2.0

// Package puzzleconfig parses puzzle manifests (puzzle-config.json or
// puzzle-config.cue).
//
// Manifests are unified with an embedded CUE schema for field presence and
// types, then checked in Go for path rules that need more than a pattern:
// canonical relative paths, no duplicates, and no collisions between the
// documentation files and the starter or solution trees.
//
// A puzzle directory looks like:
//
//	p00007-sum-two/
//	├── puzzle-config.json
//	├── README.md
//	├── starter/...
//	└── solution/...
package puzzleconfig
