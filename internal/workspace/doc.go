// SPDX-License-Identifier: MPL-2.0

// Package workspace materializes puzzles on disk. A rukata directory holds a
// working/ tree of learner copies and a solution/ tree of reference
// solutions, one "pNNNNN - Title" folder per puzzle in each.
package workspace
