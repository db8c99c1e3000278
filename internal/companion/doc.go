// SPDX-License-Identifier: MPL-2.0

// Package companion generates the sources of the rukata companion book from
// the puzzle catalog: one page per puzzle (Markdown plus goldmark-rendered
// HTML), lists by difficulty, category and library, and the book summary.
package companion
