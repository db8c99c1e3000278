// SPDX-License-Identifier: MPL-2.0

// Package compiler turns a puzzle corpus on disk into a frozen puzzle store
// and writes it out as the bundle embedded by internal/puzzledata.
//
// The pass is synchronous and all-or-nothing: manifests are visited in
// sorted path order, and the first manifest, file, duplicate-id or I/O
// error aborts it.
package compiler
