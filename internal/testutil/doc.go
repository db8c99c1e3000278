// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides environment and filesystem helpers (MustSetenv, MustChdir,
// MustWriteFile, SetHomeDir), it builds puzzle corpora on disk: WritePuzzle
// lays out one puzzle directory with its manifest, README and file trees.
package testutil
