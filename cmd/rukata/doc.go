// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the rukata command line: generating puzzle
// workspaces and solutions, checking a working copy, browsing the embedded
// catalog and managing settings.
package cmd
