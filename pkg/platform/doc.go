// SPDX-License-Identifier: MPL-2.0

// Package platform holds the portability rules for files rukata writes into
// a learner's workspace. A puzzle is compiled once and generated on every
// operating system, so its paths must be valid everywhere.
package platform
