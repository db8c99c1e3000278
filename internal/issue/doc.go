// SPDX-License-Identifier: MPL-2.0

// Package issue holds rukata's user-facing failure reporting: ActionableError
// for one-line errors with remediation hints, and a catalog of Markdown issue
// pages rendered with glamour for the failures a learner is likely to hit.
package issue
