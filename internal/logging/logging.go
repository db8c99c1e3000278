// SPDX-License-Identifier: MPL-2.0

// Package logging builds the slog loggers used by the rukata binaries. Records
// are rendered by charmbracelet/log so that terminal output matches the rest
// of the CLI styling.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// Format selects the record encoding.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
)

// Options configures New.
type Options struct {
	// Prefix is printed before every message ("puzzlec").
	Prefix string
	// Verbose enables debug records.
	Verbose bool
	// Format defaults to FormatText.
	Format Format
	// Timestamps adds the time to every record.
	Timestamps bool
}

// New returns a slog.Logger writing to w through a charm log handler.
func New(w io.Writer, opts Options) *slog.Logger {
	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}

	formatter := log.TextFormatter
	switch opts.Format {
	case FormatJSON:
		formatter = log.JSONFormatter
	case FormatLogfmt:
		formatter = log.LogfmtFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix:          opts.Prefix,
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.Timestamps,
	})
	return slog.New(handler)
}

// ParseFormat parses a --log-format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatLogfmt:
		return f, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want text, json or logfmt)", s)
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
