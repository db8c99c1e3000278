// SPDX-License-Identifier: MPL-2.0

// puzzlec compiles the puzzle corpus into the CBOR bundle embedded by
// internal/puzzledata.
//
// Usage:
//
//	puzzlec [--puzzles DIR] [--out FILE] [--verbose] [--log-format text|json|logfmt]
//	puzzlec --watch
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/rukata-org/rukata/internal/compiler"
	"github.com/rukata-org/rukata/internal/logging"
	"github.com/rukata-org/rukata/internal/watch"
)

const (
	defaultPuzzles = "puzzles"
	defaultOut     = "internal/puzzledata/catalog/puzzles.cbor"
)

type options struct {
	puzzles   string
	out       string
	watch     bool
	verbose   bool
	logFormat string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process exit, returning the exit status.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	var opts options
	fs := pflag.NewFlagSet("puzzlec", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.puzzles, "puzzles", defaultPuzzles, "puzzle corpus directory")
	fs.StringVarP(&opts.out, "out", "o", defaultOut, "bundle file to write")
	fs.BoolVarP(&opts.watch, "watch", "w", false, "recompile whenever the corpus changes")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log every compiled puzzle")
	fs.StringVar(&opts.logFormat, "log-format", "text", "log format: text, json or logfmt")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "puzzlec: unexpected arguments %v\n", fs.Args())
		return 2
	}

	format, err := logging.ParseFormat(opts.logFormat)
	if err != nil {
		fmt.Fprintf(stderr, "puzzlec: %v\n", err)
		return 2
	}
	logger := logging.New(stderr, logging.Options{Prefix: "puzzlec", Verbose: opts.verbose, Format: format})

	if err := build(ctx, opts, logger); err != nil {
		logger.Error("compile failed", "err", err)
		if !opts.watch {
			return 1
		}
	}
	if !opts.watch {
		return 0
	}

	if err := watchCorpus(ctx, opts, logger); err != nil {
		logger.Error("watch stopped", "err", err)
		return 1
	}
	return 0
}

func build(ctx context.Context, opts options, logger *slog.Logger) error {
	store, err := compiler.Compile(ctx, opts.puzzles, compiler.WithLogger(logger))
	if err != nil {
		return err
	}
	res, err := compiler.Emit(store, opts.out)
	if err != nil {
		return err
	}
	logger.Info("wrote bundle",
		"path", res.Path,
		"puzzles", store.Len(),
		"bytes", res.Size,
		"fingerprint", res.Fingerprint.Short())
	return nil
}

// watchCorpus rebuilds on every quiet period until ctx ends. A failed
// rebuild keeps the previous bundle.
func watchCorpus(ctx context.Context, opts options, logger *slog.Logger) error {
	w, err := watch.New(watch.Config{
		Root:   opts.puzzles,
		Logger: logger,
		OnChange: func(ctx context.Context, changed []string) error {
			logger.Info("corpus changed, recompiling", "files", len(changed))
			return build(ctx, opts, logger)
		},
	})
	if err != nil {
		return err
	}
	logger.Info("watching for changes", "root", opts.puzzles)
	return w.Run(ctx)
}
