// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/rukata-org/rukata/internal/config"
	"github.com/rukata-org/rukata/internal/puzzledata"
	"github.com/rukata-org/rukata/internal/testrunner"
	"github.com/rukata-org/rukata/pkg/puzzle"
)

type (
	// App is the composition root of the CLI. Command handlers reach the
	// catalog, settings and test runner only through it.
	App struct {
		Store       *puzzle.Store
		Fingerprint puzzle.Digest
		Settings    SettingsProvider
		Tests       TestRunner
		stdout      io.Writer
		stderr      io.Writer
		logger      *slog.Logger

		verbose      bool
		settingsOpts config.LoadOptions
	}

	// Dependencies are the injection points of NewApp. Nil fields get
	// production defaults.
	Dependencies struct {
		Store       *puzzle.Store
		Fingerprint puzzle.Digest
		Settings    SettingsProvider
		Tests       TestRunner
		Stdout      io.Writer
		Stderr      io.Writer
		Logger      *slog.Logger
	}

	// SettingsProvider loads user settings.
	SettingsProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Settings, error)
	}

	// TestRunner runs a puzzle test command.
	TestRunner interface {
		Run(ctx context.Context, opts testrunner.Options) error
	}

	shellTestRunner struct{}
)

// NewApp builds an App, defaulting to the embedded catalog, the settings
// file and the mvdan/sh test runner.
func NewApp(deps Dependencies) *App {
	if deps.Store == nil {
		deps.Store = puzzledata.Default()
		deps.Fingerprint = puzzledata.Fingerprint()
	}
	if deps.Settings == nil {
		deps.Settings = config.NewProvider()
	}
	if deps.Tests == nil {
		deps.Tests = shellTestRunner{}
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &App{
		Store:       deps.Store,
		Fingerprint: deps.Fingerprint,
		Settings:    deps.Settings,
		Tests:       deps.Tests,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
		logger:      deps.Logger,
	}
}

func (shellTestRunner) Run(ctx context.Context, opts testrunner.Options) error {
	return testrunner.Run(ctx, opts)
}

func (a *App) loadSettings(ctx context.Context) (*config.Settings, error) {
	return a.Settings.Load(ctx, a.settingsOpts)
}
