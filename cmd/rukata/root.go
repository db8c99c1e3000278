// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/rukata-org/rukata/internal/issue"
	"github.com/rukata-org/rukata/internal/logging"
	"github.com/rukata-org/rukata/pkg/puzzle"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func (a *App) getVersionString() string {
	catalog := "catalog: none"
	if a.Store.Len() > 0 {
		catalog = fmt.Sprintf("catalog: %d puzzles", a.Store.Len())
		if a.Fingerprint != (puzzle.Digest{}) {
			catalog += " " + a.Fingerprint.Short()
		}
	}
	if Version == "dev" {
		return "dev (built from source, " + catalog + ")"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s, %s)", Version, Commit, BuildDate, catalog)
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "rukata",
		Short: "Small Rust puzzles you solve in your own editor",
		Long: TitleStyle.Render("rukata") + SubtitleStyle.Render(" - Small Rust puzzles you solve in your own editor") + `

Each puzzle is a tiny cargo project with a failing test suite. Generate
one, make the tests pass, then let rukata check your work.

` + SubtitleStyle.Render("Quick Start:") + `
  1. rukata settings --directory ~/rukata
  2. rukata generate 1
  3. rukata check 1

` + SubtitleStyle.Render("Examples:") + `
  rukata list --difficulty basic   List the basic puzzles
  rukata show 1                    Read a puzzle's instructions
  rukata solution 1                Write the reference solution`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if app.verbose {
				app.logger = logging.New(app.stderr, logging.Options{Prefix: "rukata", Verbose: true})
			}
			return nil
		},
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&app.settingsOpts.SettingsFilePath, "settings", "", "settings file (default is <config dir>/dev.engineern.rukata/settings.json)")

	root.AddCommand(
		newGenerateCommand(app),
		newSolutionCommand(app),
		newCheckCommand(app),
		newListCommand(app),
		newShowCommand(app),
		newSettingsCommand(app),
		newDocsCommand(app),
	)
	return root
}

// Execute runs the CLI against the embedded catalog. This is called by
// main.main().
func Execute() {
	app := NewApp(Dependencies{})
	root := NewRootCommand(app)
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(app.getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			app.printError(w, err)
		}),
	); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// printError writes err for the user. Verbose mode adds the matching
// troubleshooting page.
func (a *App) printError(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))
	if !a.verbose {
		return
	}
	if page, ok := classifyError(err); ok {
		if rendered, rerr := page.Render("auto"); rerr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
