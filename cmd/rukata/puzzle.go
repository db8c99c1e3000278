// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rukata-org/rukata/internal/config"
	"github.com/rukata-org/rukata/internal/issue"
	"github.com/rukata-org/rukata/internal/testrunner"
	"github.com/rukata-org/rukata/internal/workspace"
	"github.com/rukata-org/rukata/pkg/puzzle"
)

// unknownPuzzleError reports an id that parsed but is not in the catalog.
type unknownPuzzleError struct {
	ID puzzle.ID
}

func (e *unknownPuzzleError) Error() string {
	return fmt.Sprintf("Puzzle ID is not valid %d", e.ID)
}

func (e *unknownPuzzleError) Unwrap() error { return errPuzzleNotFound }

func newGenerateCommand(app *App) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "generate <id>",
		Short: "Create the working copy of a puzzle",
		Long: `Create the working copy of a puzzle under <directory>/working.

Files the puzzle's tests depend on are written read-only; 'rukata check'
refuses a working copy where they were changed.`,
		Example: "  rukata generate 1\n  rukata generate 00001 --dir /tmp/rukata",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, root, _, err := app.preparePuzzle(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			out, err := workspace.Generate(root, p)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation(fmt.Sprintf("generate puzzle %d", p.ID())).
					WithResource(out).
					WithSuggestion("Keep working in the existing copy, or remove it to start over").
					WithSuggestion(fmt.Sprintf("Run 'rukata check %d' to test the existing copy", p.ID())).
					Wrap(err).
					BuildError()
			}
			app.logger.Debug("generated working copy", "id", p.ID(), "dir", out)
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Generated puzzle "+p.ID().String())+" in "+CmdStyle.Render(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "puzzle directory (overrides the settings)")
	return cmd
}

func newSolutionCommand(app *App) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     "solution <id>",
		Short:   "Write the reference solution of a puzzle",
		Long:    `Write the reference solution of a puzzle under <directory>/solution.`,
		Example: "  rukata solution 1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, root, _, err := app.preparePuzzle(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			out, err := workspace.Solution(root, p)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation(fmt.Sprintf("write solution for puzzle %d", p.ID())).
					WithResource(out).
					WithSuggestion("The solution was already written; remove it to write it again").
					Wrap(err).
					BuildError()
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Wrote solution for puzzle "+p.ID().String())+" in "+CmdStyle.Render(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "puzzle directory (overrides the settings)")
	return cmd
}

func newCheckCommand(app *App) *cobra.Command {
	var dir, command string
	cmd := &cobra.Command{
		Use:   "check <id>",
		Short: "Verify a working copy and run its tests",
		Long: `Verify that the read-only files of a working copy are untouched, then
run the test command (default 'cargo test') inside it.`,
		Example: "  rukata check 1\n  rukata check 1 --test-command 'cargo test --release'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, root, settings, err := app.preparePuzzle(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			op := fmt.Sprintf("check puzzle %d", p.ID())

			work, err := workspace.Verify(root, p)
			if err != nil {
				ctx := issue.NewErrorContext().WithOperation(op).WithResource(work)
				if errors.Is(err, workspace.ErrWorkspaceMissing) {
					ctx.WithSuggestion(fmt.Sprintf("Run 'rukata generate %d' first", p.ID()))
				} else {
					ctx.WithSuggestion(fmt.Sprintf("Generate a fresh copy with 'rukata generate %d --dir /tmp/fresh' and restore the files listed above", p.ID()))
				}
				return ctx.Wrap(err).BuildError()
			}

			if command == "" {
				command = settings.TestCommand
			}
			err = app.Tests.Run(cmd.Context(), testrunner.Options{
				Dir:     work,
				Command: command,
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
				Logger:  app.logger,
			})
			if err != nil {
				return issue.NewErrorContext().
					WithOperation(op).
					WithResource(work).
					WithSuggestion("Read the test output above and keep going").
					WithSuggestion(fmt.Sprintf("Stuck? 'rukata solution %d' writes the reference answer", p.ID())).
					Wrap(err).
					BuildError()
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("You have completed puzzle %d", p.ID())))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "puzzle directory (overrides the settings)")
	cmd.Flags().StringVar(&command, "test-command", "", "test command (overrides the settings)")
	return cmd
}

// preparePuzzle resolves the puzzle named by arg and the workspace root.
// dirFlag wins over the stored directory; the result is validated before
// anything is written.
func (a *App) preparePuzzle(ctx context.Context, arg, dirFlag string) (*puzzle.Puzzle, string, *config.Settings, error) {
	p, err := a.lookup(arg)
	if err != nil {
		return nil, "", nil, err
	}
	settings, err := a.loadSettings(ctx)
	if err != nil {
		return nil, "", nil, err
	}
	root := settings.Directory
	if dirFlag != "" {
		root = dirFlag
	}
	if root == "" {
		return nil, "", nil, issue.NewErrorContext().
			WithOperation("resolve puzzle directory").
			WithSuggestion("Set one with 'rukata settings --directory <dir>'").
			WithSuggestion("Or pass --dir <dir>").
			Wrap(config.ValidateDirectory(root)).
			BuildError()
	}
	if err := config.ValidateDirectory(root); err != nil {
		return nil, "", nil, issue.NewErrorContext().
			WithOperation("use puzzle directory").
			WithResource(root).
			WithSuggestion("The directory may only hold the 'working' and 'solution' folders rukata creates").
			WithSuggestion("Choose another one with 'rukata settings --directory <dir>'").
			Wrap(err).
			BuildError()
	}
	return p, root, settings, nil
}

func (a *App) lookup(arg string) (*puzzle.Puzzle, error) {
	id, err := puzzle.ParseID(arg)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse puzzle id").
			WithSuggestion("Run 'rukata list' to see the available ids").
			Wrap(err).
			BuildError()
	}
	p, ok := a.Store.Lookup(id)
	if !ok {
		return nil, issue.NewErrorContext().
			WithOperation("find puzzle").
			WithSuggestion("Run 'rukata list' to see the available ids").
			Wrap(&unknownPuzzleError{ID: id}).
			BuildError()
	}
	return p, nil
}
