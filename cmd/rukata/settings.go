// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rukata-org/rukata/internal/config"
	"github.com/rukata-org/rukata/internal/issue"
	"github.com/rukata-org/rukata/internal/testrunner"
)

func newSettingsCommand(app *App) *cobra.Command {
	var (
		directory   string
		testCommand string
		pathOnly    bool
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the settings",
		Long: `Show the settings file location and its values. Passing --directory or
--test-command stores the new value.

RUKATA_DIRECTORY and RUKATA_TEST_COMMAND override the stored values.`,
		Example: "  rukata settings\n  rukata settings --directory ~/rukata\n  rukata settings --test-command 'cargo nextest run'",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			path, err := config.SettingsPath(app.settingsOpts)
			if err != nil {
				return err
			}
			if pathOnly {
				fmt.Fprintln(out, path)
				return nil
			}

			settings, err := app.loadSettings(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, TitleStyle.Render("Current path for settings file:"))
			fmt.Fprintln(out, path)
			fmt.Fprintln(out, TitleStyle.Render("Current settings data:"))
			printSettings(out, settings)

			changed := cmd.Flags().Changed("directory") || cmd.Flags().Changed("test-command")
			if !changed {
				return nil
			}

			updated := *settings
			if cmd.Flags().Changed("directory") {
				abs, err := filepath.Abs(directory)
				if err != nil {
					return err
				}
				if err := config.ValidateDirectory(abs); err != nil {
					return issue.NewErrorContext().
						WithOperation("set puzzle directory").
						WithResource(abs).
						WithSuggestion("Pick an empty directory, or one that only holds 'working' and 'solution'").
						Wrap(err).
						BuildError()
				}
				updated.Directory = abs
			}
			if cmd.Flags().Changed("test-command") {
				if err := testrunner.Validate(testCommand); err != nil {
					return issue.NewErrorContext().
						WithOperation("set test command").
						WithSuggestion("Quote the command the way you would in a POSIX shell").
						Wrap(err).
						BuildError()
				}
				updated.TestCommand = testCommand
			}

			saved, err := config.Save(&updated, app.settingsOpts)
			if err != nil {
				return issue.WrapWithContext(err, "save settings", saved)
			}
			fmt.Fprintln(out, TitleStyle.Render("New settings data:"))
			printSettings(out, &updated)
			return nil
		},
	}
	cmd.Flags().StringVar(&directory, "directory", "", "store the puzzle directory")
	cmd.Flags().StringVar(&testCommand, "test-command", "", "store the command 'rukata check' runs")
	cmd.Flags().BoolVar(&pathOnly, "path", false, "only print the settings file path")
	return cmd
}

func printSettings(w io.Writer, s *config.Settings) {
	directory := s.Directory
	if directory == "" {
		directory = SubtitleStyle.Render("(not set)")
	}
	fmt.Fprintf(w, "  directory:    %s\n", directory)
	fmt.Fprintf(w, "  test_command: %s\n", s.TestCommand)
}
