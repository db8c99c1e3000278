// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const showWordWrap = 100

func newShowCommand(app *App) *cobra.Command {
	var (
		style     string
		withFiles bool
	)
	cmd := &cobra.Command{
		Use:     "show <id>",
		Short:   "Print the instructions of a puzzle",
		Example: "  rukata show 1\n  rukata show 1 --files --style notty",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.lookup(args[0])
			if err != nil {
				return err
			}

			var md strings.Builder
			md.WriteString(p.Readme().Text())
			if withFiles {
				md.WriteString("\n\n## Files\n\n")
				for _, f := range p.BaseFiles() {
					marker := ""
					if p.IsReadOnly(f.Path()) {
						marker = " (read-only)"
					}
					fmt.Fprintf(&md, "- `%s`%s\n", f.Path(), marker)
				}
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithStylePath(style),
				glamour.WithWordWrap(showWordWrap),
			)
			if err != nil {
				return err
			}
			rendered, err := r.Render(md.String())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "auto", "glamour style: auto, dark, light, notty or a JSON style file")
	cmd.Flags().BoolVar(&withFiles, "files", false, "also list the files the working copy holds")
	return cmd
}
