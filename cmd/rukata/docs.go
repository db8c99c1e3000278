// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rukata-org/rukata/internal/companion"
	"github.com/rukata-org/rukata/internal/issue"
)

func newDocsCommand(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate the companion book sources",
		Long: `Generate mdBook sources for every puzzle in the catalog: one page per
puzzle plus difficulty, category and library indexes. The puzzles/
folder under <out>/src is rebuilt from scratch.`,
		Example: "  rukata docs --out book",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := companion.Generate(app.Store, out, companion.WithLogger(app.logger))
			if err != nil {
				return issue.WrapWithContext(err, "generate companion book", out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d puzzles, %d files in %s\n",
				SuccessStyle.Render("Generated"), res.Puzzles, res.Files, CmdStyle.Render(res.Dir))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "book", "book root directory")
	return cmd
}
