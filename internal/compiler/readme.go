// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"strings"

	"github.com/rukata-org/rukata/pkg/puzzle"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SynthesizeReadme wraps a puzzle's raw README text with the generated
// title header and the command footer. Line endings are normalized to "\n".
func SynthesizeReadme(raw, title string, id puzzle.ID) string {
	var b strings.Builder
	b.Grow(len(raw) + len(title) + 64)
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString(" - Puzzle ID ")
	b.WriteString(id.Padded())
	b.WriteString("\n")
	b.WriteString(lineEndings.Replace(raw))
	b.WriteString("\n\n### Command\n`rukata generate ")
	b.WriteString(id.String())
	b.WriteString("`\n")
	return b.String()
}
