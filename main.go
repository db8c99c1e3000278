// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/rukata-org/rukata/cmd/rukata"

func main() {
	cmd.Execute()
}
