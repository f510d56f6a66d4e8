// SPDX-License-Identifier: MPL-2.0

// Command langjs converts a Laravel lang directory into a vue-i18n module.
package main

import cmd "github.com/langjs/langjs/cmd/langjs"

func main() {
	cmd.Execute()
}
