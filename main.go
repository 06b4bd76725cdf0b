// SPDX-License-Identifier: MPL-2.0

package main

import cmd "webdesk-cli/cmd/webdesk"

func main() {
	cmd.Execute()
}
