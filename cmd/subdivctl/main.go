// SPDX-License-Identifier: Unlicense OR MIT

package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
