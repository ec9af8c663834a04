// Command blogctl manages the post collection from the terminal, using
// the same storage and editor rules as the web editor.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
