// Command genmels generates the mel filterbank coefficient table of the mel
// feature engine and checks it against the float filterbank.
//
// Usage:
//
//	genmels [flags] <command>
//
// Commands:
//
//	generate  - Write the hex table, stop index file and CSV audit dump
//	verify    - Compare float and table features on a test tone or recording
//	inspect   - Show per-filter support and table statistics
//	version   - Show version information
package main

import (
	"os"

	"github.com/jurevreca12/mel-engine/cmd/genmels/commands"
)

func main() {
	// Execute logs the error.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
