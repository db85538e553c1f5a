// Command matchsim is the flow analyzer / headless harness: it
// drives the engine across many independent games per matchup and
// prints a balance report, or dumps one seeded game's full trace.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
