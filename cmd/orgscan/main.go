// orgscan checks text documents for mentions of deny-listed organizations,
// timing four matching strategies against each other on every run.
package main

import (
	"fmt"
	"os"

	"github.com/corey/orgscan/cmd/orgscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
