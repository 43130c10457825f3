// Package main provides the tagger CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/tagger/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
