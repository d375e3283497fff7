// Package main provides the Fibank assistant CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/fibank-ai/bankbot/cmd/bankbot/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
