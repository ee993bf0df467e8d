// Package main is the entry point for the keyspace-time CLI.
package main

import (
	"os"

	"keyspace-time/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
