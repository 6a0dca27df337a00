// Package main is the entry point for the tem CLI.
package main

import (
	"os"

	"github.com/edp1096/toy-tem/cmd/tem/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
