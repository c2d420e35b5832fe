// Package main is the entry point for the practicelog CLI tool.
package main

import (
	"os"

	"github.com/good-yellow-bee/practicelog/cmd/practicectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
