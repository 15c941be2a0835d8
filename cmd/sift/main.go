// Package main is the entry point for the sift CLI.
package main

import (
	"os"

	"github.com/pders01/sift/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
