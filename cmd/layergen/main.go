// Package main is the entry point for the layergen CLI.
package main

import (
	"os"

	"github.com/layergen/layergen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
