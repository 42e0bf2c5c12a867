// Package cli wires the layergen commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/layergen/layergen/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "layergen",
	Short: "layergen: layered solution scaffolding and release tooling",
	Long: `layergen generates a layered (DDD-style) multi-module Go solution
skeleton from a single project name, and ships the release pipeline that
versions, packages, self-tests, and publishes layergen itself.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("layergen %s\n", version.GetVersion()))
}
