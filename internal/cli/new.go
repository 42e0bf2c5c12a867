package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/layergen/layergen/internal/cli/wizard"
	"github.com/layergen/layergen/internal/scaffold"
	"github.com/layergen/layergen/internal/ui"
)

var newCmd = &cobra.Command{
	Use:   "new [project-name]",
	Short: "Generate a layered solution skeleton",
	Long: `Generate a layered multi-module solution skeleton for the given
project name: a go.work solution manifest plus six sub-projects
(Domain, Application, API, Infrastructure.Persistence, UnitTests,
IntegrationTests), cross-referenced by layer and buildable as-is.

Run without arguments on a terminal to be prompted interactively.

Examples:
  layergen new ShopFloor
  layergen new ShopFloor --output ~/src`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringP("output", "o", ".", "Parent directory for the generated solution")
}

func runNew(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	var name string
	switch {
	case len(args) == 1:
		name = args[0]
	case isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		answers, err := wizard.Run()
		if err != nil {
			return err
		}
		name = answers.ProjectName
		if answers.OutputDir != "" {
			output = answers.OutputDir
		}
	default:
		return fmt.Errorf("%w: project name required (no terminal for interactive mode)", scaffold.ErrInvalidArgument)
	}

	spec, err := scaffold.NewSpec(name, output)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	result, err := scaffold.NewGenerator(logger).Generate(cmd.Context(), spec)
	if err != nil {
		return err
	}

	out := ui.NewPrinter()
	out.Success("generated %s", result.Root)
	for _, dir := range result.CreatedDirs {
		out.Info("  %s", dir)
	}
	out.Info("%d files written", len(result.CreatedFiles))
	return nil
}
