package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/layergen/layergen/internal/config"
	"github.com/layergen/layergen/internal/git"
	"github.com/layergen/layergen/internal/release"
	"github.com/layergen/layergen/internal/ui"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Run the release pipeline",
	Long: `Run the release pipeline against the current repository:

  1. preconditions (full history, publish credential)
  2. build and test the source
  3. compute the next version from conventional-commit prefixes
  4. package the versioned artifact
  5. self-test the artifact (generate and build a throwaway scaffold)
  6. publish the release and tag

Every stage is fail-fast; nothing is published unless all prior stages
succeeded. With --dry-run the pipeline stops before publishing and
prints the release notes it would have used.`,
	RunE: runRelease,
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().Bool("dry-run", false, "Run all stages except publish")
	releaseCmd.Flags().String("config", config.FileName, "Path to the release config file")
}

func runRelease(cmd *cobra.Command, _ []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	repoRoot, err := os.Getwd()
	if err != nil {
		return err
	}

	out := ui.NewPrinter()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	pipeline := release.NewPipeline(release.Options{
		Config:   cfg,
		Git:      git.NewHistory(git.NewRunner(repoRoot)),
		Runner:   release.NewCommandRunner(),
		Registry: release.NewGitHubRegistry(cfg.Registry, os.Getenv(release.TokenEnv)),
		Printer:  out,
		Logger:   logger,
		RepoRoot: repoRoot,
		DryRun:   dryRun,
	})

	summary, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	if dryRun {
		out.Markdown(summary.Notes)
	}
	return nil
}
