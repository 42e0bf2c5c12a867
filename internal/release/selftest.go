package release

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/layergen/layergen/internal/scaffold"
)

// selfTestProject is the throwaway project name the self-test scaffolds.
const selfTestProject = "SelfTestApp"

// SelfTester installs a freshly packaged artifact into a clean directory,
// runs its scaffold generator, and builds and tests the generated solution.
// This is the pipeline's functional regression guard: a binary that cannot
// produce a buildable scaffold must never be published.
type SelfTester struct {
	runner  CommandRunner
	pkgName string
	logger  *slog.Logger
}

// NewSelfTester creates a SelfTester for the named package binary.
func NewSelfTester(runner CommandRunner, pkgName string, logger *slog.Logger) *SelfTester {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SelfTester{runner: runner, pkgName: pkgName, logger: logger}
}

// Run exercises the artifact end to end. Any failure wraps ErrSelfTestFailed.
func (s *SelfTester) Run(ctx context.Context, artifact string) error {
	installDir, err := os.MkdirTemp("", "layergen-selftest-*")
	if err != nil {
		return fmt.Errorf("%w: temp dir: %v", ErrSelfTestFailed, err)
	}
	defer func() { _ = os.RemoveAll(installDir) }()

	if err := extractTarGz(artifact, installDir); err != nil {
		return fmt.Errorf("%w: install artifact: %v", ErrSelfTestFailed, err)
	}

	bin := filepath.Join(installDir, s.pkgName)
	workDir := filepath.Join(installDir, "work")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("%w: work dir: %v", ErrSelfTestFailed, err)
	}

	s.logger.Info("self-test: generating scaffold", "bin", bin, "project", selfTestProject)
	if out, err := s.runner.Run(ctx, workDir, bin, "new", selfTestProject, "--output", workDir); err != nil {
		return fmt.Errorf("%w: generate scaffold: %v\n%s", ErrSelfTestFailed, err, out)
	}

	// Build and test every generated sub-project; the workspace file at the
	// scaffold root resolves cross-module references.
	spec, err := scaffold.NewSpec(selfTestProject, workDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSelfTestFailed, err)
	}
	for _, sp := range spec.SubProjects {
		dir := filepath.Join(spec.Root(), spec.Dir(sp))
		if out, err := s.runner.Run(ctx, dir, "go", "build", "./..."); err != nil {
			return fmt.Errorf("%w: build %s: %v\n%s", ErrSelfTestFailed, spec.Dir(sp), err, out)
		}
		if out, err := s.runner.Run(ctx, dir, "go", "test", "./..."); err != nil {
			return fmt.Errorf("%w: test %s: %v\n%s", ErrSelfTestFailed, spec.Dir(sp), err, out)
		}
	}

	s.logger.Info("self-test passed", "project", selfTestProject)
	return nil
}
