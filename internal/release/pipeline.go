package release

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/layergen/layergen/internal/config"
	"github.com/layergen/layergen/internal/ui"
)

// Summary reports what a pipeline run did.
type Summary struct {
	Version   string // The computed version tag.
	Published bool   // Whether a release record was created.
	Artifact  string // Path of the packaged artifact, if packaging ran.
	Notes     string // Release notes for the computed version.
}

// Options configures a Pipeline.
type Options struct {
	Config   *config.Config
	Git      GitHistory
	Runner   CommandRunner
	Registry Registry
	Printer  *ui.Printer
	Logger   *slog.Logger
	RepoRoot string
	DryRun   bool

	// credential overrides the TokenEnv lookup in tests.
	credential func() string
}

// Pipeline runs the release stages in strict sequence. Any stage failure
// aborts all later stages; there are no retries and no partial publish.
type Pipeline struct {
	opts Options
}

// NewPipeline creates a Pipeline, applying defaults for optional fields.
func NewPipeline(opts Options) *Pipeline {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Printer == nil {
		opts.Printer = ui.NewPrinterWithWriter(io.Discard, true)
	}
	if opts.RepoRoot == "" {
		opts.RepoRoot = "."
	}
	if opts.credential == nil {
		opts.credential = func() string { return os.Getenv(TokenEnv) }
	}
	return &Pipeline{opts: opts}
}

// Run executes the pipeline and returns a Summary on success.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	out := p.opts.Printer

	// Stage 1: preconditions.
	out.Stage(1, "preconditions")
	if err := p.checkPreconditions(ctx); err != nil {
		out.Failure("%v", err)
		return nil, err
	}
	out.Success("full history available")
	p.warnOffTrunk(ctx)

	// Stage 2: restore, build, test the generator source.
	out.Stage(2, "build and test")
	if err := p.buildAndTest(ctx); err != nil {
		out.Failure("%v", err)
		return nil, err
	}
	out.Success("source builds and tests pass")

	// Stage 3: compute version from commit history.
	out.Stage(3, "compute version")
	comp, err := ComputeVersion(ctx, p.opts.Git)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPreconditionFailed, err)
		out.Failure("%v", err)
		return nil, err
	}
	out.Success("previous %s, bump %s, next %s", "v"+comp.Previous.String(), comp.Severity, comp.NextTag())

	summary := &Summary{
		Version: comp.NextTag(),
		Notes:   BuildNotes(comp),
	}

	// Stage 4: package the versioned artifact.
	out.Stage(4, "package")
	packager := NewPackager(p.opts.Runner, p.opts.RepoRoot, p.opts.Config.Dist, p.opts.Config.Package.Name)
	artifact, err := packager.Package(ctx, comp.NextTag())
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrBuildFailed, err)
		out.Failure("%v", err)
		return nil, err
	}
	summary.Artifact = artifact
	out.Success("artifact %s", artifact)

	// Stage 5: self-test the artifact end to end.
	out.Stage(5, "self-test")
	selfTester := NewSelfTester(p.opts.Runner, p.opts.Config.Package.Name, p.opts.Logger)
	if err := selfTester.Run(ctx, artifact); err != nil {
		out.Failure("%v", err)
		return nil, err
	}
	out.Success("packaged generator produces a buildable scaffold")

	// Stage 6: publish.
	out.Stage(6, "publish")
	if !comp.ShouldPublish() {
		out.Info("no release-worthy commits since %s; nothing to publish", comp.NextTag())
		return summary, nil
	}
	if p.opts.DryRun {
		out.Info("dry run; would publish %s", comp.NextTag())
		return summary, nil
	}
	if err := p.publish(ctx, comp, summary); err != nil {
		out.Failure("%v", err)
		return nil, err
	}
	summary.Published = true
	out.Success("published %s", comp.NextTag())

	return summary, nil
}

// checkPreconditions verifies full history and, unless dry-running, the
// publish credential. Both are fatal before any work starts.
func (p *Pipeline) checkPreconditions(ctx context.Context) error {
	shallow, err := p.opts.Git.IsShallow(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPreconditionFailed, err)
	}
	if shallow {
		return fmt.Errorf("%w: shallow history; version computation needs the full commit graph and tags", ErrPreconditionFailed)
	}
	if !p.opts.DryRun && p.opts.credential() == "" {
		return fmt.Errorf("%w: publish credential %s is not set", ErrPreconditionFailed, TokenEnv)
	}
	return nil
}

// warnOffTrunk flags releases cut from a branch other than the configured
// trunk. Detached checkouts (the normal CI state) report "HEAD" and are not
// flagged; the warning targets manual runs from feature branches.
func (p *Pipeline) warnOffTrunk(ctx context.Context) {
	branch, err := p.opts.Git.CurrentBranch(ctx)
	if err != nil {
		return
	}
	if branch != p.opts.Config.Trunk && branch != "HEAD" {
		p.opts.Printer.Info("releasing from branch %q, trunk is %q", branch, p.opts.Config.Trunk)
	}
}

// buildAndTest compiles and tests the repository source.
func (p *Pipeline) buildAndTest(ctx context.Context) error {
	if out, err := p.opts.Runner.Run(ctx, p.opts.RepoRoot, "go", "build", "./..."); err != nil {
		return fmt.Errorf("%w: %v\n%s", ErrBuildFailed, err, out)
	}
	if out, err := p.opts.Runner.Run(ctx, p.opts.RepoRoot, "go", "test", "./..."); err != nil {
		return fmt.Errorf("%w: %v\n%s", ErrTestFailed, err, out)
	}
	return nil
}

// publish uploads the artifact and cuts the release record.
func (p *Pipeline) publish(ctx context.Context, comp *Computation, summary *Summary) error {
	// Re-check the credential right before the only stage that needs it;
	// the environment may have changed during a long run.
	if p.opts.credential() == "" {
		return fmt.Errorf("%w: publish credential %s is not set", ErrPreconditionFailed, TokenEnv)
	}

	exists, err := p.opts.Registry.Exists(ctx, comp.NextTag())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateVersion, comp.NextTag())
	}

	return p.opts.Registry.Publish(ctx, Release{
		Tag:      comp.NextTag(),
		Name:     "Release " + comp.NextTag(),
		Body:     summary.Notes,
		Artifact: summary.Artifact,
	})
}
