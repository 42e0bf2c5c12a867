package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// GitHistory is the slice of repository state version computation reads.
// *git.History satisfies it.
type GitHistory interface {
	IsShallow(ctx context.Context) (bool, error)
	CurrentBranch(ctx context.Context) (string, error)
	Tags(ctx context.Context, pattern string) ([]string, error)
	CommitSubjectsSince(ctx context.Context, tag string) ([]string, error)
}

// Computation is the result of one version computation.
type Computation struct {
	Previous *semver.Version // Last released version; 0.0.0 when no tag exists.
	Next     *semver.Version // Version this run would publish.
	Severity Severity        // Highest severity found since the last tag.
	Tag      string          // The previous release tag, "" if none.
	Commits  []string        // Commit subjects since the previous tag, newest first.
}

// ShouldPublish reports whether the computation produced a new version.
// A run with no classifiable commits rebuilds the previous version but
// must never publish it again.
func (c *Computation) ShouldPublish() bool {
	return c.Severity != SeverityNone
}

// NextTag returns the release tag for the computed version.
func (c *Computation) NextTag() string {
	return "v" + c.Next.String()
}

// ComputeVersion derives the next release version from commit history:
// the highest-severity conventional-commit prefix since the last release
// tag decides the bump.
func ComputeVersion(ctx context.Context, g GitHistory) (*Computation, error) {
	tags, err := g.Tags(ctx, "v*")
	if err != nil {
		return nil, fmt.Errorf("list release tags: %w", err)
	}

	prev, prevTag := latestVersion(tags)

	commits, err := g.CommitSubjectsSince(ctx, prevTag)
	if err != nil {
		return nil, fmt.Errorf("read commits since %q: %w", prevTag, err)
	}

	sev := Classify(commits)
	next := Bump(prev, sev)

	return &Computation{
		Previous: prev,
		Next:     &next,
		Severity: sev,
		Tag:      prevTag,
		Commits:  commits,
	}, nil
}

// latestVersion picks the highest semver-parseable tag. Tags that do not
// parse (release tags from other tooling, say) are skipped. With no
// parseable tag the base version is 0.0.0.
func latestVersion(tags []string) (*semver.Version, string) {
	var best *semver.Version
	var bestTag string
	for _, tag := range tags {
		v, err := semver.NewVersion(strings.TrimPrefix(tag, "v"))
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestTag = tag
		}
	}
	if best == nil {
		return semver.New(0, 0, 0, "", ""), ""
	}
	return best, bestTag
}
