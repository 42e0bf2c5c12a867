package git

import (
	"context"
	"strings"
)

// History answers the repository questions version computation depends on.
type History struct {
	runner Runner
}

// NewHistory creates a History over the given Runner.
func NewHistory(r Runner) *History {
	return &History{runner: r}
}

// IsShallow reports whether the checkout has truncated history. Version
// computation needs the full commit graph and all tags; a shallow clone
// is a fatal precondition failure for the caller.
func (h *History) IsShallow(ctx context.Context) (bool, error) {
	out, err := h.runner.Run(ctx, "rev-parse", "--is-shallow-repository")
	if err != nil {
		return false, err
	}
	return out == "true", nil
}

// CurrentBranch returns the checked-out branch name, or "HEAD" when the
// checkout is detached (as CI checkouts usually are).
func (h *History) CurrentBranch(ctx context.Context) (string, error) {
	return h.runner.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// Tags lists tags matching pattern, newest version first.
func (h *History) Tags(ctx context.Context, pattern string) ([]string, error) {
	out, err := h.runner.Run(ctx, "tag", "--list", pattern, "--sort=-v:refname")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CommitSubjectsSince returns the subject line of every commit after tag,
// newest first. An empty tag means the entire history.
func (h *History) CommitSubjectsSince(ctx context.Context, tag string) ([]string, error) {
	args := []string{"log", "--pretty=format:%s"}
	if tag != "" {
		args = append(args, tag+"..HEAD")
	}
	out, err := h.runner.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// splitLines splits trimmed command output, dropping empty lines.
func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
