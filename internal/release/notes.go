package release

import (
	"fmt"
	"strings"
)

// BuildNotes renders the human-readable release notes for a computation:
// a titled markdown document grouping commit subjects by bump severity.
func BuildNotes(c *Computation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Release %s\n\n", c.NextTag())

	if c.Tag != "" {
		fmt.Fprintf(&b, "Changes since %s:\n\n", c.Tag)
	} else {
		b.WriteString("Initial release.\n\n")
	}

	groups := map[Severity][]string{}
	for _, subject := range c.Commits {
		sev := ClassifySubject(subject)
		groups[sev] = append(groups[sev], subject)
	}

	sections := []struct {
		sev   Severity
		title string
	}{
		{SeverityMajor, "Breaking changes"},
		{SeverityMinor, "Features"},
		{SeverityPatch, "Fixes"},
	}
	for _, sec := range sections {
		subjects := groups[sec.sev]
		if len(subjects) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", sec.title)
		for _, s := range subjects {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
