package release

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Severity classifies how strongly a set of commits bumps the version.
// Higher values dominate when commits of mixed severity exist.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityPatch
	SeverityMinor
	SeverityMajor
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityMajor:
		return "major"
	case SeverityMinor:
		return "minor"
	case SeverityPatch:
		return "patch"
	default:
		return "none"
	}
}

// prefixSeverity maps conventional-commit prefixes to bump severity.
// Unlisted prefixes (and prefix-less subjects) classify as none.
var prefixSeverity = map[string]Severity{
	"breaking": SeverityMajor,
	"major":    SeverityMajor,
	"feature":  SeverityMinor,
	"minor":    SeverityMinor,
	"fix":      SeverityPatch,
	"patch":    SeverityPatch,
	"none":     SeverityNone,
	"skip":     SeverityNone,
}

// ClassifySubject extracts the leading commit-message token and maps it to
// a severity. The token ends at ':', '(' (scope), or '!', so "fix(api): x"
// classifies the same as "fix: x".
func ClassifySubject(subject string) Severity {
	subject = strings.TrimSpace(subject)
	token := subject
	for i, c := range subject {
		if c == ':' || c == '(' || c == '!' {
			token = subject[:i]
			break
		}
	}
	if token == subject {
		// No delimiter at all: not a conventional prefix.
		return SeverityNone
	}
	return prefixSeverity[strings.ToLower(strings.TrimSpace(token))]
}

// Classify returns the highest severity across all commit subjects.
func Classify(subjects []string) Severity {
	highest := SeverityNone
	for _, s := range subjects {
		if sev := ClassifySubject(s); sev > highest {
			highest = sev
		}
	}
	return highest
}

// Bump applies a severity to a version. Major resets minor and patch;
// minor resets patch; none returns the version unchanged.
func Bump(current *semver.Version, sev Severity) semver.Version {
	switch sev {
	case SeverityMajor:
		return current.IncMajor()
	case SeverityMinor:
		return current.IncMinor()
	case SeverityPatch:
		return current.IncPatch()
	default:
		return *current
	}
}
