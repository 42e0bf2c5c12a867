package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GoVersion is the language version stamped into generated manifests.
const GoVersion = "1.23"

// Kind classifies a sub-project by the sources it carries.
type Kind string

const (
	// KindLibrary is a plain library module with a doc.go.
	KindLibrary Kind = "library"

	// KindAPI is an executable module with a package main.
	KindAPI Kind = "api"

	// KindTest is a module carrying only test files.
	KindTest Kind = "test"
)

// SubProject describes one buildable unit within the generated solution.
type SubProject struct {
	Suffix  string   // Name suffix; directory is <ProjectName>.<Suffix>.
	Module  string   // Last module-path element (e.g. "domain").
	Package string   // Go package name; empty for KindAPI (package main).
	Kind    Kind     // Which source templates apply.
	Doc     string   // Package doc fragment for library modules.
	Deps    []string // Suffixes of sub-projects this one depends on.
}

// Layout returns the fixed, ordered sub-project descriptors. Order only
// affects emission sequence; the resulting dependency graph is the same
// regardless (all additions are commutative).
func Layout() []SubProject {
	return []SubProject{
		{
			Suffix:  "Domain",
			Module:  "domain",
			Package: "domain",
			Kind:    KindLibrary,
			Doc:     "holds the enterprise model: entities, value objects, and domain services.",
		},
		{
			Suffix:  "Application",
			Module:  "application",
			Package: "application",
			Kind:    KindLibrary,
			Doc:     "implements use cases that orchestrate the domain layer.",
			Deps:    []string{"Domain"},
		},
		{
			Suffix:  "Infrastructure.Persistence",
			Module:  "persistence",
			Package: "persistence",
			Kind:    KindLibrary,
			Doc:     "provides persistence adapters for the domain model.",
			Deps:    []string{"Domain"},
		},
		{
			Suffix: "API",
			Module: "api",
			Kind:   KindAPI,
			Deps:   []string{"Application", "Infrastructure.Persistence"},
		},
		{
			Suffix:  "UnitTests",
			Module:  "unittests",
			Package: "unittests",
			Kind:    KindTest,
			Doc:     "hosts the unit test suite for the domain and application layers.",
			Deps:    []string{"Domain", "Application"},
		},
		{
			Suffix:  "IntegrationTests",
			Module:  "integrationtests",
			Package: "integrationtests",
			Kind:    KindTest,
			Doc:     "hosts the integration test suite exercising application and persistence together.",
			Deps:    []string{"Application", "Infrastructure.Persistence"},
		},
	}
}

// Spec identifies one scaffold invocation: the project name plus the fixed
// sub-project layout. A Spec is constructed fresh per invocation.
type Spec struct {
	Name        string // Validated project name; used as namespace and path token.
	OutputDir   string // Parent directory; the scaffold root is OutputDir/Name.
	SubProjects []SubProject
}

// NewSpec validates the project name and returns a Spec with the fixed layout.
func NewSpec(name, outputDir string) (*Spec, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if outputDir == "" {
		outputDir = "."
	}
	return &Spec{
		Name:        name,
		OutputDir:   filepath.Clean(outputDir),
		SubProjects: Layout(),
	}, nil
}

// Root returns the scaffold root directory.
func (s *Spec) Root() string {
	return filepath.Join(s.OutputDir, s.Name)
}

// ModuleBase returns the base module path shared by all sub-projects.
func (s *Spec) ModuleBase() string {
	return "example.com/" + strings.ToLower(s.Name)
}

// Dir returns the directory name for a sub-project: <ProjectName>.<Suffix>.
func (s *Spec) Dir(sp SubProject) string {
	return s.Name + "." + sp.Suffix
}

// ModulePath returns the full module path for a sub-project.
func (s *Spec) ModulePath(sp SubProject) string {
	return s.ModuleBase() + "/" + sp.Module
}

// subProject looks up a descriptor by suffix.
func (s *Spec) subProject(suffix string) (SubProject, bool) {
	for _, sp := range s.SubProjects {
		if sp.Suffix == suffix {
			return sp, true
		}
	}
	return SubProject{}, false
}

// ValidateName checks that a project name is identifier-safe: a letter
// followed by letters or digits. Empty or whitespace-only names are a
// usage error.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}
	for i, r := range name {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return fmt.Errorf("%w: %q must start with a letter", ErrInvalidArgument, name)
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("%w: %q contains %q; only letters and digits are allowed", ErrInvalidArgument, name, r)
		}
	}
	return nil
}

// NormalizeName derives an identifier-safe PascalCase name from free-form
// input, e.g. "shop floor" -> "ShopFloor". The result still goes through
// ValidateName; normalization cannot rescue names with no usable runes.
func NormalizeName(raw string) string {
	titler := cases.Title(language.English)
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(titler.String(f))
	}
	return b.String()
}
