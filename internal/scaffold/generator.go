package scaffold

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/layergen/layergen/internal/template"
)

// Result summarizes the outcome of a scaffold generation.
type Result struct {
	Root         string   // Absolute-or-relative scaffold root that was created.
	CreatedDirs  []string // Directories created, relative to Root.
	CreatedFiles []string // Files created, relative to Root.
}

// Generator emits a complete solution skeleton for a Spec.
type Generator interface {
	// Generate writes the scaffold for spec. The target directory must not
	// already contain files; re-runs against an existing non-empty target
	// fail fast with ErrAlreadyExists rather than merging.
	Generate(ctx context.Context, spec *Spec) (*Result, error)
}

// generator is the concrete implementation of Generator.
type generator struct {
	renderer template.Renderer
	logger   *slog.Logger
}

// NewGenerator creates a Generator backed by the embedded templates.
func NewGenerator(logger *slog.Logger) Generator {
	return NewGeneratorWithFS(Templates(), logger)
}

// NewGeneratorWithFS creates a Generator over an explicit template FS (for tests).
func NewGeneratorWithFS(fsys fs.FS, logger *slog.Logger) Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &generator{
		renderer: template.NewRenderer(fsys),
		logger:   logger,
	}
}

// workData feeds go.work.tmpl.
type workData struct {
	GoVersion string
	Dirs      []string
}

// modData feeds go.mod.tmpl.
type modData struct {
	Module    string
	GoVersion string
	Requires  []modRequire
}

// modRequire is one layering edge in a sub-project manifest.
type modRequire struct {
	Path string // Required module path.
	Dir  string // Sibling directory name for the replace directive.
}

// docData feeds doc.go.tmpl.
type docData struct {
	Package string
	Doc     string
	Imports []string
}

// mainData feeds main.go.tmpl.
type mainData struct {
	ProjectName string
	Imports     []string
}

// testData feeds placeholder_test.go.tmpl.
type testData struct {
	Package string
}

// readmeData feeds README.md.tmpl.
type readmeData struct {
	ProjectName string
	Layers      []readmeLayer
}

// readmeLayer is one row in the generated README layer table.
type readmeLayer struct {
	Dir  string
	Role string
}

// Generate writes the full scaffold tree for spec.
func (g *generator) Generate(ctx context.Context, spec *Spec) (*Result, error) {
	if err := ValidateName(spec.Name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := spec.Root()
	if err := checkTarget(root); err != nil {
		return nil, err
	}

	g.logger.Info("generating scaffold", "name", spec.Name, "root", root)

	result := &Result{Root: root}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir %s: %v", ErrGenerateFailed, root, err)
	}

	// Solution manifest first; it references every sub-project exactly once.
	if err := g.writeSolutionManifest(spec, result); err != nil {
		return nil, err
	}

	for _, sp := range spec.SubProjects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.writeSubProject(spec, sp, result); err != nil {
			return nil, err
		}
	}

	if err := g.writeRootFiles(spec, result); err != nil {
		return nil, err
	}

	g.logger.Info("scaffold generated",
		"dirs", len(result.CreatedDirs),
		"files", len(result.CreatedFiles),
	)

	return result, nil
}

// checkTarget rejects targets that already exist with content.
func checkTarget(root string) error {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: stat %s: %v", ErrGenerateFailed, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is a file", ErrAlreadyExists, root)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrGenerateFailed, root, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s is not empty", ErrAlreadyExists, root)
	}
	return nil
}

// writeSolutionManifest emits go.work listing all sub-project directories.
func (g *generator) writeSolutionManifest(spec *Spec, result *Result) error {
	dirs := make([]string, 0, len(spec.SubProjects))
	for _, sp := range spec.SubProjects {
		dirs = append(dirs, spec.Dir(sp))
	}
	return g.renderTo(spec, result, "go.work.tmpl", "go.work", workData{
		GoVersion: GoVersion,
		Dirs:      dirs,
	})
}

// writeSubProject emits one sub-project directory: manifest plus sources.
func (g *generator) writeSubProject(spec *Spec, sp SubProject, result *Result) error {
	dir := spec.Dir(sp)
	if err := os.MkdirAll(filepath.Join(spec.Root(), dir), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrGenerateFailed, dir, err)
	}
	result.CreatedDirs = append(result.CreatedDirs, dir)

	requires := make([]modRequire, 0, len(sp.Deps))
	imports := make([]string, 0, len(sp.Deps))
	for _, depSuffix := range sp.Deps {
		dep, ok := spec.subProject(depSuffix)
		if !ok {
			return fmt.Errorf("%w: unknown dependency suffix %q", ErrGenerateFailed, depSuffix)
		}
		requires = append(requires, modRequire{
			Path: spec.ModulePath(dep),
			Dir:  spec.Dir(dep),
		})
		imports = append(imports, spec.ModulePath(dep))
	}

	if err := g.renderTo(spec, result, "go.mod.tmpl", filepath.Join(dir, "go.mod"), modData{
		Module:    spec.ModulePath(sp),
		GoVersion: GoVersion,
		Requires:  requires,
	}); err != nil {
		return err
	}

	switch sp.Kind {
	case KindLibrary:
		return g.renderTo(spec, result, "doc.go.tmpl", filepath.Join(dir, "doc.go"), docData{
			Package: sp.Package,
			Doc:     sp.Doc,
			Imports: imports,
		})
	case KindAPI:
		return g.renderTo(spec, result, "main.go.tmpl", filepath.Join(dir, "main.go"), mainData{
			ProjectName: spec.Name,
			Imports:     imports,
		})
	case KindTest:
		// Test modules still need a non-test file, or go build refuses the
		// package; doc.go also carries the graph-verifying blank imports.
		if err := g.renderTo(spec, result, "doc.go.tmpl", filepath.Join(dir, "doc.go"), docData{
			Package: sp.Package,
			Doc:     sp.Doc,
			Imports: imports,
		}); err != nil {
			return err
		}
		return g.renderTo(spec, result, "placeholder_test.go.tmpl", filepath.Join(dir, "placeholder_test.go"), testData{
			Package: sp.Package,
		})
	default:
		return fmt.Errorf("%w: unknown sub-project kind %q", ErrGenerateFailed, sp.Kind)
	}
}

// writeRootFiles emits README.md and .gitignore at the scaffold root.
func (g *generator) writeRootFiles(spec *Spec, result *Result) error {
	layers := make([]readmeLayer, 0, len(spec.SubProjects))
	for _, sp := range spec.SubProjects {
		role := sp.Doc
		switch sp.Kind {
		case KindAPI:
			role = "exposes the application over HTTP; depends on application and persistence."
		case KindTest:
			role = "exercises the layers it depends on."
		}
		layers = append(layers, readmeLayer{Dir: spec.Dir(sp), Role: role})
	}

	if err := g.renderTo(spec, result, "README.md.tmpl", "README.md", readmeData{
		ProjectName: spec.Name,
		Layers:      layers,
	}); err != nil {
		return err
	}

	return g.renderTo(spec, result, "gitignore.tmpl", ".gitignore", struct{}{})
}

// renderTo renders one template and writes it relative to the scaffold root.
func (g *generator) renderTo(spec *Spec, result *Result, templateName, relPath string, data any) error {
	content, err := g.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("%w: render %s: %v", ErrGenerateFailed, templateName, err)
	}
	dest := filepath.Join(spec.Root(), relPath)
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrGenerateFailed, dest, err)
	}
	result.CreatedFiles = append(result.CreatedFiles, relPath)
	return nil
}
