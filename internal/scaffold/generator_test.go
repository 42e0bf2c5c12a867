package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func generate(t *testing.T, name string) (*Spec, *Result) {
	t.Helper()
	out := t.TempDir()
	spec, err := NewSpec(name, out)
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}
	result, err := NewGenerator(nil).Generate(context.Background(), spec)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return spec, result
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestGenerate_TreeLayout(t *testing.T) {
	spec, result := generate(t, "ShopFloor")

	wantDirs := []string{
		"ShopFloor.Domain",
		"ShopFloor.Application",
		"ShopFloor.Infrastructure.Persistence",
		"ShopFloor.API",
		"ShopFloor.UnitTests",
		"ShopFloor.IntegrationTests",
	}
	for _, dir := range wantDirs {
		info, err := os.Stat(filepath.Join(spec.Root(), dir))
		if err != nil || !info.IsDir() {
			t.Errorf("sub-project directory %s missing: %v", dir, err)
		}
		if _, err := os.Stat(filepath.Join(spec.Root(), dir, "go.mod")); err != nil {
			t.Errorf("sub-project manifest %s/go.mod missing: %v", dir, err)
		}
	}
	if len(result.CreatedDirs) != len(wantDirs) {
		t.Errorf("CreatedDirs = %v", result.CreatedDirs)
	}
}

func TestGenerate_SolutionManifestReferencesAll(t *testing.T) {
	spec, _ := generate(t, "ShopFloor")

	work := readFile(t, filepath.Join(spec.Root(), "go.work"))
	for _, sp := range spec.SubProjects {
		use := "./" + spec.Dir(sp)
		if n := strings.Count(work, use+"\n"); n != 1 {
			t.Errorf("go.work references %s %d times, want exactly 1\n%s", use, n, work)
		}
	}
}

func TestGenerate_LayeringEdges(t *testing.T) {
	spec, _ := generate(t, "ShopFloor")

	domainMod := readFile(t, filepath.Join(spec.Root(), "ShopFloor.Domain", "go.mod"))
	if strings.Contains(domainMod, "require") {
		t.Errorf("Domain manifest must declare no dependencies:\n%s", domainMod)
	}

	appMod := readFile(t, filepath.Join(spec.Root(), "ShopFloor.Application", "go.mod"))
	if !strings.Contains(appMod, "example.com/shopfloor/domain v0.0.0") {
		t.Errorf("Application manifest missing domain require:\n%s", appMod)
	}
	if !strings.Contains(appMod, "example.com/shopfloor/domain => ../ShopFloor.Domain") {
		t.Errorf("Application manifest missing domain replace:\n%s", appMod)
	}

	apiMod := readFile(t, filepath.Join(spec.Root(), "ShopFloor.API", "go.mod"))
	for _, dep := range []string{"example.com/shopfloor/application", "example.com/shopfloor/persistence"} {
		if !strings.Contains(apiMod, dep) {
			t.Errorf("API manifest missing %s:\n%s", dep, apiMod)
		}
	}
}

func TestGenerate_SourcesVerifyGraph(t *testing.T) {
	spec, _ := generate(t, "ShopFloor")

	appDoc := readFile(t, filepath.Join(spec.Root(), "ShopFloor.Application", "doc.go"))
	if !strings.Contains(appDoc, `_ "example.com/shopfloor/domain"`) {
		t.Errorf("Application doc.go does not import domain:\n%s", appDoc)
	}
	if !strings.Contains(appDoc, "package application") {
		t.Errorf("Application doc.go wrong package:\n%s", appDoc)
	}

	apiMain := readFile(t, filepath.Join(spec.Root(), "ShopFloor.API", "main.go"))
	if !strings.Contains(apiMain, "package main") {
		t.Errorf("API main.go is not package main:\n%s", apiMain)
	}

	unitDoc := readFile(t, filepath.Join(spec.Root(), "ShopFloor.UnitTests", "doc.go"))
	for _, dep := range []string{"example.com/shopfloor/domain", "example.com/shopfloor/application"} {
		if !strings.Contains(unitDoc, `_ "`+dep+`"`) {
			t.Errorf("UnitTests doc.go does not import %s:\n%s", dep, unitDoc)
		}
	}

	unitTest := readFile(t, filepath.Join(spec.Root(), "ShopFloor.UnitTests", "placeholder_test.go"))
	if !strings.Contains(unitTest, "package unittests") {
		t.Errorf("UnitTests placeholder has wrong package:\n%s", unitTest)
	}
	if !strings.Contains(unitTest, "func TestScaffold(t *testing.T)") {
		t.Errorf("UnitTests placeholder has no test func:\n%s", unitTest)
	}
}

func TestGenerate_RootFiles(t *testing.T) {
	spec, _ := generate(t, "ShopFloor")

	readme := readFile(t, filepath.Join(spec.Root(), "README.md"))
	if !strings.Contains(readme, "# ShopFloor") {
		t.Errorf("README missing title:\n%s", readme)
	}
	if _, err := os.Stat(filepath.Join(spec.Root(), ".gitignore")); err != nil {
		t.Errorf(".gitignore missing: %v", err)
	}
}

func TestGenerate_ExistingTargetFails(t *testing.T) {
	out := t.TempDir()
	spec, err := NewSpec("Shop", out)
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}
	gen := NewGenerator(nil)

	if _, err := gen.Generate(context.Background(), spec); err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	if _, err := gen.Generate(context.Background(), spec); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("second Generate = %v, want ErrAlreadyExists", err)
	}
}

func TestGenerate_TargetIsFile(t *testing.T) {
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(out, "Shop"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := NewSpec("Shop", out)
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	if _, err := NewGenerator(nil).Generate(context.Background(), spec); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("Generate = %v, want ErrAlreadyExists", err)
	}
}

func TestGenerate_EmptyExistingTargetSucceeds(t *testing.T) {
	out := t.TempDir()
	if err := os.MkdirAll(filepath.Join(out, "Shop"), 0o755); err != nil {
		t.Fatal(err)
	}
	spec, err := NewSpec("Shop", out)
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	if _, err := NewGenerator(nil).Generate(context.Background(), spec); err != nil {
		t.Errorf("Generate into empty existing dir: %v", err)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	spec, err := NewSpec("Shop", t.TempDir())
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewGenerator(nil).Generate(ctx, spec); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate with cancelled ctx = %v, want context.Canceled", err)
	}
}
