package release

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// versionLdflagPath is the variable the packaged binary's version is stamped into.
const versionLdflagPath = "github.com/layergen/layergen/pkg/version.Version"

// Packager builds the versioned distributable artifact: the CLI binary,
// compiled with the computed version stamped in, plus a VERSION file,
// wrapped in a tar.gz named <package>_<semver>.tar.gz.
type Packager struct {
	runner   CommandRunner
	repoRoot string
	distDir  string
	pkgName  string
}

// NewPackager creates a Packager writing artifacts under distDir.
func NewPackager(runner CommandRunner, repoRoot, distDir, pkgName string) *Packager {
	return &Packager{
		runner:   runner,
		repoRoot: repoRoot,
		distDir:  distDir,
		pkgName:  pkgName,
	}
}

// Package compiles the binary for tag (e.g. "v1.3.0") and returns the
// artifact path.
func (p *Packager) Package(ctx context.Context, tag string) (string, error) {
	if err := os.MkdirAll(p.distDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", p.distDir, err)
	}

	binPath := filepath.Join(p.distDir, p.pkgName)
	ldflags := fmt.Sprintf("-X %s=%s", versionLdflagPath, tag)
	if _, err := p.runner.Run(ctx, p.repoRoot, "go",
		"build", "-ldflags", ldflags, "-o", binPath, "./cmd/"+p.pkgName); err != nil {
		return "", fmt.Errorf("build versioned binary: %w", err)
	}

	versionPath := filepath.Join(p.distDir, "VERSION")
	if err := os.WriteFile(versionPath, []byte(tag+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write VERSION: %w", err)
	}

	semverStr := strings.TrimPrefix(tag, "v")
	artifact := filepath.Join(p.distDir, fmt.Sprintf("%s_%s.tar.gz", p.pkgName, semverStr))
	if err := writeTarGz(artifact, map[string]string{
		p.pkgName: binPath,
		"VERSION": versionPath,
	}); err != nil {
		return "", fmt.Errorf("archive artifact: %w", err)
	}

	return artifact, nil
}

// writeTarGz archives the named files (archive name -> source path).
func writeTarGz(dest string, files map[string]string) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for name, src := range files {
		if err := addTarFile(tw, name, src); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}

// addTarFile writes one file into the archive, preserving its mode.
func addTarFile(tw *tar.Writer, name, src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	hdr := &tar.Header{
		Name: name,
		Mode: int64(info.Mode().Perm()),
		Size: info.Size(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	_, err = io.Copy(tw, in)
	return err
}

// extractTarGz unpacks an artifact into destDir, restoring file modes.
func extractTarGz(artifact, destDir string) error {
	f, err := os.Open(artifact)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("gzip reader: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar entry: %w", err)
		}

		// Reject entries that would escape destDir.
		name := filepath.Clean(hdr.Name)
		if strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
			return fmt.Errorf("unsafe tar entry %q", hdr.Name)
		}

		dest := filepath.Join(destDir, name)
		if hdr.Typeflag == tar.TypeDir {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fs.FileMode(hdr.Mode).Perm())
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, tr); err != nil {
			_ = out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
	}
}
