package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestWithEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo
version: 0.1.0
entry: main.lox
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manifest.Name != "demo" || manifest.Version != "0.1.0" || manifest.Entry != "main.lox" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
	if manifest.Dir() != dir {
		t.Fatalf("expected dir %s, got %s", dir, manifest.Dir())
	}
}

func TestLoadManifestWithTargets(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo
targets:
  server:
    main: server.lox
  worker:
    main: worker.lox
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(manifest.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(manifest.Targets))
	}
	script, ok := manifest.FindTarget("worker")
	if !ok {
		t.Fatal("worker target missing")
	}
	if script != filepath.Join(dir, "worker.lox") {
		t.Fatalf("unexpected script path %s", script)
	}
	if _, ok := manifest.FindTarget("nope"); ok {
		t.Fatal("expected lookup miss for unknown target")
	}
}

func TestDefaultTargetPrefersEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo
entry: main.lox
targets:
  other:
    main: other.lox
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	script, err := manifest.DefaultTarget()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script != filepath.Join(dir, "main.lox") {
		t.Fatalf("unexpected default %s", script)
	}
}

func TestDefaultTargetFallsBackToSoleTarget(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo
targets:
  only:
    main: only.lox
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	script, err := manifest.DefaultTarget()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script != filepath.Join(dir, "only.lox") {
		t.Fatalf("unexpected default %s", script)
	}
}

func TestDefaultTargetAmbiguous(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo
targets:
  a:
    main: a.lox
  b:
    main: b.lox
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := manifest.DefaultTarget(); err == nil {
		t.Fatal("expected error for ambiguous default target")
	}
}

func TestLoadManifestValidation(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		issue    string
	}{
		{
			name:     "missing name",
			contents: "entry: main.lox\n",
			issue:    "name must be provided",
		},
		{
			name:     "no entry or targets",
			contents: "name: demo\n",
			issue:    "either entry or at least one target must be provided",
		},
		{
			name: "target without main",
			contents: `
name: demo
targets:
  broken: {}
`,
			issue: `target "broken" requires a main script`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.contents)
			_, err := LoadManifest(path)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(vErr.Error(), tc.issue) {
				t.Fatalf("expected issue %q in %q", tc.issue, vErr.Error())
			}
		})
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
name: demo
entry: main.lox
mystery: true
`)
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadManifestEmptyFile(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "")
	_, err := LoadManifest(path)
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty-manifest error, got %v", err)
	}
}

func TestFindManifestWalksUpward(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "name: demo\nentry: main.lox\n")

	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != path {
		t.Fatalf("expected %s, got %s", path, found)
	}
}

func TestFindManifestNotFound(t *testing.T) {
	_, err := FindManifest(t.TempDir())
	if !errors.Is(err, ErrManifestNotFound) {
		t.Fatalf("expected ErrManifestNotFound, got %v", err)
	}
}
