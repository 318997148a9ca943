package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest searched for next to scripts.
const ManifestFileName = "lox.yml"

// ErrManifestNotFound reports that no lox.yml exists in or above a directory.
var ErrManifestNotFound = errors.New("lox.yml not found")

// Manifest represents the parsed contents of lox.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Entry       string
	Targets     map[string]*TargetSpec
	TargetOrder []string
}

// TargetSpec names a runnable script within the project.
type TargetSpec struct {
	Name string
	Main string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type manifestFile struct {
	Name    string                `yaml:"name"`
	Version string                `yaml:"version"`
	Entry   string                `yaml:"entry"`
	Targets map[string]targetFile `yaml:"targets"`
}

type targetFile struct {
	Main string `yaml:"main"`
}

// LoadManifest parses lox.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	return decodeManifest(file, absPath)
}

func decodeManifest(r io.Reader, path string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", path)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}

	manifest := &Manifest{
		Path:    path,
		Name:    raw.Name,
		Version: raw.Version,
		Entry:   raw.Entry,
		Targets: make(map[string]*TargetSpec, len(raw.Targets)),
	}
	for name, target := range raw.Targets {
		manifest.Targets[name] = &TargetSpec{Name: name, Main: target.Main}
		manifest.TargetOrder = append(manifest.TargetOrder, name)
	}
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Entry == "" && len(m.Targets) == 0 {
		errs.Issues = append(errs.Issues, "either entry or at least one target must be provided")
	}
	for name, target := range m.Targets {
		if name == "" {
			errs.Issues = append(errs.Issues, "targets must not use empty keys")
			continue
		}
		if target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main script", name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Dir returns the directory holding the manifest. Relative script paths
// resolve against it.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// DefaultTarget resolves the script to run when none is named: the entry
// script when set, otherwise the project's sole target.
func (m *Manifest) DefaultTarget() (string, error) {
	if m.Entry != "" {
		return filepath.Join(m.Dir(), m.Entry), nil
	}
	if len(m.TargetOrder) == 1 {
		return filepath.Join(m.Dir(), m.Targets[m.TargetOrder[0]].Main), nil
	}
	return "", fmt.Errorf("manifest %s has no entry and %d targets; name one explicitly", m.Path, len(m.Targets))
}

// FindTarget resolves a named target to its script path.
func (m *Manifest) FindTarget(name string) (string, bool) {
	target, ok := m.Targets[name]
	if !ok {
		return "", false
	}
	return filepath.Join(m.Dir(), target.Main), true
}

// FindManifest walks upward from dir looking for lox.yml.
func FindManifest(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrManifestNotFound
		}
		current = parent
	}
}
