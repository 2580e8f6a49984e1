// Package packages handles voss.toml manifest parsing, the voss.lock
// file, and fetching GitHub dependencies into the local cache.
package packages

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const ManifestFileName = "voss.toml"

// Manifest is the project manifest (voss.toml).
type Manifest struct {
	Project      ProjectInfo
	Dependencies map[string]Dependency
}

// ProjectInfo is the [project] section.
type ProjectInfo struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description,omitempty"`
}

// Dependency is one entry under [dependencies]. A plain string value is
// a bare version for future registry support; a table picks a source
// explicitly.
type Dependency struct {
	// Simple holds the version when the entry was a bare string.
	Simple string

	GitHub  string
	Git     string
	Path    string
	Version string
}

// GitHubRepo returns the "owner/repo" slug for a GitHub dependency.
func (d Dependency) GitHubRepo() (string, bool) {
	if d.GitHub == "" {
		return "", false
	}
	return d.GitHub, true
}

// LocalPath returns the path for a path dependency.
func (d Dependency) LocalPath() (string, bool) {
	if d.Path == "" {
		return "", false
	}
	return d.Path, true
}

// Ref returns the requested version, branch, tag or commit.
func (d Dependency) Ref() (string, bool) {
	if d.Simple != "" {
		return d.Simple, true
	}
	if d.Version != "" {
		return d.Version, true
	}
	return "", false
}

// rawManifest matches the TOML shape before dependency normalization.
// go-toml cannot express the string-or-table union directly.
type rawManifest struct {
	Project      ProjectInfo            `toml:"project"`
	Dependencies map[string]interface{} `toml:"dependencies"`
}

// ParseManifest decodes manifest text.
func ParseManifest(data []byte) (Manifest, error) {
	var raw rawManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse %s: %w", ManifestFileName, err)
	}

	manifest := Manifest{
		Project:      raw.Project,
		Dependencies: make(map[string]Dependency, len(raw.Dependencies)),
	}

	for name, value := range raw.Dependencies {
		dep, err := normalizeDependency(value)
		if err != nil {
			return Manifest{}, fmt.Errorf("dependency %q: %w", name, err)
		}
		manifest.Dependencies[name] = dep
	}

	return manifest, nil
}

func normalizeDependency(value interface{}) (Dependency, error) {
	switch v := value.(type) {
	case string:
		return Dependency{Simple: v}, nil
	case map[string]interface{}:
		var dep Dependency
		for key, field := range v {
			text, ok := field.(string)
			if !ok {
				return Dependency{}, fmt.Errorf("field %q must be a string", key)
			}
			switch key {
			case "github":
				dep.GitHub = text
			case "git":
				dep.Git = text
			case "path":
				dep.Path = text
			case "version":
				dep.Version = text
			default:
				return Dependency{}, fmt.Errorf("unknown field %q", key)
			}
		}
		return dep, nil
	default:
		return Dependency{}, fmt.Errorf("must be a version string or a table")
	}
}

// LoadManifest reads voss.toml from a project directory. A missing file
// yields an empty manifest, not an error.
func LoadManifest(projectDir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, ManifestFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{Dependencies: make(map[string]Dependency)}, nil
		}
		return Manifest{}, fmt.Errorf("failed to read %s: %w", ManifestFileName, err)
	}
	return ParseManifest(data)
}

// SaveManifest writes voss.toml back to a project directory.
func SaveManifest(projectDir string, manifest Manifest) error {
	raw := rawManifest{
		Project:      manifest.Project,
		Dependencies: make(map[string]interface{}, len(manifest.Dependencies)),
	}

	for name, dep := range manifest.Dependencies {
		if dep.Simple != "" {
			raw.Dependencies[name] = dep.Simple
			continue
		}
		table := make(map[string]interface{})
		if dep.GitHub != "" {
			table["github"] = dep.GitHub
		}
		if dep.Git != "" {
			table["git"] = dep.Git
		}
		if dep.Path != "" {
			table["path"] = dep.Path
		}
		if dep.Version != "" {
			table["version"] = dep.Version
		}
		raw.Dependencies[name] = table
	}

	data, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", ManifestFileName, err)
	}
	if err := os.WriteFile(filepath.Join(projectDir, ManifestFileName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ManifestFileName, err)
	}
	return nil
}
