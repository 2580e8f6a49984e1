package packages

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	LockFileName      = "voss.lock"
	lockSchemaVersion = "1"
)

// LockFile records the resolved ref of every dependency so a later fetch
// reproduces the same tree.
type LockFile struct {
	SchemaVersion string            `toml:"schema_version"`
	Dependencies  map[string]string `toml:"dependencies"`
}

// LoadLock reads voss.lock from a project directory. A missing file
// yields nil, nil.
func LoadLock(projectDir string) (*LockFile, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, LockFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lock file: %w", err)
	}

	var lf LockFile
	if err := toml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse lock file: %w", err)
	}
	if lf.Dependencies == nil {
		lf.Dependencies = make(map[string]string)
	}
	return &lf, nil
}

// SaveLock writes voss.lock to a project directory.
func SaveLock(projectDir string, lf *LockFile) error {
	if lf == nil {
		return fmt.Errorf("lock file is nil")
	}
	if lf.SchemaVersion == "" {
		lf.SchemaVersion = lockSchemaVersion
	}
	if lf.Dependencies == nil {
		lf.Dependencies = make(map[string]string)
	}

	data, err := toml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("failed to marshal lock file: %w", err)
	}
	if err := os.WriteFile(filepath.Join(projectDir, LockFileName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	return nil
}

// LockedRef returns the locked ref for a dependency, or "".
func (l *LockFile) LockedRef(name string) string {
	if l == nil || l.Dependencies == nil {
		return ""
	}
	return l.Dependencies[name]
}

// SetLockedRef records the resolved ref for a dependency.
func (l *LockFile) SetLockedRef(name, ref string) {
	if l.Dependencies == nil {
		l.Dependencies = make(map[string]string)
	}
	l.Dependencies[name] = ref
}
