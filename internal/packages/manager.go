package packages

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/voss-lang/voss/internal/config"
)

// MetaFileName marks a cache directory as a fully fetched package.
const MetaFileName = ".voss-pkg"

const userAgent = "voss-package-manager"

// PackageManager fetches and caches dependencies under
// ~/.voss/packages/github.com/<owner>/<repo>/<ref>/.
type PackageManager struct {
	cacheDir   string
	defaultRef string
	client     *http.Client
	index      *Index

	// Overridable for tests.
	apiBase string
	rawBase string
}

func NewPackageManager(cfg *config.Tooling) *PackageManager {
	cacheDir := filepath.Join(config.StateDir(), "packages")
	defaultRef := "master"
	if cfg != nil {
		if cfg.CacheDir != "" {
			cacheDir = cfg.CacheDir
		}
		if cfg.DefaultRef != "" {
			defaultRef = cfg.DefaultRef
		}
	}
	return &PackageManager{
		cacheDir:   cacheDir,
		defaultRef: defaultRef,
		client:     &http.Client{Timeout: 30 * time.Second},
		apiBase:    "https://api.github.com",
		rawBase:    "https://raw.githubusercontent.com",
	}
}

// WithCacheDir overrides the cache location.
func (pm *PackageManager) WithCacheDir(dir string) *PackageManager {
	pm.cacheDir = dir
	return pm
}

// SetIndex attaches a cache index; fetches are recorded into it.
func (pm *PackageManager) SetIndex(index *Index) {
	pm.index = index
}

// packageMeta is stored in .voss-pkg inside each cached package.
type packageMeta struct {
	Name      string `toml:"name"`
	Source    string `toml:"source"`
	Version   string `toml:"version"`
	FetchedAt string `toml:"fetched_at"`
}

// gitHubFile is one entry of the GitHub contents API response.
type gitHubFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// EnsureDependency makes sure a dependency is available locally and
// returns its directory.
func (pm *PackageManager) EnsureDependency(name string, dep Dependency) (string, error) {
	if path, ok := dep.LocalPath(); ok {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("path dependency not found: %s", path)
		}
		return path, nil
	}

	if repo, ok := dep.GitHubRepo(); ok {
		ref, hasRef := dep.Ref()
		if !hasRef {
			ref = pm.defaultRef
		}
		return pm.fetchGitHub(name, repo, ref)
	}

	return "", fmt.Errorf("dependency %q has no source specified", name)
}

func (pm *PackageManager) fetchGitHub(name, repo, ref string) (string, error) {
	cachePath := filepath.Join(pm.cacheDir, "github.com", filepath.FromSlash(repo), ref)

	if packageComplete(cachePath) {
		log.Printf("Using cached package: %s", name)
		return cachePath, nil
	}

	log.Printf("Fetching package: %s from github.com/%s (%s)", name, repo, ref)

	if err := os.MkdirAll(cachePath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := pm.downloadSources(repo, ref, cachePath); err != nil {
		return "", err
	}

	meta := packageMeta{
		Name:      name,
		Source:    "github.com/" + repo,
		Version:   ref,
		FetchedAt: strconv.FormatInt(time.Now().Unix(), 10),
	}
	data, err := toml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to serialize metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(cachePath, MetaFileName), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	if pm.index != nil {
		if err := pm.index.RecordFetch(name, meta.Source, ref, cachePath); err != nil {
			log.Printf("cache index: %v", err)
		}
	}

	return cachePath, nil
}

// downloadSources pulls the repository's source files one by one via
// the raw host; the contents API supplies the file list. Simpler than
// unpacking tarballs, and packages are flat by convention.
func (pm *PackageManager) downloadSources(repo, ref, dest string) error {
	apiURL := fmt.Sprintf("%s/repos/%s/contents?ref=%s", pm.apiBase, repo, ref)

	body, err := pm.get(apiURL)
	if err != nil {
		return fmt.Errorf("failed to fetch file list: %w", err)
	}

	var files []gitHubFile
	if err := json.Unmarshal(body, &files); err != nil {
		return fmt.Errorf("failed to parse GitHub API response: %w", err)
	}

	for _, file := range files {
		if file.Type != "" && file.Type != "file" {
			continue
		}
		if !isSourceFile(file.Name) {
			continue
		}

		rawURL := fmt.Sprintf("%s/%s/%s/%s", pm.rawBase, repo, ref, file.Name)
		log.Printf("  Downloading: %s", file.Name)

		content, err := pm.get(rawURL)
		if err != nil {
			return fmt.Errorf("failed to download %s: %w", file.Name, err)
		}
		if err := os.WriteFile(filepath.Join(dest, file.Name), content, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Name, err)
		}
	}

	return nil
}

func (pm *PackageManager) get(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := pm.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// CachedPath returns the directory of an already fetched dependency.
func (pm *PackageManager) CachedPath(dep Dependency) (string, bool) {
	if path, ok := dep.LocalPath(); ok {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		return "", false
	}

	repo, ok := dep.GitHubRepo()
	if !ok {
		return "", false
	}
	ref, hasRef := dep.Ref()
	if !hasRef {
		ref = pm.defaultRef
	}

	cachePath := filepath.Join(pm.cacheDir, "github.com", filepath.FromSlash(repo), ref)
	if packageComplete(cachePath) {
		return cachePath, true
	}
	return "", false
}

// ListPackageFiles lists the source files of a fetched package.
func ListPackageFiles(packagePath string) ([]string, error) {
	entries, err := os.ReadDir(packagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read package directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isSourceFile(entry.Name()) {
			files = append(files, filepath.Join(packagePath, entry.Name()))
		}
	}
	return files, nil
}

func packageComplete(cachePath string) bool {
	_, err := os.Stat(filepath.Join(cachePath, MetaFileName))
	return err == nil
}

func isSourceFile(name string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
