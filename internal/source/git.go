// Package source manages the per-user state directory and its backing
// git repository, so session snapshots carry history.
package source

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommitInfo describes one git commit.
type CommitInfo struct {
	Hash      string
	ShortHash string
	Message   string
	Date      string
	Author    string
}

// InitRepo initializes a git repository in the state directory if one is
// not already there, with a .gitignore and an initial commit.
func InitRepo(stateDir string) error {
	if _, err := os.Stat(filepath.Join(stateDir, ".git")); err == nil {
		return nil
	}

	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", stateDir, err)
	}

	if out, err := runGit(stateDir, "init"); err != nil {
		return fmt.Errorf("git init failed: %s", out)
	}

	gitignore := filepath.Join(stateDir, ".gitignore")
	if err := os.WriteFile(gitignore, []byte("*.tmp\n*.swp\n"), 0o644); err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	return AddAndCommit(stateDir, []string{".gitignore"}, "Initialize state repository")
}

// AddAndCommit stages files and commits them. A commit with nothing to
// commit is not an error.
func AddAndCommit(stateDir string, files []string, message string) error {
	args := append([]string{"add"}, files...)
	if out, err := runGit(stateDir, args...); err != nil {
		return fmt.Errorf("git add failed: %s", out)
	}

	out, err := runGit(stateDir, "commit", "-m", message)
	if err != nil {
		// "nothing to commit" lands on stdout, not stderr.
		if strings.Contains(out, "nothing to commit") {
			return nil
		}
		return fmt.Errorf("git commit failed: %s", out)
	}

	return nil
}

// LastCommit reports the most recent commit of the state repository.
func LastCommit(stateDir string) (CommitInfo, error) {
	out, err := runGit(stateDir, "log", "-1", "--pretty=format:%H%n%h%n%s%n%cI%n%an")
	if err != nil {
		return CommitInfo{}, fmt.Errorf("git log failed: %s", out)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 5 {
		return CommitInfo{}, fmt.Errorf("unexpected git log output: %q", out)
	}

	return CommitInfo{
		Hash:      lines[0],
		ShortHash: lines[1],
		Message:   lines[2],
		Date:      lines[3],
		Author:    lines[4],
	}, nil
}

// HasGit reports whether the git binary is available.
func HasGit() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}
