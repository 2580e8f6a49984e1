package source

import (
	"os"
	"path/filepath"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if !HasGit() {
		t.Skip("git not installed")
	}
}

func initTestRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)

	// Commits need an identity regardless of the machine's git config.
	t.Setenv("GIT_AUTHOR_NAME", "test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	dir := filepath.Join(t.TempDir(), ".voss")
	if err := InitRepo(dir); err != nil {
		t.Fatalf("InitRepo failed: %v", err)
	}

	return dir
}

func TestInitRepo(t *testing.T) {
	dir := initTestRepo(t)

	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		t.Errorf("expected .git directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".gitignore")); err != nil {
		t.Errorf("expected .gitignore: %v", err)
	}

	// A second init is a no-op.
	if err := InitRepo(dir); err != nil {
		t.Errorf("repeated InitRepo failed: %v", err)
	}
}

func TestAddAndCommit(t *testing.T) {
	dir := initTestRepo(t)

	path := filepath.Join(dir, "session.voss")
	if err := os.WriteFile(path, []byte("x = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := AddAndCommit(dir, []string{"session.voss"}, "Save session"); err != nil {
		t.Fatalf("AddAndCommit failed: %v", err)
	}

	info, err := LastCommit(dir)
	if err != nil {
		t.Fatalf("LastCommit failed: %v", err)
	}
	if info.Message != "Save session" {
		t.Errorf("commit message = %q", info.Message)
	}
	if info.Hash == "" || len(info.ShortHash) < 7 {
		t.Errorf("commit hashes = %q, %q", info.Hash, info.ShortHash)
	}
	if info.Author != "test" {
		t.Errorf("commit author = %q", info.Author)
	}
}

func TestAddAndCommitNothingToCommit(t *testing.T) {
	dir := initTestRepo(t)

	// Committing the already committed .gitignore changes nothing.
	if err := AddAndCommit(dir, []string{".gitignore"}, "No changes"); err != nil {
		t.Errorf("AddAndCommit with no changes should succeed: %v", err)
	}
}
