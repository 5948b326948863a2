package repo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odvcencio/gitlet/pkg/object"
)

// newTestRepo initializes a repository in a temp dir with a clock that
// advances one second per commit.
func newTestRepo(t *testing.T) (*Repo, *State) {
	t.Helper()
	r, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	st, err := r.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return r, st
}

func writeFile(t *testing.T, r *Repo, name, content string) {
	t.Helper()
	path := filepath.Join(r.RootDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func readFile(t *testing.T, r *Repo, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func fileExists(r *Repo, name string) bool {
	_, err := os.Stat(filepath.Join(r.RootDir, filepath.FromSlash(name)))
	return err == nil
}

func deleteFile(t *testing.T, r *Repo, name string) {
	t.Helper()
	if err := os.Remove(filepath.Join(r.RootDir, filepath.FromSlash(name))); err != nil {
		t.Fatalf("remove %s: %v", name, err)
	}
}

// commitFiles writes and stages every file, then commits.
func commitFiles(t *testing.T, r *Repo, st *State, msg string, files map[string]string) object.Hash {
	t.Helper()
	for _, name := range sortedKeys(files) {
		writeFile(t, r, name, files[name])
		if err := r.Add(st, name); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}
	h, err := r.Commit(st, msg)
	if err != nil {
		t.Fatalf("Commit(%q): %v", msg, err)
	}
	return h
}

func mustCommit(t *testing.T, r *Repo, h object.Hash) *object.Commit {
	t.Helper()
	c, err := r.Store.GetCommit(h)
	if err != nil {
		t.Fatalf("GetCommit(%s): %v", h, err)
	}
	return c
}

func mustCheckout(t *testing.T, r *Repo, st *State, branch string) {
	t.Helper()
	if err := r.CheckoutBranch(st, branch); err != nil {
		t.Fatalf("CheckoutBranch(%s): %v", branch, err)
	}
}

func mustBranch(t *testing.T, r *Repo, st *State, name string) {
	t.Helper()
	if err := r.CreateBranch(st, name); err != nil {
		t.Fatalf("CreateBranch(%s): %v", name, err)
	}
}
