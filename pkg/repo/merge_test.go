package repo

import (
	"errors"
	"strings"
	"testing"

	"github.com/odvcencio/gitlet/pkg/merge"
)

// setupDiverged commits base on master, creates other, then applies the
// given changes on each branch. It leaves master checked out.
func setupDiverged(t *testing.T, base, ours, theirs map[string]string, removeOurs, removeTheirs []string) (*Repo, *State) {
	t.Helper()
	r, st := newTestRepo(t)
	commitFiles(t, r, st, "base", base)
	mustBranch(t, r, st, "other")

	apply := func(files map[string]string, removed []string, msg string) {
		for _, name := range removed {
			if err := r.Remove(st, name); err != nil {
				t.Fatalf("Remove(%s): %v", name, err)
			}
		}
		commitFiles(t, r, st, msg, files)
	}
	apply(ours, removeOurs, "ours")
	mustCheckout(t, r, st, "other")
	apply(theirs, removeTheirs, "theirs")
	mustCheckout(t, r, st, "master")
	return r, st
}

func TestMerge_ConflictScenario(t *testing.T) {
	r, st := setupDiverged(t,
		map[string]string{"f": "1"},
		map[string]string{"f": "2"},
		map[string]string{"f": "3"},
		nil, nil)
	ours, theirs := st.Head(), st.Heads["other"]

	rep, err := r.Merge(st, "other")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if rep.Kind != MergeCommitted || !rep.HasConflicts {
		t.Fatalf("report = %+v, want committed with conflicts", rep)
	}

	got := readFile(t, r, "f")
	if got != "<<<<<<< HEAD\n2=======\n3>>>>>>>\n" {
		t.Errorf("f = %q", got)
	}
	if !strings.Contains(got, "2") || !strings.Contains(got, "3") || !merge.HasConflictMarkers([]byte(got)) {
		t.Errorf("conflict file lacks both sides: %q", got)
	}

	c := mustCommit(t, r, st.Head())
	if c.Parent != ours || c.MergeParent != theirs {
		t.Errorf("parents = %s, %s; want %s, %s", c.Parent, c.MergeParent, ours, theirs)
	}
	if c.Message != "Merged other into master." {
		t.Errorf("Message = %q", c.Message)
	}
	if !st.Staging.IsEmpty() {
		t.Error("staging not cleared by merge commit")
	}
}

func TestMerge_TakesTheirsAndKeepsOurs(t *testing.T) {
	r, st := setupDiverged(t,
		map[string]string{"theirs-mod": "b", "ours-mod": "b", "theirs-del": "b", "same": "b"},
		map[string]string{"ours-mod": "o", "ours-add": "o", "same": "s"},
		map[string]string{"theirs-mod": "t", "theirs-add": "t", "same": "s"},
		nil, []string{"theirs-del"})

	rep, err := r.Merge(st, "other")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if rep.HasConflicts {
		t.Fatalf("unexpected conflict: %+v", rep.Files)
	}

	want := map[string]string{
		"theirs-mod": "t",
		"theirs-add": "t",
		"ours-mod":   "o",
		"ours-add":   "o",
		"same":       "s",
	}
	for name, content := range want {
		if got := readFile(t, r, name); got != content {
			t.Errorf("%s = %q, want %q", name, got, content)
		}
	}
	if fileExists(r, "theirs-del") {
		t.Error("theirs-del should be removed")
	}

	c := mustCommit(t, r, rep.Commit)
	if len(c.Tracked) != len(want) {
		t.Errorf("merge commit tracks %v", c.Filenames())
	}
	if _, ok := c.Tracks("theirs-del"); ok {
		t.Error("merge commit still tracks theirs-del")
	}
}

func TestMerge_DeleteVsModifyConflict(t *testing.T) {
	r, st := setupDiverged(t,
		map[string]string{"f": "base\n"},
		map[string]string{"g": "g"},
		map[string]string{"f": "changed\n"},
		[]string{"f"}, nil)

	rep, err := r.Merge(st, "other")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !rep.HasConflicts {
		t.Fatal("expected conflict")
	}
	if got := readFile(t, r, "f"); got != "<<<<<<< HEAD\n=======\nchanged\n>>>>>>>\n" {
		t.Errorf("f = %q", got)
	}
}

func TestMerge_AlreadyAncestor(t *testing.T) {
	r, st := newTestRepo(t)
	mustBranch(t, r, st, "old")
	h := commitFiles(t, r, st, "ahead", map[string]string{"f": "x"})

	rep, err := r.Merge(st, "old")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if rep.Kind != MergeAlreadyAncestor {
		t.Fatalf("Kind = %v, want already-ancestor", rep.Kind)
	}
	if st.Head() != h {
		t.Error("head moved")
	}
}

func TestMerge_FastForward(t *testing.T) {
	r, st := newTestRepo(t)
	mustBranch(t, r, st, "ahead")
	mustCheckout(t, r, st, "ahead")
	h := commitFiles(t, r, st, "ahead", map[string]string{"f": "x"})
	mustCheckout(t, r, st, "master")

	before, err := r.Store.ListCommits()
	if err != nil {
		t.Fatalf("ListCommits: %v", err)
	}
	rep, err := r.Merge(st, "ahead")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if rep.Kind != MergeFastForward {
		t.Fatalf("Kind = %v, want fast-forward", rep.Kind)
	}
	if st.Head() != h {
		t.Errorf("head = %s, want %s", st.Head(), h)
	}
	if got := readFile(t, r, "f"); got != "x" {
		t.Errorf("f = %q, want x", got)
	}
	after, err := r.Store.ListCommits()
	if err != nil {
		t.Fatalf("ListCommits: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("fast-forward created a commit: %d -> %d", len(before), len(after))
	}
}

func TestMerge_Preconditions(t *testing.T) {
	r, st := newTestRepo(t)
	mustBranch(t, r, st, "other")

	if _, err := r.Merge(st, "missing"); !errors.Is(err, ErrNoSuchBranch) {
		t.Errorf("missing branch error = %v", err)
	}
	if _, err := r.Merge(st, "master"); !errors.Is(err, ErrMergeWithSelf) {
		t.Errorf("self merge error = %v", err)
	}

	writeFile(t, r, "f", "x")
	if err := r.Add(st, "f"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Merge(st, "other"); !errors.Is(err, ErrUncommittedChanges) {
		t.Errorf("staged changes error = %v", err)
	}
}

func TestMerge_UntrackedFileInWay(t *testing.T) {
	r, st := setupDiverged(t,
		map[string]string{"f": "1"},
		map[string]string{"f": "2"},
		map[string]string{"new": "theirs"},
		nil, nil)
	head := st.Head()
	writeFile(t, r, "new", "precious")

	if _, err := r.Merge(st, "other"); !errors.Is(err, ErrUntrackedFileInWay) {
		t.Fatalf("Merge error = %v, want ErrUntrackedFileInWay", err)
	}
	if st.Head() != head || !st.Staging.IsEmpty() {
		t.Error("state mutated by refused merge")
	}
	if got := readFile(t, r, "new"); got != "precious" {
		t.Errorf("new = %q", got)
	}
}
