package repo

import (
	"reflect"
	"testing"
)

func TestStatus_Sections(t *testing.T) {
	r, st := newTestRepo(t)
	commitFiles(t, r, st, "base", map[string]string{
		"clean.txt":    "clean",
		"modified.txt": "v1",
		"deleted.txt":  "here",
		"removed.txt":  "bye",
	})
	mustBranch(t, r, st, "other")

	writeFile(t, r, "modified.txt", "v2")
	deleteFile(t, r, "deleted.txt")
	if err := r.Remove(st, "removed.txt"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	writeFile(t, r, "staged.txt", "s1")
	if err := r.Add(st, "staged.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	writeFile(t, r, "staged.txt", "s2")
	writeFile(t, r, "gone-staged.txt", "g")
	if err := r.Add(st, "gone-staged.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	deleteFile(t, r, "gone-staged.txt")
	writeFile(t, r, "loose.txt", "untracked")
	writeFile(t, r, "sub/nested.txt", "untracked")

	s, err := r.Status(st)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	if s.Current != "master" {
		t.Errorf("Current = %q", s.Current)
	}
	if want := []string{"master", "other"}; !reflect.DeepEqual(s.Branches, want) {
		t.Errorf("Branches = %v, want %v", s.Branches, want)
	}
	if want := []string{"gone-staged.txt", "staged.txt"}; !reflect.DeepEqual(s.Staged, want) {
		t.Errorf("Staged = %v, want %v", s.Staged, want)
	}
	if want := []string{"removed.txt"}; !reflect.DeepEqual(s.Removed, want) {
		t.Errorf("Removed = %v, want %v", s.Removed, want)
	}
	wantUnstaged := []StatusEntry{
		{Path: "deleted.txt", Status: StatusDeleted},
		{Path: "gone-staged.txt", Status: StatusDeleted},
		{Path: "modified.txt", Status: StatusModified},
		{Path: "staged.txt", Status: StatusModified},
	}
	if !reflect.DeepEqual(s.Unstaged, wantUnstaged) {
		t.Errorf("Unstaged = %v, want %v", s.Unstaged, wantUnstaged)
	}
	if want := []string{"loose.txt", "sub/nested.txt"}; !reflect.DeepEqual(s.Untracked, want) {
		t.Errorf("Untracked = %v, want %v", s.Untracked, want)
	}
}

func TestStatus_RecreatedRemovedFileIsUntracked(t *testing.T) {
	r, st := newTestRepo(t)
	commitFiles(t, r, st, "base", map[string]string{"f.txt": "x"})
	if err := r.Remove(st, "f.txt"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	writeFile(t, r, "f.txt", "x")

	s, err := r.Status(st)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !reflect.DeepEqual(s.Untracked, []string{"f.txt"}) {
		t.Errorf("Untracked = %v", s.Untracked)
	}
	if len(s.Unstaged) != 0 {
		t.Errorf("Unstaged = %v, want none", s.Unstaged)
	}
}

func TestStatus_CleanTree(t *testing.T) {
	r, st := newTestRepo(t)
	commitFiles(t, r, st, "base", map[string]string{"f.txt": "x"})
	s, err := r.Status(st)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(s.Staged)+len(s.Removed)+len(s.Unstaged)+len(s.Untracked) != 0 {
		t.Errorf("expected clean status, got %+v", s)
	}
}
