package repo

import (
	"reflect"
	"testing"

	"github.com/odvcencio/gitlet/pkg/object"
)

func TestFindSplitPoint_LinearHistory(t *testing.T) {
	r, st := newTestRepo(t)
	commitFiles(t, r, st, "A", map[string]string{"f.txt": "a"})
	b := commitFiles(t, r, st, "B", map[string]string{"f.txt": "b"})
	mustBranch(t, r, st, "d")
	c := commitFiles(t, r, st, "C", map[string]string{"f.txt": "c"})

	mustCheckout(t, r, st, "d")
	d := commitFiles(t, r, st, "D", map[string]string{"g.txt": "d"})

	split, err := r.FindSplitPoint(c, d)
	if err != nil {
		t.Fatalf("FindSplitPoint: %v", err)
	}
	if split != b {
		t.Fatalf("split = %s, want B %s", split, b)
	}

	// Symmetric for this history.
	split, err = r.FindSplitPoint(d, c)
	if err != nil {
		t.Fatalf("FindSplitPoint: %v", err)
	}
	if split != b {
		t.Fatalf("reverse split = %s, want B %s", split, b)
	}
}

func TestFindSplitPoint_Ancestors(t *testing.T) {
	r, st := newTestRepo(t)
	a := commitFiles(t, r, st, "A", map[string]string{"f.txt": "a"})
	b := commitFiles(t, r, st, "B", map[string]string{"f.txt": "b"})

	cases := []struct {
		current, other, want object.Hash
	}{
		{b, a, a},
		{a, b, a},
		{b, b, b},
	}
	for _, tc := range cases {
		got, err := r.FindSplitPoint(tc.current, tc.other)
		if err != nil {
			t.Fatalf("FindSplitPoint: %v", err)
		}
		if got != tc.want {
			t.Errorf("FindSplitPoint(%s, %s) = %s, want %s", tc.current.Short(8), tc.other.Short(8), got.Short(8), tc.want.Short(8))
		}
	}
}

// After merging other into master, a later merge of other must use the
// merged commit as split point, which only the merge parent edge reaches.
func TestFindSplitPoint_FollowsMergeParents(t *testing.T) {
	r, st := newTestRepo(t)
	commitFiles(t, r, st, "A", map[string]string{"f.txt": "a"})
	mustBranch(t, r, st, "other")
	commitFiles(t, r, st, "master 1", map[string]string{"m.txt": "1"})

	mustCheckout(t, r, st, "other")
	o1 := commitFiles(t, r, st, "other 1", map[string]string{"o.txt": "1"})

	mustCheckout(t, r, st, "master")
	rep, err := r.Merge(st, "other")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if rep.Kind != MergeCommitted {
		t.Fatalf("merge kind = %v, want committed", rep.Kind)
	}
	m2 := commitFiles(t, r, st, "master 2", map[string]string{"m.txt": "2"})

	mustCheckout(t, r, st, "other")
	o2 := commitFiles(t, r, st, "other 2", map[string]string{"o.txt": "2"})

	split, err := r.FindSplitPoint(m2, o2)
	if err != nil {
		t.Fatalf("FindSplitPoint: %v", err)
	}
	if split != o1 {
		t.Fatalf("split = %s, want merged commit %s", split, o1)
	}
}

func TestFindSplitPoint_CurrentReachableThroughMerge(t *testing.T) {
	r, st := newTestRepo(t)
	root := st.Head()
	mustBranch(t, r, st, "side")
	x := commitFiles(t, r, st, "X", map[string]string{"x.txt": "x"})

	// side merges master in, so master's head is an ancestor of side.
	mustCheckout(t, r, st, "side")
	commitFiles(t, r, st, "S", map[string]string{"s.txt": "s"})
	if _, err := r.Merge(st, "master"); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	split, err := r.FindSplitPoint(x, st.Head())
	if err != nil {
		t.Fatalf("FindSplitPoint: %v", err)
	}
	if split != x {
		t.Fatalf("split = %s, want current head %s (root is %s)", split, x, root)
	}
}

func TestIsAncestor(t *testing.T) {
	r, st := newTestRepo(t)
	root := st.Head()
	a := commitFiles(t, r, st, "A", map[string]string{"f.txt": "a"})
	mustBranch(t, r, st, "side")
	b := commitFiles(t, r, st, "B", map[string]string{"f.txt": "b"})
	mustCheckout(t, r, st, "side")
	s := commitFiles(t, r, st, "S", map[string]string{"g.txt": "s"})

	cases := []struct {
		anc, desc object.Hash
		want      bool
	}{
		{root, b, true},
		{a, b, true},
		{b, a, false},
		{a, a, true},
		{b, s, false},
		{a, s, true},
	}
	for _, tc := range cases {
		got, err := r.IsAncestor(tc.anc, tc.desc)
		if err != nil {
			t.Fatalf("IsAncestor: %v", err)
		}
		if got != tc.want {
			t.Errorf("IsAncestor(%s, %s) = %v, want %v", tc.anc.Short(8), tc.desc.Short(8), got, tc.want)
		}
	}
}

func TestUnion(t *testing.T) {
	a := &object.Commit{Tracked: map[string]object.Hash{"b": "1", "a": "2"}}
	b := &object.Commit{Tracked: map[string]object.Hash{"c": "3", "a": "4"}}
	got := Union(a, b, nil)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Union = %v, want %v", got, want)
	}
}
