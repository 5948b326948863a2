package merge

import (
	"bytes"
	"testing"

	"github.com/odvcencio/gitlet/pkg/object"
)

func TestClassify(t *testing.T) {
	const (
		a object.Hash = "a"
		b object.Hash = "b"
		c object.Hash = "c"
	)
	tests := []struct {
		name               string
		base, ours, theirs object.Hash
		want               Disposition
		action             Action
	}{
		{"unchanged", a, a, a, Unchanged, Keep},
		{"ours only", a, b, a, OursOnly, Keep},
		{"theirs only", a, a, b, TheirsOnly, Checkout},
		{"both same", a, b, b, BothSame, Keep},
		{"both differ", a, b, c, Conflict, Markers},
		{"deleted in theirs", a, a, "", DeletedTheirs, Remove},
		{"deleted in ours", a, "", a, DeletedOurs, Keep},
		{"modified ours deleted theirs", a, b, "", DeleteVsModify, Markers},
		{"deleted ours modified theirs", a, "", b, DeleteVsModify, Markers},
		{"deleted both", a, "", "", Unchanged, Keep},
		{"added ours", "", a, "", AddedOurs, Keep},
		{"added theirs", "", "", a, AddedTheirs, Checkout},
		{"added both same", "", a, a, BothSame, Keep},
		{"added both differ", "", a, b, Conflict, Markers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.base, tt.ours, tt.theirs)
			if got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
			if got.Action() != tt.action {
				t.Errorf("Action = %s, want %s", got.Action(), tt.action)
			}
		})
	}
}

func TestPlanKeepsPathOrder(t *testing.T) {
	base := map[string]object.Hash{"f": "1", "g": "1"}
	ours := map[string]object.Hash{"f": "2", "g": "1"}
	theirs := map[string]object.Hash{"f": "3", "h": "9"}

	plan := Plan([]string{"f", "g", "h"}, base, ours, theirs)
	if len(plan) != 3 {
		t.Fatalf("len(plan) = %d, want 3", len(plan))
	}
	want := []Action{Markers, Remove, Checkout}
	for i, fp := range plan {
		if fp.Action() != want[i] {
			t.Errorf("%s: action = %s, want %s", fp.Path, fp.Action(), want[i])
		}
	}
}

func TestConflictMarkers(t *testing.T) {
	got := ConflictMarkers([]byte("2\n"), []byte("3\n"))
	want := []byte("<<<<<<< HEAD\n2\n=======\n3\n>>>>>>>\n")
	if !bytes.Equal(got, want) {
		t.Errorf("ConflictMarkers = %q, want %q", got, want)
	}
	if !HasConflictMarkers(got) {
		t.Error("HasConflictMarkers should recognise marker output")
	}

	// A deleted side contributes an empty section.
	got = ConflictMarkers(nil, []byte("theirs\n"))
	if !bytes.Equal(got, []byte("<<<<<<< HEAD\n=======\ntheirs\n>>>>>>>\n")) {
		t.Errorf("ConflictMarkers(nil, theirs) = %q", got)
	}
	if HasConflictMarkers([]byte("plain\n")) {
		t.Error("plain content reported as conflicted")
	}
}
