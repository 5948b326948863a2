package repo

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/odvcencio/gitlet/pkg/merge"
	"github.com/odvcencio/gitlet/pkg/object"
)

// MergeKind is how a merge was resolved.
type MergeKind int

const (
	MergeAlreadyAncestor MergeKind = iota // given branch already in current history
	MergeFastForward                      // current branch moved to the given head
	MergeCommitted                        // merge commit created
)

func (k MergeKind) String() string {
	switch k {
	case MergeAlreadyAncestor:
		return "already-ancestor"
	case MergeFastForward:
		return "fast-forward"
	case MergeCommitted:
		return "committed"
	}
	return fmt.Sprintf("MergeKind(%d)", int(k))
}

// MergeReport is the overall result of a repository-level merge.
type MergeReport struct {
	Kind         MergeKind
	Base         object.Hash      // split point
	Commit       object.Hash      // current head after the merge
	Files        []merge.FilePlan // files the merge changed
	HasConflicts bool
}

// Merge merges branch into the current branch.
//
//  1. Refuse if anything is staged, the branch is missing or current.
//  2. Find the split point. If it is the given head there is nothing to
//     do. If it is the current head, fast-forward the working tree and
//     branch pointer.
//  3. Plan every file tracked by either head against the split point and
//     refuse if an untracked working file would be overwritten.
//  4. Apply the plan, staging each change, and commit with the given head
//     as merge parent. Conflicted files get markers and are committed too.
func (r *Repo) Merge(st *State, branch string) (*MergeReport, error) {
	if !st.Staging.IsEmpty() {
		return nil, ErrUncommittedChanges
	}
	other, ok := st.Heads[branch]
	if !ok {
		return nil, ErrNoSuchBranch
	}
	if branch == st.Branch {
		return nil, ErrMergeWithSelf
	}

	current := st.Head()
	base, err := r.FindSplitPoint(current, other)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	report := &MergeReport{Base: base, Commit: current}

	switch base {
	case other:
		report.Kind = MergeAlreadyAncestor
		return report, nil
	case current:
		if err := r.checkoutCommit(st, other); err != nil {
			return nil, err
		}
		st.SetHead(other)
		report.Kind = MergeFastForward
		report.Commit = other
		log.Debugf("merge: fast-forwarded %s to %s", st.Branch, other.Short(12))
		return report, nil
	}

	baseCommit, err := r.Store.GetCommit(base)
	if err != nil {
		return nil, fmt.Errorf("merge: read split point: %w", err)
	}
	ours, err := r.Store.GetCommit(current)
	if err != nil {
		return nil, fmt.Errorf("merge: read head: %w", err)
	}
	theirs, err := r.Store.GetCommit(other)
	if err != nil {
		return nil, fmt.Errorf("merge: read %s: %w", branch, err)
	}

	plan := merge.Plan(Union(ours, theirs), baseCommit.Tracked, ours.Tracked, theirs.Tracked)

	incoming := make(map[string]object.Hash)
	for _, fp := range plan {
		switch fp.Action() {
		case merge.Checkout, merge.Markers:
			if fp.Theirs != "" {
				incoming[fp.Path] = fp.Theirs
			}
		}
	}
	if err := r.ensureNoUntrackedInWay(ours, st, incoming); err != nil {
		return nil, err
	}

	for _, fp := range plan {
		action := fp.Action()
		if action == merge.Keep {
			continue
		}
		log.WithFields(log.Fields{
			"path":        fp.Path,
			"disposition": fp.Disposition,
			"action":      action,
		}).Debug("merge: apply")

		if err := r.applyMergeAction(st, fp); err != nil {
			return nil, fmt.Errorf("merge %q: %w", fp.Path, err)
		}
		report.Files = append(report.Files, fp)
		if action == merge.Markers {
			report.HasConflicts = true
		}
	}

	msg := fmt.Sprintf("Merged %s into %s.", branch, st.Branch)
	h, err := r.commit(st, msg, other, true)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	report.Kind = MergeCommitted
	report.Commit = h
	return report, nil
}

func (r *Repo) applyMergeAction(st *State, fp merge.FilePlan) error {
	switch fp.Action() {
	case merge.Checkout:
		blob, err := r.Store.GetBlob(fp.Theirs)
		if err != nil {
			return err
		}
		if err := r.writeWorkFile(fp.Path, blob.Data); err != nil {
			return err
		}
		st.Staging.Added[fp.Path] = fp.Theirs

	case merge.Remove:
		if err := r.removeWorkFile(fp.Path); err != nil {
			return err
		}
		st.Staging.Removed[fp.Path] = true

	case merge.Markers:
		ours, err := r.blobData(fp.Ours)
		if err != nil {
			return err
		}
		theirs, err := r.blobData(fp.Theirs)
		if err != nil {
			return err
		}
		data := merge.ConflictMarkers(ours, theirs)
		if err := r.writeWorkFile(fp.Path, data); err != nil {
			return err
		}
		id, err := r.Store.PutBlob(&object.Blob{Filename: fp.Path, Data: data})
		if err != nil {
			return err
		}
		st.Staging.Added[fp.Path] = id
	}
	return nil
}

// blobData returns the content of blob h, or nil for the empty hash.
func (r *Repo) blobData(h object.Hash) ([]byte, error) {
	if h == "" {
		return nil, nil
	}
	blob, err := r.Store.GetBlob(h)
	if err != nil {
		return nil, err
	}
	return blob.Data, nil
}
