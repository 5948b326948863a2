package repo

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// FileStatus is how a working file differs from what the next commit would
// record.
type FileStatus int

const (
	StatusModified FileStatus = iota // working copy differs from head or staged version
	StatusDeleted                    // working copy missing but still tracked or staged
)

func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	}
	return fmt.Sprintf("FileStatus(%d)", int(s))
}

// StatusEntry records one modification that is not staged for commit.
type StatusEntry struct {
	Path   string
	Status FileStatus
}

// Status summarizes branches, the staging area and the working tree.
type Status struct {
	Current   string
	Branches  []string
	Staged    []string
	Removed   []string
	Unstaged  []StatusEntry
	Untracked []string
}

// Status computes the repository status.
//
// A tracked file counts as modified when its working copy differs from the
// head version and the change is not staged, or when it is staged and the
// working copy differs from the staged version. It counts as deleted when it
// is staged but missing, or tracked, not staged for removal, and missing.
// Untracked files are working files that are neither staged nor tracked,
// plus files staged for removal that were re-created.
func (r *Repo) Status(st *State) (*Status, error) {
	head, err := r.Store.GetCommit(st.Head())
	if err != nil {
		return nil, fmt.Errorf("status: read head: %w", err)
	}
	files, err := r.workFiles()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	onDisk := make(map[string]bool, len(files))
	for _, f := range files {
		onDisk[f] = true
	}

	s := &Status{
		Current:  st.Branch,
		Branches: r.ListBranches(st),
		Staged:   st.Staging.AddedFiles(),
		Removed:  st.Staging.RemovedFiles(),
	}

	changed := func(name string, want object.Hash) (bool, error) {
		data, ok, err := r.readWorkFile(name)
		if err != nil || !ok {
			return false, err
		}
		return object.BlobID(name, data) != want, nil
	}

	for _, name := range Union(head, &object.Commit{Tracked: st.Staging.Added}) {
		want, staged := st.Staging.Added[name]
		if !staged {
			if st.Staging.Removed[name] {
				continue
			}
			want = head.Tracked[name]
		}
		if !onDisk[name] {
			s.Unstaged = append(s.Unstaged, StatusEntry{Path: name, Status: StatusDeleted})
			continue
		}
		diff, err := changed(name, want)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		if diff {
			s.Unstaged = append(s.Unstaged, StatusEntry{Path: name, Status: StatusModified})
		}
	}

	for _, name := range files {
		if _, staged := st.Staging.Added[name]; staged {
			continue
		}
		if _, tracked := head.Tracks(name); tracked && !st.Staging.Removed[name] {
			continue
		}
		s.Untracked = append(s.Untracked, name)
	}

	return s, nil
}
