package repo

import (
	log "github.com/sirupsen/logrus"
)

// CreateBranch adds a branch named name pointing at the current head. It
// does not switch to it.
func (r *Repo) CreateBranch(st *State, name string) error {
	if st.HasBranch(name) {
		return ErrBranchAlreadyExists
	}
	if !validRefName(name) {
		return ErrInvalidBranchName
	}
	if st.BranchNameConflict(name) {
		return ErrInvalidBranchName
	}
	st.SetBranch(name, st.Head())
	log.Debugf("branch %s created at %s", name, st.Head().Short(12))
	return nil
}

// DeleteBranch removes the branch pointer name. The commits it pointed to
// stay in the store.
func (r *Repo) DeleteBranch(st *State, name string) error {
	if name == st.Branch {
		return ErrCannotRemoveCurrentBranch
	}
	if !st.HasBranch(name) {
		return ErrNoSuchBranch
	}
	st.dropBranch(name)
	log.Debugf("branch %s removed", name)
	return nil
}

// ListBranches returns every branch name, sorted.
func (r *Repo) ListBranches(st *State) []string {
	return sortedKeys(st.Heads)
}
