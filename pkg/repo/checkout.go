package repo

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/odvcencio/gitlet/pkg/object"
)

// CheckoutFile overwrites the working copy of filename with the version in
// the commit named by prefix, or in the current head when prefix is empty.
// The staging area is left alone.
func (r *Repo) CheckoutFile(st *State, prefix, filename string) error {
	id := st.Head()
	if prefix != "" {
		var err error
		if id, err = r.FindCommit(prefix); err != nil {
			return err
		}
	}
	c, err := r.Store.GetCommit(id)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	name, err := r.RelPath(filename)
	if err != nil {
		return err
	}
	blobID, ok := c.Tracks(name)
	if !ok {
		return ErrFileNotInCommit
	}
	blob, err := r.Store.GetBlob(blobID)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := r.writeWorkFile(name, blob.Data); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return nil
}

// CheckoutBranch replaces the working tree with the head of branch name and
// makes it the current branch.
func (r *Repo) CheckoutBranch(st *State, name string) error {
	target, ok := st.Heads[name]
	if !ok {
		return ErrNoSuchCheckoutBranch
	}
	if name == st.Branch {
		return ErrAlreadyOnBranch
	}
	if err := r.checkoutCommit(st, target); err != nil {
		return err
	}
	st.Branch = name
	log.Debugf("switched to branch %s at %s", name, target.Short(12))
	return nil
}

// Reset checks out the commit named by prefix and moves the current branch
// to it.
func (r *Repo) Reset(st *State, prefix string) error {
	target, err := r.FindCommit(prefix)
	if err != nil {
		return err
	}
	if err := r.checkoutCommit(st, target); err != nil {
		return err
	}
	st.SetHead(target)
	log.Debugf("reset %s to %s", st.Branch, target.Short(12))
	return nil
}

// checkoutCommit makes the working tree match target: files tracked by the
// current head but not by target are deleted, every file target tracks is
// written, and staging is cleared. Nothing is touched if an untracked file
// would be overwritten.
func (r *Repo) checkoutCommit(st *State, target object.Hash) error {
	head, err := r.Store.GetCommit(st.Head())
	if err != nil {
		return fmt.Errorf("checkout: read head: %w", err)
	}
	tc, err := r.Store.GetCommit(target)
	if err != nil {
		return fmt.Errorf("checkout: read %s: %w", target, err)
	}

	if err := r.ensureNoUntrackedInWay(head, st, tc.Tracked); err != nil {
		return err
	}

	for _, name := range head.Filenames() {
		if _, ok := tc.Tracks(name); ok {
			continue
		}
		if err := r.removeWorkFile(name); err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
	}
	for _, name := range tc.Filenames() {
		blob, err := r.Store.GetBlob(tc.Tracked[name])
		if err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		if err := r.writeWorkFile(name, blob.Data); err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
	}

	st.Staging.Clear()
	return nil
}
