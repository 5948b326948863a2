// Package remote copies history between two gitlet repositories on the same
// filesystem.
package remote

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/odvcencio/gitlet/pkg/repo"
)

// ObjectRecord is one raw object moving between stores.
type ObjectRecord struct {
	Hash object.Hash
	Type object.ObjectType
	Data []byte
}

// Result summarizes a push or fetch.
type Result struct {
	Branch  string      // ref that was created or advanced
	Head    object.Hash // its new head
	Commits int         // commits copied
	Blobs   int         // blobs copied
}

// Push copies branch and its history into the remote named remoteName and
// advances the remote's branch of the same name. A branch the remote lacks
// is first created at the remote's current head. The push is refused with
// ErrNeedsPull unless that remote head is already in the local branch's
// history.
func Push(local *repo.Repo, st *repo.State, remoteName, branch string) (*Result, error) {
	rr, err := local.OpenRemote(st, remoteName)
	if err != nil {
		return nil, err
	}
	head, ok := st.Heads[branch]
	if !ok {
		return nil, repo.ErrNoSuchBranch
	}
	rst, err := rr.Load()
	if err != nil {
		return nil, fmt.Errorf("push: remote %q: %w", remoteName, err)
	}

	remoteHead, ok := rst.Heads[branch]
	if !ok {
		if rst.BranchNameConflict(branch) {
			return nil, repo.ErrInvalidBranchName
		}
		remoteHead = rst.Head()
	}
	if !local.Store.HasCommit(remoteHead) {
		return nil, repo.ErrNeedsPull
	}
	ahead, err := local.IsAncestor(remoteHead, head)
	if err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}
	if !ahead {
		return nil, repo.ErrNeedsPull
	}

	res, err := copyHistory(local.Store, rr.Store, head)
	if err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}
	rst.SetBranch(branch, head)
	if err := rr.Save(rst); err != nil {
		return nil, fmt.Errorf("push: remote %q: %w", remoteName, err)
	}

	res.Branch = branch
	res.Head = head
	log.WithFields(log.Fields{
		"remote":  remoteName,
		"branch":  branch,
		"head":    head.Short(12),
		"commits": res.Commits,
		"blobs":   res.Blobs,
	}).Debug("push complete")
	return res, nil
}

// Fetch copies the history of branch from the remote named remoteName and
// points the local tracking branch "<remoteName>/<branch>" at its head.
func Fetch(local *repo.Repo, st *repo.State, remoteName, branch string) (*Result, error) {
	rr, err := local.OpenRemote(st, remoteName)
	if err != nil {
		return nil, err
	}
	rst, err := rr.Load()
	if err != nil {
		return nil, fmt.Errorf("fetch: remote %q: %w", remoteName, err)
	}
	head, ok := rst.Heads[branch]
	if !ok {
		return nil, repo.ErrNoSuchRemoteBranch
	}

	tracking := TrackingBranch(remoteName, branch)
	if !st.HasBranch(tracking) && st.BranchNameConflict(tracking) {
		return nil, repo.ErrTrackingBranchConflict
	}

	res, err := copyHistory(rr.Store, local.Store, head)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	st.SetBranch(tracking, head)

	res.Branch = tracking
	res.Head = head
	log.WithFields(log.Fields{
		"remote":  remoteName,
		"branch":  tracking,
		"head":    head.Short(12),
		"commits": res.Commits,
		"blobs":   res.Blobs,
	}).Debug("fetch complete")
	return res, nil
}

// Pull fetches branch from remoteName and merges the tracking branch into
// the current branch.
func Pull(local *repo.Repo, st *repo.State, remoteName, branch string) (*repo.MergeReport, error) {
	res, err := Fetch(local, st, remoteName, branch)
	if err != nil {
		return nil, err
	}
	return local.Merge(st, res.Branch)
}

// TrackingBranch names the local branch that mirrors branch of remoteName.
func TrackingBranch(remoteName, branch string) string {
	return remoteName + "/" + branch
}

// copyHistory copies every commit reachable from head that dst lacks,
// together with the blobs those commits track. The walk stops at commits
// dst already has: objects are written ancestors first, so a commit in dst
// always has its whole history there too.
func copyHistory(src, dst *object.Store, head object.Hash) (*Result, error) {
	records, err := CollectMissing(src, dst, head)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	for _, rec := range records {
		n, err := writeVerifiedObject(dst, rec)
		if err != nil {
			return nil, err
		}
		switch rec.Type {
		case object.TypeCommit:
			res.Commits += n
		case object.TypeBlob:
			res.Blobs += n
		}
	}
	return res, nil
}

// CollectMissing returns the objects dst needs to hold head's history, in a
// safe write order: for each commit, its blobs come before it and every
// ancestor commit comes before its descendants.
func CollectMissing(src, dst *object.Store, head object.Hash) ([]ObjectRecord, error) {
	var order []object.Hash
	seen := make(map[object.Hash]struct{})
	stack := []object.Hash{head}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		if dst.HasCommit(h) {
			continue
		}
		c, err := src.GetCommit(h)
		if err != nil {
			return nil, fmt.Errorf("read commit %s: %w", h, err)
		}
		order = append(order, h)
		stack = append(stack, c.Parents()...)
	}

	blobSeen := make(map[object.Hash]struct{})
	records := make([]ObjectRecord, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		h := order[i]
		data, err := src.Read(object.TypeCommit, h)
		if err != nil {
			return nil, fmt.Errorf("read commit %s: %w", h, err)
		}
		c, err := object.UnmarshalCommit(data)
		if err != nil {
			return nil, fmt.Errorf("parse commit %s: %w", h, err)
		}
		for _, name := range c.Filenames() {
			b := c.Tracked[name]
			if _, ok := blobSeen[b]; ok {
				continue
			}
			blobSeen[b] = struct{}{}
			if dst.HasBlob(b) {
				continue
			}
			blob, err := src.Read(object.TypeBlob, b)
			if err != nil {
				return nil, fmt.Errorf("read blob %s of %s: %w", b, h, err)
			}
			records = append(records, ObjectRecord{Hash: b, Type: object.TypeBlob, Data: blob})
		}
		records = append(records, ObjectRecord{Hash: h, Type: object.TypeCommit, Data: data})
	}
	return records, nil
}

func writeVerifiedObject(store *object.Store, obj ObjectRecord) (int, error) {
	computed := object.HashObject(obj.Type, obj.Data)
	if computed != obj.Hash {
		return 0, fmt.Errorf("object hash mismatch: expected %s, got %s", obj.Hash, computed)
	}
	alreadyPresent := store.Has(obj.Hash)
	writtenHash, err := store.Write(obj.Type, obj.Data)
	if err != nil {
		return 0, err
	}
	if writtenHash != obj.Hash {
		return 0, fmt.Errorf("object write mismatch: expected %s, wrote %s", obj.Hash, writtenHash)
	}
	if alreadyPresent {
		return 0, nil
	}
	return 1, nil
}
