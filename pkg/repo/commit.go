package repo

import (
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/odvcencio/gitlet/pkg/object"
)

// CommitSigner signs canonical commit payload bytes and returns an encoded
// signature string to be persisted in Commit.Signature.
type CommitSigner func(payload []byte) (string, error)

// Commit records the staged changes as a new snapshot on the current
// branch. The new commit tracks the head's files overlaid with the staged
// additions, minus the staged removals.
func (r *Repo) Commit(st *State, message string) (object.Hash, error) {
	return r.commit(st, message, "", false)
}

// commit builds, signs and stores a commit whose first parent is the current
// head. mergeParent is empty for ordinary commits. allowEmpty lets a merge
// commit through even when the merge staged nothing.
func (r *Repo) commit(st *State, message string, mergeParent object.Hash, allowEmpty bool) (object.Hash, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	if st.Staging.IsEmpty() && !allowEmpty {
		return "", ErrNothingStaged
	}

	parent := st.Head()
	head, err := r.Store.GetCommit(parent)
	if err != nil {
		return "", fmt.Errorf("commit: read head: %w", err)
	}

	tracked := head.CloneTracked()
	for name, id := range st.Staging.Added {
		tracked[name] = id
	}
	for name := range st.Staging.Removed {
		delete(tracked, name)
	}

	c := &object.Commit{
		Message:     message,
		Timestamp:   r.now().UnixNano(),
		Parent:      parent,
		MergeParent: mergeParent,
		Tracked:     tracked,
	}
	if r.Signer != nil {
		sig, err := r.Signer(object.CommitSigningPayload(c))
		if err != nil {
			return "", fmt.Errorf("commit: sign commit: %w", err)
		}
		c.Signature = sig
	}

	h, err := r.Store.PutCommit(c)
	if err != nil {
		return "", fmt.Errorf("commit: write commit: %w", err)
	}
	st.SetHead(h)
	st.Staging.Clear()

	log.WithFields(log.Fields{
		"branch": st.Branch,
		"commit": h.Short(12),
		"files":  len(tracked),
		"merge":  mergeParent != "",
	}).Debug("created commit")
	return h, nil
}

// LogEntry pairs a commit with its identity.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.Commit
}

// Log walks the first-parent chain from the current head back to the root,
// newest first.
func (r *Repo) Log(st *State) ([]LogEntry, error) {
	var out []LogEntry
	for cur := st.Head(); cur != ""; {
		c, err := r.Store.GetCommit(cur)
		if err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
		out = append(out, LogEntry{Hash: cur, Commit: c})
		cur = c.Parent
	}
	return out, nil
}

// GlobalLog returns every commit in the store, newest first. Commits with
// equal timestamps are ordered by identity.
func (r *Repo) GlobalLog() ([]LogEntry, error) {
	ids, err := r.Store.ListCommits()
	if err != nil {
		return nil, fmt.Errorf("global-log: %w", err)
	}
	out := make([]LogEntry, 0, len(ids))
	for _, id := range ids {
		c, err := r.Store.GetCommit(id)
		if err != nil {
			return nil, fmt.Errorf("global-log: %w", err)
		}
		out = append(out, LogEntry{Hash: id, Commit: c})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Commit.Timestamp != out[j].Commit.Timestamp {
			return out[i].Commit.Timestamp > out[j].Commit.Timestamp
		}
		return out[i].Hash < out[j].Hash
	})
	return out, nil
}

// Find returns the identities of every commit whose message is exactly
// message, in identity order.
func (r *Repo) Find(message string) ([]object.Hash, error) {
	ids, err := r.Store.ListCommits()
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	var out []object.Hash
	for _, id := range ids {
		c, err := r.Store.GetCommit(id)
		if err != nil {
			return nil, fmt.Errorf("find: %w", err)
		}
		if c.Message == message {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoCommitWithMessage
	}
	return out, nil
}
