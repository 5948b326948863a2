package repo

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Staging holds the changes prepared for the next commit: files to add
// (name -> blob) and files to stop tracking. It is persisted in
// .control/INDEX and is never part of history.
type Staging struct {
	Added   map[string]object.Hash `msgpack:"added"`
	Removed map[string]bool        `msgpack:"removed"`
}

// NewStaging returns an empty staging area.
func NewStaging() *Staging {
	return &Staging{
		Added:   make(map[string]object.Hash),
		Removed: make(map[string]bool),
	}
}

// IsEmpty reports whether nothing is staged for addition or removal.
func (s *Staging) IsEmpty() bool {
	return len(s.Added) == 0 && len(s.Removed) == 0
}

// Clear drops every staged change.
func (s *Staging) Clear() {
	s.Added = make(map[string]object.Hash)
	s.Removed = make(map[string]bool)
}

// AddedFiles returns the names staged for addition, sorted.
func (s *Staging) AddedFiles() []string {
	return sortedKeys(s.Added)
}

// RemovedFiles returns the names staged for removal, sorted.
func (s *Staging) RemovedFiles() []string {
	out := make([]string, 0, len(s.Removed))
	for name, ok := range s.Removed {
		if ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Add stages the working copy of filename. A file identical to the version
// the head commit tracks is unstaged instead. Any pending removal of the
// file is cancelled either way.
func (r *Repo) Add(st *State, filename string) error {
	name, err := r.RelPath(filename)
	if err != nil {
		return err
	}
	data, ok, err := r.readWorkFile(name)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	if !ok {
		return ErrFileNotFound
	}

	head, err := r.Store.GetCommit(st.Head())
	if err != nil {
		return fmt.Errorf("add: read head: %w", err)
	}

	delete(st.Staging.Removed, name)

	id := object.BlobID(name, data)
	if tracked, ok := head.Tracks(name); ok && tracked == id {
		delete(st.Staging.Added, name)
		log.Debugf("add: %s matches head, unstaged", name)
		return nil
	}

	if _, err := r.Store.PutBlob(&object.Blob{Filename: name, Data: data}); err != nil {
		return fmt.Errorf("add: write blob %q: %w", name, err)
	}
	st.Staging.Added[name] = id
	log.Debugf("add: staged %s as %s", name, id.Short(12))
	return nil
}

// Remove unstages filename if it is staged for addition. If the head
// commit tracks it, the file is staged for removal and its working copy
// deleted.
func (r *Repo) Remove(st *State, filename string) error {
	name, err := r.RelPath(filename)
	if err != nil {
		return err
	}
	head, err := r.Store.GetCommit(st.Head())
	if err != nil {
		return fmt.Errorf("rm: read head: %w", err)
	}

	_, staged := st.Staging.Added[name]
	_, tracked := head.Tracks(name)
	if !staged && !tracked {
		return ErrNothingToRemove
	}

	delete(st.Staging.Added, name)
	if tracked {
		st.Staging.Removed[name] = true
		if err := r.removeWorkFile(name); err != nil {
			return fmt.Errorf("rm: %w", err)
		}
	}
	return nil
}
