package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/renameio"
	log "github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack"

	"github.com/odvcencio/gitlet/pkg/object"
)

// State is the mutable part of a repository: the current branch, every
// branch head, the configured remotes and the staging area. Operations
// take a *State, mutate it, and the caller persists it with Save only once
// the whole operation has succeeded.
type State struct {
	Branch  string                 // current branch
	Heads   map[string]object.Hash // branch name -> head commit
	Remotes map[string]string      // remote name -> control directory path
	Staging *Staging

	droppedBranches map[string]struct{}
	droppedRemotes  map[string]struct{}
}

func newState(branch string) *State {
	return &State{
		Branch:          branch,
		Heads:           make(map[string]object.Hash),
		Remotes:         make(map[string]string),
		Staging:         NewStaging(),
		droppedBranches: make(map[string]struct{}),
		droppedRemotes:  make(map[string]struct{}),
	}
}

// Head returns the head commit of the current branch.
func (st *State) Head() object.Hash {
	return st.Heads[st.Branch]
}

// SetHead moves the current branch to h.
func (st *State) SetHead(h object.Hash) {
	st.Heads[st.Branch] = h
}

// HasBranch reports whether a branch named name exists.
func (st *State) HasBranch(name string) bool {
	_, ok := st.Heads[name]
	return ok
}

// SetBranch creates or moves branch name to h.
func (st *State) SetBranch(name string, h object.Hash) {
	st.Heads[name] = h
	delete(st.droppedBranches, name)
}

func (st *State) dropBranch(name string) {
	delete(st.Heads, name)
	st.droppedBranches[name] = struct{}{}
}

func (st *State) setRemote(name, path string) {
	st.Remotes[name] = path
	delete(st.droppedRemotes, name)
}

func (st *State) dropRemote(name string) {
	delete(st.Remotes, name)
	st.droppedRemotes[name] = struct{}{}
}

func (r *Repo) headPath() string  { return filepath.Join(r.Dir, ".control", "HEAD") }
func (r *Repo) indexPath() string { return filepath.Join(r.Dir, ".control", "INDEX") }
func (r *Repo) branchesDir() string {
	return filepath.Join(r.Dir, "refs", "branches")
}
func (r *Repo) remotesDir() string {
	return filepath.Join(r.Dir, "refs", "remotes")
}

// Load reads HEAD, every branch ref, every remote and the staging index.
func (r *Repo) Load() (*State, error) {
	data, err := os.ReadFile(r.headPath())
	if err != nil {
		return nil, fmt.Errorf("load: read HEAD: %w", err)
	}
	st := newState(strings.TrimSpace(string(data)))

	heads, err := readRefDir(r.branchesDir())
	if err != nil {
		return nil, fmt.Errorf("load: branches: %w", err)
	}
	for name, val := range heads {
		st.Heads[name] = object.Hash(val)
	}

	remotes, err := readRefDir(r.remotesDir())
	if err != nil {
		return nil, fmt.Errorf("load: remotes: %w", err)
	}
	for name, val := range remotes {
		st.Remotes[name] = val
	}

	stg, err := r.readStaging()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	st.Staging = stg
	return st, nil
}

// Save persists st: HEAD, every branch and remote (removing the ones dropped
// since Load) and the staging index. Every file is replaced atomically.
func (r *Repo) Save(st *State) error {
	for name := range st.droppedBranches {
		if err := removeRef(r.branchesDir(), name); err != nil {
			return fmt.Errorf("save: remove branch %q: %w", name, err)
		}
	}
	for name := range st.droppedRemotes {
		if err := removeRef(r.remotesDir(), name); err != nil {
			return fmt.Errorf("save: remove remote %q: %w", name, err)
		}
	}

	for _, name := range sortedKeys(st.Heads) {
		if err := writeRef(r.branchesDir(), name, string(st.Heads[name])); err != nil {
			return fmt.Errorf("save: branch %q: %w", name, err)
		}
	}
	for _, name := range sortedKeys(st.Remotes) {
		if err := writeRef(r.remotesDir(), name, st.Remotes[name]); err != nil {
			return fmt.Errorf("save: remote %q: %w", name, err)
		}
	}

	if err := renameio.WriteFile(r.headPath(), []byte(st.Branch+"\n"), 0o644); err != nil {
		return fmt.Errorf("save: write HEAD: %w", err)
	}
	if err := r.writeStaging(st.Staging); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	st.droppedBranches = make(map[string]struct{})
	st.droppedRemotes = make(map[string]struct{})
	log.WithFields(log.Fields{"branch": st.Branch, "head": st.Head()}).Debug("saved state")
	return nil
}

func (r *Repo) readStaging() (*Staging, error) {
	data, err := os.ReadFile(r.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewStaging(), nil
		}
		return nil, fmt.Errorf("read staging: %w", err)
	}
	stg := NewStaging()
	if len(data) == 0 {
		return stg, nil
	}
	if err := msgpack.Unmarshal(data, stg); err != nil {
		return nil, fmt.Errorf("read staging: unmarshal: %w", err)
	}
	if stg.Added == nil {
		stg.Added = make(map[string]object.Hash)
	}
	if stg.Removed == nil {
		stg.Removed = make(map[string]bool)
	}
	return stg, nil
}

func (r *Repo) writeStaging(stg *Staging) error {
	if stg == nil {
		stg = NewStaging()
	}
	data, err := msgpack.Marshal(stg)
	if err != nil {
		return fmt.Errorf("write staging: marshal: %w", err)
	}
	if err := renameio.WriteFile(r.indexPath(), data, 0o644); err != nil {
		return fmt.Errorf("write staging: %w", err)
	}
	return nil
}

// readRefDir reads every file under root. Names are slash separated and
// relative to root, so tracking branches come back as "<remote>/<branch>".
func readRefDir(root string) (map[string]string, error) {
	refs := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		refs[filepath.ToSlash(rel)] = strings.TrimSpace(string(data))
		return nil
	})
	if os.IsNotExist(err) {
		return refs, nil
	}
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func writeRef(root, name, value string) error {
	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return renameio.WriteFile(path, []byte(value+"\n"), 0o644)
}

// removeRef deletes a ref file and any directories it leaves empty below
// root.
func removeRef(root, name string) error {
	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	removeEmptyParents(filepath.Dir(path), root)
	return nil
}

// removeEmptyParents removes empty directories from dir up to (but not
// including) stop.
func removeEmptyParents(dir, stop string) {
	for dir != stop && strings.HasPrefix(dir, stop) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

// BranchNameConflict reports whether a new branch called name would need a
// ref path already used by another branch. Refs are files, so a branch
// cannot also be a directory of branches.
func (st *State) BranchNameConflict(name string) bool {
	for existing := range st.Heads {
		if strings.HasPrefix(existing, name+"/") || strings.HasPrefix(name, existing+"/") {
			return true
		}
	}
	return false
}

// validRefName reports whether name can be stored as a ref file.
func validRefName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return false
	}
	if strings.ContainsAny(name, "\\\x00\n") {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." || strings.HasPrefix(part, ".") {
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
