package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// AddRemote records a remote named name whose control directory is path.
// Relative paths are resolved against the working tree root when used.
func (r *Repo) AddRemote(st *State, name, path string) error {
	if _, ok := st.Remotes[name]; ok {
		return ErrRemoteAlreadyExists
	}
	if !validRefName(name) {
		return fmt.Errorf("add remote: invalid name %q", name)
	}
	st.setRemote(name, filepath.ToSlash(path))
	log.Debugf("remote %s -> %s", name, path)
	return nil
}

// RemoveRemote forgets the remote named name. Tracking branches fetched
// from it are kept.
func (r *Repo) RemoveRemote(st *State, name string) error {
	if _, ok := st.Remotes[name]; !ok {
		return ErrRemoteNotFound
	}
	st.dropRemote(name)
	return nil
}

// RemoteDir returns the absolute control directory of remote name.
func (r *Repo) RemoteDir(st *State, name string) (string, error) {
	path, ok := st.Remotes[name]
	if !ok {
		return "", ErrRemoteNotFound
	}
	dir := filepath.FromSlash(path)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.RootDir, dir)
	}
	return filepath.Clean(dir), nil
}

// OpenRemote opens the repository behind remote name. It fails with
// ErrRemoteDirectoryNotFound when nothing is there.
func (r *Repo) OpenRemote(st *State, name string) (*Repo, error) {
	dir, err := r.RemoteDir(st, name)
	if err != nil {
		return nil, err
	}
	remote, err := OpenDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrRemoteDirectoryNotFound
		}
		return nil, fmt.Errorf("open remote %q: %w", name, err)
	}
	return remote, nil
}
