package repo

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Init creates a new gitlet repository in the working directory path. It
// lays out .gitlet/ (objects, refs, control files), stores the shared root
// commit and points the default branch at it. Returns ErrAlreadyInitialized
// if a .gitlet/ directory already exists.
func Init(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	dir := filepath.Join(abs, ControlDirName)

	if _, err := os.Stat(dir); err == nil {
		return nil, ErrAlreadyInitialized
	}

	dirs := []string{
		filepath.Join(dir, "objects", "commits"),
		filepath.Join(dir, "objects", "blobs"),
		filepath.Join(dir, "refs", "branches"),
		filepath.Join(dir, "refs", "remotes"),
		filepath.Join(dir, ".control"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	r := &Repo{
		RootDir: abs,
		Dir:     dir,
		Store:   object.NewStore(dir),
	}
	if err := r.WriteConfig(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	root, err := r.Store.PutCommit(object.NewRootCommit())
	if err != nil {
		return nil, fmt.Errorf("init: root commit: %w", err)
	}

	branch := r.Config.Core.DefaultBranch
	st := newState(branch)
	st.Heads[branch] = root
	if err := r.Save(st); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	log.WithFields(log.Fields{"dir": dir, "branch": branch, "root": root}).Debug("initialized repository")
	return r, nil
}

// Open searches upward from path for a .gitlet/ directory and opens the
// repository. Returns ErrNotInitialized if none is found.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		dir := filepath.Join(cur, ControlDirName)
		info, err := os.Stat(dir)
		if err == nil && info.IsDir() {
			return openControlDir(cur, dir)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, ErrNotInitialized
		}
		cur = parent
	}
}

// OpenDir opens the repository whose control directory is dir. Remotes are
// addressed this way. The working tree root is dir's parent.
func OpenDir(dir string) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}
	info, err := os.Stat(filepath.Join(abs, "objects"))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open %s: %w", abs, os.ErrNotExist)
	}
	return openControlDir(filepath.Dir(abs), abs)
}

func openControlDir(root, dir string) (*Repo, error) {
	cfg, err := ReadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return &Repo{
		RootDir: root,
		Dir:     dir,
		Store:   object.NewStore(dir),
		Config:  cfg,
	}, nil
}
