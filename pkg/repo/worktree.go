package repo

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hlubek/readercomp"

	"github.com/odvcencio/gitlet/pkg/object"
)

// RelPath converts a path into a slash separated path relative to the
// repository root. Relative paths are taken from the process working
// directory when it lies inside the repository, and from the root
// otherwise. Paths that leave the root fail with ErrOutsideRepository.
func (r *Repo) RelPath(p string) (string, error) {
	abs := p
	if !filepath.IsAbs(p) {
		base := r.RootDir
		if cwd, err := os.Getwd(); err == nil && insideDir(r.RootDir, cwd) {
			base = cwd
		}
		abs = filepath.Join(base, p)
	}
	rel, err := filepath.Rel(r.RootDir, abs)
	if err != nil {
		return "", fmt.Errorf("cannot make %q relative to %q: %w", p, r.RootDir, err)
	}
	rel = filepath.ToSlash(rel)
	if err := object.ValidFilename(rel); err != nil {
		return "", ErrOutsideRepository
	}
	return rel, nil
}

func insideDir(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (r *Repo) workPath(name string) string {
	return filepath.Join(r.RootDir, filepath.FromSlash(name))
}

// readWorkFile returns the working copy of name. ok is false when the file
// does not exist.
func (r *Repo) readWorkFile(name string) (data []byte, ok bool, err error) {
	data, err = os.ReadFile(r.workPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %q: %w", name, err)
	}
	return data, true, nil
}

func (r *Repo) writeWorkFile(name string, data []byte) error {
	if err := object.ValidFilename(name); err != nil {
		return err
	}
	path := r.workPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %q: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	return nil
}

// removeWorkFile deletes the working copy of name, if any, along with the
// directories it leaves empty.
func (r *Repo) removeWorkFile(name string) error {
	if err := object.ValidFilename(name); err != nil {
		return err
	}
	path := r.workPath(name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %q: %w", name, err)
	}
	removeEmptyParents(filepath.Dir(path), r.RootDir)
	return nil
}

// workFiles lists every regular file of the working tree as root-relative
// slash paths. Hidden entries, including the control directory, are skipped.
func (r *Repo) workFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == r.RootDir {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk working tree: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// ensureNoUntrackedInWay fails with ErrUntrackedFileInWay when writing any
// of incoming (filename -> blob) would clobber a working file that head does
// not track, is not staged, and whose bytes differ from the incoming blob.
func (r *Repo) ensureNoUntrackedInWay(head *object.Commit, st *State, incoming map[string]object.Hash) error {
	for _, name := range sortedKeys(incoming) {
		if _, tracked := head.Tracks(name); tracked {
			continue
		}
		if _, staged := st.Staging.Added[name]; staged {
			continue
		}
		f, err := os.Open(r.workPath(name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("open %q: %w", name, err)
		}
		blob, err := r.Store.GetBlob(incoming[name])
		if err != nil {
			f.Close()
			return err
		}
		same, err := readercomp.Equal(f, bytes.NewReader(blob.Data), 4096)
		f.Close()
		if err != nil {
			return fmt.Errorf("compare %q: %w", name, err)
		}
		if !same {
			return ErrUntrackedFileInWay
		}
	}
	return nil
}
