package repo

import (
	"time"

	"github.com/odvcencio/gitlet/pkg/object"
)

// ControlDirName is the name of the directory holding a repository's
// objects, refs and control files, relative to the working tree root.
const ControlDirName = ".gitlet"

// Repo represents an opened gitlet repository.
type Repo struct {
	RootDir string        // working directory root
	Dir     string        // .gitlet/ directory
	Store   *object.Store // content-addressed object store
	Config  *Config

	// Signer, when set, signs every commit this Repo creates.
	Signer CommitSigner

	// Now supplies commit timestamps; nil means time.Now.
	Now func() time.Time
}

func (r *Repo) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
