package object

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Hash is a 64-character hex-encoded SHA-256 digest.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeCommit ObjectType = "commit"
)

// RootMessage is the message of the parentless commit every repository
// starts from.
const RootMessage = "initial commit"

// ErrInvalidFilename is returned for tracked names that would resolve
// outside the working tree.
var ErrInvalidFilename = errors.New("invalid tracked filename")

// ValidFilename checks that name is a clean, relative, slash separated path
// that stays inside the working tree.
func ValidFilename(name string) error {
	switch {
	case name == "", name == ".", name == "..",
		strings.HasPrefix(name, "/"),
		strings.HasPrefix(name, "../"),
		strings.ContainsRune(name, 0),
		path.Clean(name) != name:
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return nil
}

// Blob is the content of one file at one point in time. Its identity covers
// both the filename and the bytes.
type Blob struct {
	Filename string
	Data     []byte
}

// Commit is an immutable snapshot of every tracked file plus its parent
// links. Tracked maps filenames to blob identities and always holds the
// complete tree, never a delta against the parent.
type Commit struct {
	Message     string
	Timestamp   int64 // unix nanoseconds
	Parent      Hash  // empty only for the root commit
	MergeParent Hash  // second parent of merge commits
	Tracked     map[string]Hash
	Signature   string
}

// NewRootCommit returns the root commit. It is byte-identical in every
// repository, which lets unrelated repositories exchange history.
func NewRootCommit() *Commit {
	return &Commit{
		Message:   RootMessage,
		Timestamp: 0,
		Tracked:   map[string]Hash{},
	}
}

// Parents returns the parent identities of c, first parent first.
func (c *Commit) Parents() []Hash {
	var out []Hash
	if c.Parent != "" {
		out = append(out, c.Parent)
	}
	if c.MergeParent != "" {
		out = append(out, c.MergeParent)
	}
	return out
}

// IsMerge reports whether c has two parents.
func (c *Commit) IsMerge() bool {
	return c.MergeParent != ""
}

// Tracks reports whether c tracks filename, and with which blob.
func (c *Commit) Tracks(filename string) (Hash, bool) {
	h, ok := c.Tracked[filename]
	return h, ok
}

// Filenames returns the tracked filenames in sorted order.
func (c *Commit) Filenames() []string {
	names := make([]string, 0, len(c.Tracked))
	for name := range c.Tracked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CloneTracked returns a copy of the tracked map that callers may mutate.
func (c *Commit) CloneTracked() map[string]Hash {
	out := make(map[string]Hash, len(c.Tracked))
	for k, v := range c.Tracked {
		out[k] = v
	}
	return out
}
