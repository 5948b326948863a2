package object

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/renameio"
)

// ErrObjectNotFound is returned when a requested object is not in the store.
var ErrObjectNotFound = errors.New("object not found")

// Store is a content-addressed object store with one directory per object
// kind: objects/blobs/<hash> and objects/commits/<hash>.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory. The objects/
// subdirectories are created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

func kindDir(objType ObjectType) string {
	return string(objType) + "s"
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(objType ObjectType, h Hash) string {
	return filepath.Join(s.root, "objects", kindDir(objType), string(h))
}

func (s *Store) has(objType ObjectType, h Hash) bool {
	if h == "" || strings.ContainsAny(string(h), `/\`) {
		return false
	}
	_, err := os.Stat(s.objectPath(objType, h))
	return err == nil
}

// Has reports whether the store contains an object of any kind with the
// given hash.
func (s *Store) Has(h Hash) bool {
	return s.HasCommit(h) || s.HasBlob(h)
}

// HasBlob reports whether the store contains a blob with the given hash.
func (s *Store) HasBlob(h Hash) bool { return s.has(TypeBlob, h) }

// HasCommit reports whether the store contains a commit with the given hash.
func (s *Store) HasCommit(h Hash) bool { return s.has(TypeCommit, h) }

// Write stores an object and returns its content hash. The on-disk format
// is "type len\0content". Writing an object that already exists is a no-op.
func (s *Store) Write(objType ObjectType, data []byte) (Hash, error) {
	h := HashObject(objType, data)

	// Fast path: already exists.
	if s.has(objType, h) {
		return h, nil
	}

	dir := filepath.Join(s.root, "objects", kindDir(objType))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	envelope := fmt.Sprintf("%s %d\x00", objType, len(data))
	raw := append([]byte(envelope), data...)
	if err := renameio.WriteFile(s.objectPath(objType, h), raw, 0o644); err != nil {
		return "", fmt.Errorf("object write %s: %w", h, err)
	}
	return h, nil
}

// Read retrieves an object by kind and hash, returning its raw content.
func (s *Store) Read(objType ObjectType, h Hash) ([]byte, error) {
	if !s.has(objType, h) {
		return nil, fmt.Errorf("%s %s: %w", objType, h, ErrObjectNotFound)
	}
	raw, err := os.ReadFile(s.objectPath(objType, h))
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}

	// Parse envelope: "type len\0content"
	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return nil, fmt.Errorf("object read %s: invalid format (no NUL)", h)
	}
	header := string(raw[:nulIdx])
	content := raw[nulIdx+1:]

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("object read %s: invalid header %q", h, header)
	}
	if ObjectType(parts[0]) != objType {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, parts[0], objType)
	}
	length, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("object read %s: invalid length %q: %w", h, parts[1], err)
	}
	if len(content) != length {
		return nil, fmt.Errorf("object read %s: length mismatch (header=%d, actual=%d)", h, length, len(content))
	}
	return content, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// PutBlob serializes and stores a Blob.
func (s *Store) PutBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// GetBlob reads and deserializes a Blob.
func (s *Store) GetBlob(h Hash) (*Blob, error) {
	data, err := s.Read(TypeBlob, h)
	if err != nil {
		return nil, err
	}
	return UnmarshalBlob(data)
}

// PutCommit serializes and stores a Commit.
func (s *Store) PutCommit(c *Commit) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// GetCommit reads and deserializes a Commit. Every call decodes a fresh
// value, so callers never share a tracked map.
func (s *Store) GetCommit(h Hash) (*Commit, error) {
	data, err := s.Read(TypeCommit, h)
	if err != nil {
		return nil, err
	}
	return UnmarshalCommit(data)
}

// ListCommits returns the hashes of every stored commit, sorted.
func (s *Store) ListCommits() ([]Hash, error) {
	return s.list(TypeCommit)
}

// ListBlobs returns the hashes of every stored blob, sorted.
func (s *Store) ListBlobs() ([]Hash, error) {
	return s.list(TypeBlob)
}

func (s *Store) list(objType ObjectType) ([]Hash, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, "objects", kindDir(objType)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s objects: %w", objType, err)
	}
	out := make([]Hash, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		out = append(out, Hash(e.Name()))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// VerifySummary reports the outcome of Store.Verify.
type VerifySummary struct {
	Blobs   int
	Commits int
}

// Verify re-hashes every stored object and fails on the first object whose
// content no longer matches its name.
func (s *Store) Verify() (*VerifySummary, error) {
	report := &VerifySummary{}
	for _, objType := range []ObjectType{TypeBlob, TypeCommit} {
		hashes, err := s.list(objType)
		if err != nil {
			return nil, err
		}
		for _, h := range hashes {
			content, err := s.Read(objType, h)
			if err != nil {
				return nil, fmt.Errorf("verify %s: %w", h, err)
			}
			if actual := HashObject(objType, content); actual != h {
				return nil, fmt.Errorf("verify %s %s: hash mismatch (computed %s)", objType, h, actual)
			}
			if objType == TypeBlob {
				report.Blobs++
			} else {
				report.Commits++
			}
		}
	}
	return report, nil
}
