package object

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashBytes computes the raw SHA-256 hash of data and returns it as a
// lowercase hex-encoded Hash.
func HashBytes(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashObject computes the SHA-256 of the envelope "type len\0content".
// Object identities are always derived this way, so the same payload stored
// in two repositories gets the same identity.
func HashObject(objType ObjectType, data []byte) Hash {
	header := fmt.Sprintf("%s %d\x00", objType, len(data))
	h := sha256.New()
	h.Write([]byte(header))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// BlobID returns the identity a blob with this filename and content has
// once stored, without writing anything.
func BlobID(filename string, data []byte) Hash {
	return HashObject(TypeBlob, MarshalBlob(&Blob{Filename: filename, Data: data}))
}

// CommitID returns the identity of c.
func CommitID(c *Commit) Hash {
	return HashObject(TypeCommit, MarshalCommit(c))
}

// Short returns the first n characters of h, or h itself when shorter.
func (h Hash) Short(n int) string {
	if len(h) <= n {
		return string(h)
	}
	return string(h[:n])
}
