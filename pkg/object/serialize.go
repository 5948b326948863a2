package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob:
//
//	name "F"
//
//	<content bytes>
func MarshalBlob(b *Blob) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "name %s\n", strconv.Quote(b.Filename))
	buf.WriteByte('\n')
	buf.Write(b.Data)
	return buf.Bytes()
}

// UnmarshalBlob parses a Blob from its serialized form.
func UnmarshalBlob(data []byte) (*Blob, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal blob: missing header/content separator")
	}
	key, val, ok := strings.Cut(string(data[:idx]), " ")
	if !ok || key != "name" {
		return nil, fmt.Errorf("unmarshal blob: malformed header %q", data[:idx])
	}
	name, err := strconv.Unquote(val)
	if err != nil {
		return nil, fmt.Errorf("unmarshal blob: bad name %s: %w", val, err)
	}
	body := data[idx+2:]
	out := make([]byte, len(body))
	copy(out, body)
	return &Blob{Filename: name, Data: out}, nil
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// MarshalCommit serializes a Commit:
//
//	timestamp T
//	parent H     (absent on the root commit)
//	merge H      (merge commits only)
//	file H "N"   (one per tracked file, sorted by name, Go-quoted)
//	signature S  (optional)
//
//	message
func MarshalCommit(c *Commit) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "timestamp %d\n", c.Timestamp)
	if c.Parent != "" {
		fmt.Fprintf(&buf, "parent %s\n", string(c.Parent))
	}
	if c.MergeParent != "" {
		fmt.Fprintf(&buf, "merge %s\n", string(c.MergeParent))
	}

	names := make([]string, 0, len(c.Tracked))
	for name := range c.Tracked {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&buf, "file %s %s\n", string(c.Tracked[name]), strconv.Quote(name))
	}

	if strings.TrimSpace(c.Signature) != "" {
		fmt.Fprintf(&buf, "signature %s\n", c.Signature)
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a Commit from its serialized form.
func UnmarshalCommit(data []byte) (*Commit, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: missing header/message separator")
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	c := &Commit{Message: message, Tracked: make(map[string]Hash)}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: malformed header line %q", line)
		}
		switch key {
		case "timestamp":
			ts, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: bad timestamp %q: %w", val, err)
			}
			c.Timestamp = ts
		case "parent":
			c.Parent = Hash(val)
		case "merge":
			c.MergeParent = Hash(val)
		case "file":
			h, quoted, ok := strings.Cut(val, " ")
			if !ok {
				return nil, fmt.Errorf("unmarshal commit: malformed file entry %q", val)
			}
			name, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: malformed file entry %q: %w", val, err)
			}
			if err := ValidFilename(name); err != nil {
				return nil, fmt.Errorf("unmarshal commit: %w", err)
			}
			c.Tracked[name] = Hash(h)
		case "signature":
			c.Signature = val
		default:
			return nil, fmt.Errorf("unmarshal commit: unknown header key %q", key)
		}
	}
	return c, nil
}

// CommitSigningPayload is the serialization of c with its signature line
// left out. Signers sign it and verifiers rebuild it from the stored commit.
func CommitSigningPayload(c *Commit) []byte {
	if c == nil {
		return nil
	}
	unsigned := *c
	unsigned.Signature = ""
	return MarshalCommit(&unsigned)
}
