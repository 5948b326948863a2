// Package merge holds the file-level three-way merge policy. It decides what
// happens to each file given its blob identity at the split point, on the
// current branch ("ours") and on the branch being merged in ("theirs"). An
// empty hash means the file is absent on that side.
package merge

import (
	"bytes"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Disposition describes how a file changed on each side since the split point.
type Disposition int

const (
	Unchanged      Disposition = iota
	OursOnly                   // ours modified, theirs unchanged
	TheirsOnly                 // theirs modified, ours unchanged
	BothSame                   // both modified identically
	Conflict                   // both modified differently
	AddedOurs                  // new file in ours, not in base
	AddedTheirs                // new file in theirs, not in base
	DeletedOurs                // deleted by ours, theirs unchanged
	DeletedTheirs              // deleted by theirs, ours unchanged
	DeleteVsModify             // one side deleted, the other modified
)

func (d Disposition) String() string {
	switch d {
	case Unchanged:
		return "Unchanged"
	case OursOnly:
		return "OursOnly"
	case TheirsOnly:
		return "TheirsOnly"
	case BothSame:
		return "BothSame"
	case Conflict:
		return "Conflict"
	case AddedOurs:
		return "AddedOurs"
	case AddedTheirs:
		return "AddedTheirs"
	case DeletedOurs:
		return "DeletedOurs"
	case DeletedTheirs:
		return "DeletedTheirs"
	case DeleteVsModify:
		return "DeleteVsModify"
	}
	return fmt.Sprintf("Disposition(%d)", int(d))
}

// Action is what the merge does to the working tree and staging area for
// one file.
type Action int

const (
	Keep     Action = iota // leave the current version alone
	Checkout               // write theirs and stage it
	Remove                 // delete the file and stage the removal
	Markers                // write conflict markers and stage them
)

func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case Checkout:
		return "checkout"
	case Remove:
		return "remove"
	case Markers:
		return "conflict"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Action maps a disposition to the change the merge applies.
func (d Disposition) Action() Action {
	switch d {
	case TheirsOnly, AddedTheirs:
		return Checkout
	case DeletedTheirs:
		return Remove
	case Conflict, DeleteVsModify:
		return Markers
	default:
		return Keep
	}
}

// Classify determines the Disposition for a file across three revisions.
func Classify(base, ours, theirs object.Hash) Disposition {
	inBase := base != ""
	inOurs := ours != ""
	inTheirs := theirs != ""

	switch {
	// Present in all three
	case inBase && inOurs && inTheirs:
		oursChanged := ours != base
		theirsChanged := theirs != base
		switch {
		case !oursChanged && !theirsChanged:
			return Unchanged
		case oursChanged && !theirsChanged:
			return OursOnly
		case !oursChanged && theirsChanged:
			return TheirsOnly
		case ours == theirs:
			return BothSame
		default:
			return Conflict
		}

	// In base and ours, not theirs: theirs deleted
	case inBase && inOurs && !inTheirs:
		if ours != base {
			return DeleteVsModify
		}
		return DeletedTheirs

	// In base and theirs, not ours: ours deleted
	case inBase && !inOurs && inTheirs:
		if theirs != base {
			return DeleteVsModify
		}
		return DeletedOurs

	// Not in base, in ours only
	case !inBase && inOurs && !inTheirs:
		return AddedOurs

	// Not in base, in theirs only
	case !inBase && !inOurs && inTheirs:
		return AddedTheirs

	// Not in base, in both ours and theirs
	case !inBase && inOurs && inTheirs:
		if ours == theirs {
			return BothSame
		}
		return Conflict
	}

	// Deleted on both sides, or absent everywhere.
	return Unchanged
}

// FilePlan is the merge decision for one file.
type FilePlan struct {
	Path        string
	Base        object.Hash
	Ours        object.Hash
	Theirs      object.Hash
	Disposition Disposition
}

// Action returns the change applied for this file.
func (p FilePlan) Action() Action {
	return p.Disposition.Action()
}

// Plan classifies every path against the three tracked maps. Paths are
// reported in the order given.
func Plan(paths []string, base, ours, theirs map[string]object.Hash) []FilePlan {
	out := make([]FilePlan, 0, len(paths))
	for _, p := range paths {
		fp := FilePlan{
			Path:   p,
			Base:   base[p],
			Ours:   ours[p],
			Theirs: theirs[p],
		}
		fp.Disposition = Classify(fp.Base, fp.Ours, fp.Theirs)
		out = append(out, fp)
	}
	return out
}

const (
	markerOurs   = "<<<<<<< HEAD\n"
	markerSep    = "=======\n"
	markerTheirs = ">>>>>>>\n"
)

// ConflictMarkers builds the contents of a conflicted file: the current
// version, a separator, then the incoming version. A side that lacks the
// file contributes an empty section.
func ConflictMarkers(ours, theirs []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(markerOurs)
	buf.Write(ours)
	buf.WriteString(markerSep)
	buf.Write(theirs)
	buf.WriteString(markerTheirs)
	return buf.Bytes()
}

// HasConflictMarkers reports whether data looks like the output of
// ConflictMarkers.
func HasConflictMarkers(data []byte) bool {
	return bytes.HasPrefix(data, []byte(markerOurs)) &&
		bytes.Contains(data, []byte(markerSep)) &&
		bytes.HasSuffix(data, []byte(markerTheirs))
}
