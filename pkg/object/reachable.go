package object

import (
	"fmt"
	"sort"
	"strings"
)

// Reachable is the set of objects a group of commits depends on.
type Reachable struct {
	Commits map[Hash]struct{}
	Blobs   map[Hash]struct{}
}

// ReachableSet walks both parents of every commit from roots and collects
// the blobs they track. Unlike a plain walk it fails on the first missing
// object, so a successful result proves the histories are complete.
func (s *Store) ReachableSet(roots []Hash) (*Reachable, error) {
	out := &Reachable{
		Commits: make(map[Hash]struct{}),
		Blobs:   make(map[Hash]struct{}),
	}

	stack := uniqueNormalizedHashes(roots)
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := out.Commits[h]; ok {
			continue
		}
		c, err := s.GetCommit(h)
		if err != nil {
			return nil, fmt.Errorf("reachable set: commit %s: %w", h, err)
		}
		out.Commits[h] = struct{}{}

		for name, b := range c.Tracked {
			if _, ok := out.Blobs[b]; ok {
				continue
			}
			if !s.HasBlob(b) {
				return nil, fmt.Errorf("reachable set: blob %s (%s) of commit %s is missing", b, name, h)
			}
			out.Blobs[b] = struct{}{}
		}
		stack = append(stack, c.Parents()...)
	}

	return out, nil
}

func uniqueNormalizedHashes(in []Hash) []Hash {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[Hash]struct{}, len(in))
	out := make([]Hash, 0, len(in))
	for _, h := range in {
		h = Hash(strings.TrimSpace(string(h)))
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
