package repo

import (
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/odvcencio/gitlet/pkg/object"
)

// FindCommit resolves a full commit identity or a unique prefix of one.
func (r *Repo) FindCommit(prefix string) (object.Hash, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrNoSuchCommit
	}
	if r.Store.HasCommit(object.Hash(prefix)) {
		return object.Hash(prefix), nil
	}

	ids, err := r.Store.ListCommits()
	if err != nil {
		return "", fmt.Errorf("find commit: %w", err)
	}
	var match object.Hash
	for _, id := range ids {
		if !strings.HasPrefix(string(id), prefix) {
			continue
		}
		if match != "" {
			return "", ErrAmbiguousCommitID
		}
		match = id
	}
	if match == "" {
		return "", ErrNoSuchCommit
	}
	return match, nil
}

type graphQueueItem struct {
	hash  object.Hash
	depth int
}

// commitGraph reads commits on demand and remembers them for the duration
// of one traversal.
type commitGraph struct {
	store   *object.Store
	commits map[object.Hash]*object.Commit
}

func (r *Repo) newCommitGraph() *commitGraph {
	return &commitGraph{store: r.Store, commits: make(map[object.Hash]*object.Commit)}
}

func (g *commitGraph) parents(h object.Hash) ([]object.Hash, error) {
	c, ok := g.commits[h]
	if !ok {
		var err error
		c, err = g.store.GetCommit(h)
		if err != nil {
			return nil, err
		}
		g.commits[h] = c
	}
	return c.Parents(), nil
}

// depths returns every ancestor of start (start included) with its
// shortest distance over all parent edges.
func (g *commitGraph) depths(start object.Hash) (map[object.Hash]int, error) {
	dist := map[object.Hash]int{start: 0}
	queue := []graphQueueItem{{hash: start}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		parents, err := g.parents(item.hash)
		if err != nil {
			return nil, err
		}
		for _, p := range parents {
			if _, seen := dist[p]; seen {
				continue
			}
			dist[p] = item.depth + 1
			queue = append(queue, graphQueueItem{hash: p, depth: item.depth + 1})
		}
	}
	return dist, nil
}

// FindSplitPoint returns the latest common ancestor of current and other,
// walking all parent edges so merge commits are handled. A common ancestor
// that is itself an ancestor of another common ancestor is never chosen.
// When several remain (criss-cross merges), the one nearest to current
// wins, then the one nearest to other, then the lowest identity.
func (r *Repo) FindSplitPoint(current, other object.Hash) (object.Hash, error) {
	g := r.newCommitGraph()
	fromCurrent, err := g.depths(current)
	if err != nil {
		return "", fmt.Errorf("split point: %w", err)
	}
	if _, ok := fromCurrent[other]; ok {
		return other, nil
	}
	fromOther, err := g.depths(other)
	if err != nil {
		return "", fmt.Errorf("split point: %w", err)
	}

	var common []object.Hash
	for h := range fromOther {
		if _, ok := fromCurrent[h]; ok {
			common = append(common, h)
		}
	}
	if len(common) == 0 {
		return "", fmt.Errorf("split point: %s and %s share no history", current, other)
	}

	// Everything strictly behind a common ancestor is dominated by it.
	dominated := make(map[object.Hash]bool)
	for _, c := range common {
		if dominated[c] {
			continue
		}
		stack, err := g.parents(c)
		if err != nil {
			return "", fmt.Errorf("split point: %w", err)
		}
		for len(stack) > 0 {
			h := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if dominated[h] {
				continue
			}
			dominated[h] = true
			parents, err := g.parents(h)
			if err != nil {
				return "", fmt.Errorf("split point: %w", err)
			}
			stack = append(stack, parents...)
		}
	}

	var best object.Hash
	for _, h := range common {
		if dominated[h] {
			continue
		}
		if best == "" || splitPointLess(h, best, fromCurrent, fromOther) {
			best = h
		}
	}
	log.Debugf("split point of %s and %s is %s", current.Short(12), other.Short(12), best.Short(12))
	return best, nil
}

func splitPointLess(a, b object.Hash, fromCurrent, fromOther map[object.Hash]int) bool {
	if fromCurrent[a] != fromCurrent[b] {
		return fromCurrent[a] < fromCurrent[b]
	}
	if fromOther[a] != fromOther[b] {
		return fromOther[a] < fromOther[b]
	}
	return a < b
}

// IsAncestor reports whether ancestor is reachable from descendant over any
// parent edge. A commit is its own ancestor.
func (r *Repo) IsAncestor(ancestor, descendant object.Hash) (bool, error) {
	if ancestor == descendant {
		return true, nil
	}
	g := r.newCommitGraph()
	seen := map[object.Hash]bool{descendant: true}
	queue := []object.Hash{descendant}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		parents, err := g.parents(h)
		if err != nil {
			return false, fmt.Errorf("is ancestor: %w", err)
		}
		for _, p := range parents {
			if p == ancestor {
				return true, nil
			}
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return false, nil
}

// Union returns the sorted set of filenames tracked by any of commits.
func Union(commits ...*object.Commit) []string {
	set := make(map[string]struct{})
	for _, c := range commits {
		if c == nil {
			continue
		}
		for name := range c.Tracked {
			set[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
