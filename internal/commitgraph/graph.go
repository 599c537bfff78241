// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package commitgraph walks commit ancestry: first-parent-prioritized
// BFS over commits and the objects they reach, and merge-base /
// is-ancestor queries (spec §4.5).
package commitgraph

import (
	"github.com/arborvcs/arbor/internal/object"
	"github.com/arborvcs/arbor/internal/objstore"
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/vcserrors"
)

// Graph reads commits lazily from an object store.
type Graph struct {
	store *objstore.Store
}

func NewGraph(store *objstore.Store) *Graph {
	return &Graph{store: store}
}

// ParseCommit reads and decodes the commit at oid.
func (g *Graph) ParseCommit(oid plumbing.Hash) (*object.Commit, error) {
	payload, err := g.store.GetTyped(oid, object.CommitKind)
	if err != nil {
		return nil, err
	}
	return object.DecodeCommit(payload)
}

// IterCommitsAndParents performs a BFS from roots with first-parent
// priority: a commit's first parent is pushed to the front of the
// queue so it is visited before later parents, matching the "first
// parent popped next" rule. Each OID is yielded (via visit) before its
// commit object is parsed, so a caller may fetch the object on demand.
func (g *Graph) IterCommitsAndParents(roots []plumbing.Hash, visit func(plumbing.Hash) error) error {
	seen := make(map[plumbing.Hash]bool, len(roots))
	queue := make([]plumbing.Hash, 0, len(roots))
	for _, r := range roots {
		if !seen[r] {
			seen[r] = true
			queue = append(queue, r)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if err := visit(cur); err != nil {
			return err
		}
		c, err := g.ParseCommit(cur)
		if err != nil {
			return err
		}
		if len(c.Parents) == 0 {
			continue
		}
		first := c.Parents[0]
		rest := c.Parents[1:]
		var newQueue []plumbing.Hash
		if !seen[first] {
			seen[first] = true
			newQueue = append(newQueue, first)
		}
		newQueue = append(newQueue, queue...)
		for _, p := range rest {
			if !seen[p] {
				seen[p] = true
				newQueue = append(newQueue, p)
			}
		}
		queue = newQueue
	}
	return nil
}

// IterObjectsInCommits yields every commit OID reachable from roots,
// plus its tree OID and every blob/subtree OID reachable from that
// tree — each OID yielded before it is read, mirroring
// IterCommitsAndParents's contract.
func (g *Graph) IterObjectsInCommits(roots []plumbing.Hash, visit func(plumbing.Hash) error) error {
	seenTrees := make(map[plumbing.Hash]bool)
	return g.IterCommitsAndParents(roots, func(commitOID plumbing.Hash) error {
		if err := visit(commitOID); err != nil {
			return err
		}
		c, err := g.ParseCommit(commitOID)
		if err != nil {
			return err
		}
		return g.iterTreeObjects(c.Tree, seenTrees, visit)
	})
}

func (g *Graph) iterTreeObjects(oid plumbing.Hash, seen map[plumbing.Hash]bool, visit func(plumbing.Hash) error) error {
	if seen[oid] {
		return nil
	}
	seen[oid] = true
	if err := visit(oid); err != nil {
		return err
	}
	payload, err := g.store.GetTyped(oid, object.TreeKind)
	if err != nil {
		return err
	}
	tree, err := object.DecodeTree(payload)
	if err != nil {
		return err
	}
	for _, e := range tree.Entries {
		if e.Kind == object.EntryTree {
			if err := g.iterTreeObjects(e.OID, seen, visit); err != nil {
				return err
			}
			continue
		}
		if seen[e.OID] {
			continue
		}
		seen[e.OID] = true
		if err := visit(e.OID); err != nil {
			return err
		}
	}
	return nil
}

// GetMergeBase implements alternating bidirectional BFS (spec §4.5,
// grounded on the distillation source's get_merge_base): expand a
// from one side and b from the other, each with its own visited set,
// until a node appears in both. Returns vcserrors.ErrNoCommonHistory
// if both frontiers drain first.
func (g *Graph) GetMergeBase(a, b plumbing.Hash) (plumbing.Hash, error) {
	if a == b {
		return a, nil
	}
	visited1 := map[plumbing.Hash]bool{a: true}
	visited2 := map[plumbing.Hash]bool{b: true}
	frontier1 := []plumbing.Hash{a}
	frontier2 := []plumbing.Hash{b}

	for len(frontier1) > 0 || len(frontier2) > 0 {
		if len(frontier1) > 0 {
			cur := frontier1[0]
			frontier1 = frontier1[1:]
			if visited2[cur] {
				return cur, nil
			}
			c, err := g.ParseCommit(cur)
			if err != nil {
				return plumbing.ZeroHash, err
			}
			for _, p := range c.Parents {
				if !visited1[p] {
					visited1[p] = true
					frontier1 = append(frontier1, p)
				}
			}
		}
		if len(frontier2) > 0 {
			cur := frontier2[0]
			frontier2 = frontier2[1:]
			if visited1[cur] {
				return cur, nil
			}
			c, err := g.ParseCommit(cur)
			if err != nil {
				return plumbing.ZeroHash, err
			}
			for _, p := range c.Parents {
				if !visited2[p] {
					visited2[p] = true
					frontier2 = append(frontier2, p)
				}
			}
		}
	}
	return plumbing.ZeroHash, vcserrors.ErrNoCommonHistory
}

// IsAncestor reports whether maybeAncestor is reachable from c.
func (g *Graph) IsAncestor(c, maybeAncestor plumbing.Hash) (bool, error) {
	found := false
	err := g.IterCommitsAndParents([]plumbing.Hash{c}, func(oid plumbing.Hash) error {
		if oid == maybeAncestor {
			found = true
		}
		return nil
	})
	return found, err
}
