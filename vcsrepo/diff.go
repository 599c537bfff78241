// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"sort"

	"github.com/arborvcs/arbor/internal/diffmerge"
	"github.com/arborvcs/arbor/internal/object"
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/worktree"
)

// DiffTrees resolves revA and revB and returns, per changed path, the
// unified line diff between the two revisions' blobs (spec §4.3's
// line_diff, supplemented per SPEC_FULL.md §C.2). A path added or
// removed between the two revisions diffs against an empty blob.
func (r *Repository) DiffTrees(revA, revB string) (map[string][]byte, error) {
	flatA, err := r.readTreeAtRev(revA)
	if err != nil {
		return nil, err
	}
	flatB, err := r.readTreeAtRev(revB)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var paths []string
	for p := range flatA {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for p := range flatB {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	out := make(map[string][]byte)
	for _, p := range paths {
		oidA, inA := flatA[p]
		oidB, inB := flatB[p]
		if inA && inB && oidA == oidB {
			continue
		}

		var contentA, contentB []byte
		if inA {
			b, err := r.store.GetTyped(oidA, object.BlobKind)
			if err != nil {
				return nil, err
			}
			contentA = b
		}
		if inB {
			b, err := r.store.GetTyped(oidB, object.BlobKind)
			if err != nil {
				return nil, err
			}
			contentB = b
		}

		patch := diffmerge.LineDiff(contentA, contentB, revA+":"+p, revB+":"+p)
		if len(patch) > 0 {
			out[p] = patch
		}
	}
	return out, nil
}

func (r *Repository) readTreeAtRev(rev string) (map[string]plumbing.Hash, error) {
	oid, err := r.Resolve(rev)
	if err != nil {
		return nil, err
	}
	c, err := r.graph.ParseCommit(oid)
	if err != nil {
		return nil, err
	}
	return worktree.ReadTree(r.store, c.Tree)
}
