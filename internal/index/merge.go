// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package index

import (
	"sort"

	"github.com/arborvcs/arbor/internal/diffmerge"
	"github.com/arborvcs/arbor/internal/object"
	"github.com/arborvcs/arbor/internal/objstore"
	"github.com/arborvcs/arbor/internal/plumbing"
)

// ConflictMerger resolves one conflicting path's three sides into merged
// bytes plus a conflict flag, matching the shape of spec §4.3's
// three_way_merge. The default is the built-in diff3 in
// internal/diffmerge; a caller may substitute a configured external
// tool (internal/diffmerge.ExternalMergeTool) instead.
type ConflictMerger func(base, head, other []byte, labelHead, labelOther string) (merged []byte, conflict bool)

func defaultMerger(base, head, other []byte, labelHead, labelOther string) ([]byte, bool) {
	return diffmerge.ThreeWayMerge(base, head, other, labelHead, "", labelOther)
}

// MergeTrees resolves base/head/other flat path->oid mappings per the
// decision table of spec §4.6 using the built-in diff3 merger, writing a
// merged blob for every conflicting path so the working tree always has
// something to show the user. Paths are visited in a stable, sorted
// order so Conflicts is deterministic.
func MergeTrees(store *objstore.Store, base, head, other map[string]plumbing.Hash, labelHead, labelOther string) (*Index, error) {
	return MergeTreesWithMerger(store, base, head, other, labelHead, labelOther, defaultMerger)
}

// MergeTreesWithMerger is MergeTrees with the per-path conflict resolver
// swapped out, used to route conflicting hunks through a configured
// external merge tool instead of the built-in diff3.
func MergeTreesWithMerger(store *objstore.Store, base, head, other map[string]plumbing.Hash, labelHead, labelOther string, merger ConflictMerger) (*Index, error) {
	if merger == nil {
		merger = defaultMerger
	}
	paths := unionPaths(base, head, other)
	ix := New()

	for _, path := range paths {
		b, bOK := base[path]
		h, hOK := head[path]
		o, oOK := other[path]

		switch {
		case !hOK && !oOK:
			// any, ∅, ∅ -> drop

		case !bOK && hOK && !oOK:
			ix.Set(path, h)

		case !bOK && !hOK && oOK:
			ix.Set(path, o)

		case bOK && !hOK && oOK && o == b:
			// drop: head deleted, other unchanged

		case bOK && hOK && h == b && !oOK:
			// drop: other deleted, head unchanged

		case bOK && hOK && h == b && oOK && o != b:
			ix.Set(path, o)

		case bOK && hOK && h != b && oOK && o == b:
			ix.Set(path, h)

		case bOK && hOK && oOK && h == o:
			ix.Set(path, h)

		case !bOK && hOK && oOK && h == o:
			ix.Set(path, h)

		case !bOK && hOK && oOK && h != o:
			if err := conflictEntry(store, ix, path, ConflictAddAdd, plumbing.ZeroHash, h, o, labelHead, labelOther, merger); err != nil {
				return nil, err
			}

		case bOK && !hOK && oOK && o != b:
			if err := conflictEntry(store, ix, path, ConflictCurrentDeleteTargetMod, b, plumbing.ZeroHash, o, labelHead, labelOther, merger); err != nil {
				return nil, err
			}

		case bOK && hOK && h != b && !oOK:
			if err := conflictEntry(store, ix, path, ConflictCurrentModTargetDelete, b, h, plumbing.ZeroHash, labelHead, labelOther, merger); err != nil {
				return nil, err
			}

		case bOK && hOK && h != b && oOK && o != b && h != o:
			if err := conflictEntry(store, ix, path, ConflictContent, b, h, o, labelHead, labelOther, merger); err != nil {
				return nil, err
			}

		default:
			// Unreachable given the table above, but fall back to a
			// content conflict rather than silently dropping data.
			if err := conflictEntry(store, ix, path, ConflictContent, b, h, o, labelHead, labelOther, merger); err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(ix.Conflicts)
	return ix, nil
}

func conflictEntry(store *objstore.Store, ix *Index, path string, ctype ConflictType, base, head, other plumbing.Hash, labelHead, labelOther string, merger ConflictMerger) error {
	baseBytes, err := blobBytes(store, base)
	if err != nil {
		return err
	}
	headBytes, err := blobBytes(store, head)
	if err != nil {
		return err
	}
	otherBytes, err := blobBytes(store, other)
	if err != nil {
		return err
	}
	merged, _ := merger(baseBytes, headBytes, otherBytes, labelHead, labelOther)
	mergedOID, err := store.HashObject(object.BlobKind, merged)
	if err != nil {
		return err
	}
	ix.Entries[path] = Conflict(ctype, mergedOID, base, head, other)
	ix.Conflicts = append(ix.Conflicts, path)
	return nil
}

func blobBytes(store *objstore.Store, oid plumbing.Hash) ([]byte, error) {
	if oid.IsZero() {
		return nil, nil
	}
	return store.GetTyped(oid, object.BlobKind)
}

func unionPaths(maps ...map[string]plumbing.Hash) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, m := range maps {
		for p := range m {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	sort.Strings(paths)
	return paths
}
