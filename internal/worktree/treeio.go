// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package worktree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arborvcs/arbor/internal/index"
	"github.com/arborvcs/arbor/internal/object"
	"github.com/arborvcs/arbor/internal/objstore"
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/vcserrors"
)

// WriteTree serializes ix into nested tree objects and returns the
// root's OID (spec §4.4). Conflicted entries have no resolved OID yet,
// so a conflicted index cannot be written: commit surfaces this as a
// distinct error rather than silently dropping the path.
func WriteTree(store *objstore.Store, ix *index.Index) (plumbing.Hash, error) {
	if ix.HasConflicts() {
		return plumbing.ZeroHash, vcserrors.ErrConflictInIndex
	}
	flat := make(map[string]plumbing.Hash, len(ix.Entries))
	for path, entry := range ix.Entries {
		flat[path] = entry.OID
	}
	return writeTreeNode(store, flat, "")
}

// node is an in-progress directory: either a resolved blob (leaf) or a
// further-nested directory (branch), keyed by path segment.
type node struct {
	oid      plumbing.Hash
	isLeaf   bool
	children map[string]*node
}

func writeTreeNode(store *objstore.Store, flat map[string]plumbing.Hash, prefix string) (plumbing.Hash, error) {
	root := &node{children: make(map[string]*node)}
	for path, oid := range flat {
		rel := path
		if prefix != "" {
			if !strings.HasPrefix(path, prefix+"/") {
				continue
			}
			rel = path[len(prefix)+1:]
		} else if strings.HasPrefix(path, "/") {
			continue
		}
		insert(root, strings.Split(rel, "/"), oid)
	}

	var names []string
	for name := range root.children {
		names = append(names, name)
	}
	sort.Strings(names)

	tree := &object.Tree{}
	for _, name := range names {
		child := root.children[name]
		if child.isLeaf {
			tree.Entries = append(tree.Entries, object.TreeEntry{Kind: object.EntryBlob, OID: child.oid, Name: name})
			continue
		}
		childPrefix := name
		if prefix != "" {
			childPrefix = prefix + "/" + name
		}
		oid, err := writeTreeNode(store, flat, childPrefix)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		tree.Entries = append(tree.Entries, object.TreeEntry{Kind: object.EntryTree, OID: oid, Name: name})
	}
	return store.HashObject(object.TreeKind, tree.Encode())
}

func insert(root *node, segments []string, oid plumbing.Hash) {
	cur := root
	for i, seg := range segments {
		last := i == len(segments)-1
		child, ok := cur.children[seg]
		if !ok {
			child = &node{children: make(map[string]*node)}
			cur.children[seg] = child
		}
		if last {
			child.isLeaf = true
			child.oid = oid
			return
		}
		cur = child
	}
}

// ReadTree walks a tree object depth-first, producing the flat
// path->oid mapping spec §4.4 defines, rejecting ".", "..", and names
// containing "/".
func ReadTree(store *objstore.Store, root plumbing.Hash) (map[string]plumbing.Hash, error) {
	out := make(map[string]plumbing.Hash)
	if err := readTreeInto(store, root, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

func readTreeInto(store *objstore.Store, oid plumbing.Hash, prefix string, out map[string]plumbing.Hash) error {
	payload, err := store.GetTyped(oid, object.TreeKind)
	if err != nil {
		return err
	}
	tree, err := object.DecodeTree(payload)
	if err != nil {
		return err
	}
	for _, e := range tree.Entries {
		if e.Name == "." || e.Name == ".." || strings.Contains(e.Name, "/") {
			return fmt.Errorf("worktree: invalid tree entry name %q", e.Name)
		}
		path := e.Name
		if prefix != "" {
			path = prefix + "/" + e.Name
		}
		if e.Kind == object.EntryTree {
			if err := readTreeInto(store, e.OID, path, out); err != nil {
				return err
			}
			continue
		}
		out[path] = e.OID
	}
	return nil
}
