// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package worktree implements the working-tree side of the tree
// service (spec §4.4): scanning the filesystem into a flat path->oid
// view, and materializing an index back onto disk.
package worktree

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arborvcs/arbor/internal/object"
	"github.com/arborvcs/arbor/internal/objstore"
	"github.com/arborvcs/arbor/internal/plumbing"
)

// Tree scans and materializes the working directory rooted at Root,
// treating any path component named StoreDirName as the repository's
// own metadata directory and skipping it.
type Tree struct {
	Root         string
	StoreDirName string
	Store        *objstore.Store
}

func New(root, storeDirName string, store *objstore.Store) *Tree {
	return &Tree{Root: root, StoreDirName: storeDirName, Store: store}
}

// IsIgnored reports whether relPath (slash-separated, relative to Root)
// passes through the store directory.
func (t *Tree) IsIgnored(relPath string) bool {
	for _, part := range strings.Split(relPath, "/") {
		if part == t.StoreDirName {
			return true
		}
	}
	return false
}

// Scan walks the working directory, hashing every regular file it finds
// into the object store and returning the resulting path->oid mapping.
func (t *Tree) Scan() (map[string]plumbing.Hash, error) {
	out := make(map[string]plumbing.Hash)
	err := filepath.WalkDir(t.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == t.Root {
			return nil
		}
		rel, err := filepath.Rel(t.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if t.IsIgnored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		oid, err := t.Store.HashObject(object.BlobKind, content)
		if err != nil {
			return err
		}
		out[rel] = oid
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
