// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arborvcs/arbor/internal/index"
	"github.com/arborvcs/arbor/internal/object"
)

// Add stages each path (spec §4.7): an existing regular file is hashed
// and staged clean, resolving any prior conflict there; a directory is
// recursed into, skipping ignored paths; a path missing from disk but
// present in the index stages a deletion.
func (r *Repository) Add(paths ...string) error {
	return r.withIndex(func(ix *index.Index) error {
		for _, p := range paths {
			if err := r.addPath(ix, filepath.ToSlash(p)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) addPath(ix *index.Index, relPath string) error {
	if r.wt.IsIgnored(relPath) {
		return nil
	}
	full := filepath.Join(r.root, filepath.FromSlash(relPath))
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			ix.Remove(relPath)
			return nil
		}
		return err
	}
	if info.IsDir() {
		return filepath.WalkDir(full, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(r.root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if r.wt.IsIgnored(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if path == full || d.IsDir() {
				return nil
			}
			return r.addPath(ix, rel)
		})
	}
	if !info.Mode().IsRegular() {
		return nil
	}
	content, err := os.ReadFile(full)
	if err != nil {
		return err
	}
	oid, err := r.store.HashObject(object.BlobKind, content)
	if err != nil {
		return err
	}
	ix.Set(relPath, oid)
	return nil
}
