// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package worktree

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arborvcs/arbor/internal/index"
	"github.com/arborvcs/arbor/internal/object"
)

// Empty deletes every non-ignored file in the working tree, then tries
// to remove directories left empty by that deletion. Failure to remove
// a directory because residual ignored files remain in it is tolerated,
// matching spec §4.4's checkout contract.
func (t *Tree) Empty() error {
	var dirs []string
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
			dirs = append(dirs, path)
			return nil
		}
		return os.Remove(path)
	})
	if err != nil {
		return err
	}
	// Remove directories deepest-first so a parent only disappears once
	// its children are gone.
	for i := len(dirs) - 1; i >= 0; i-- {
		_ = os.Remove(dirs[i])
	}
	return nil
}

// Checkout materializes ix onto disk: every entry, clean or conflicted,
// is written. Conflicted entries are written using their merged_oid
// (the conflict-marker blob), per spec §4.4, so the user can resolve
// them directly in the working tree.
func (t *Tree) Checkout(ix *index.Index) error {
	if err := t.Empty(); err != nil {
		return err
	}
	for path, entry := range ix.Entries {
		oid := entry.OID
		if entry.IsConflict() {
			oid = entry.Merged
		}
		payload, err := t.Store.GetTyped(oid, object.BlobKind)
		if err != nil {
			return err
		}
		full := filepath.Join(t.Root, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(full, payload, 0o644); err != nil {
			return err
		}
	}
	return nil
}
