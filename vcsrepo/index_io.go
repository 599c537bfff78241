// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"fmt"
	"os"

	"github.com/arborvcs/arbor/internal/index"
)

func (r *Repository) loadIndex() (*index.Index, error) {
	b, err := os.ReadFile(r.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return index.New(), nil
		}
		return nil, fmt.Errorf("vcsrepo: read index: %w", err)
	}
	return index.Unmarshal(b)
}

func (r *Repository) saveIndex(ix *index.Index) error {
	b, err := ix.Marshal()
	if err != nil {
		return fmt.Errorf("vcsrepo: marshal index: %w", err)
	}
	tmp, err := os.CreateTemp(r.storeRoot, "tmp-index-")
	if err != nil {
		return fmt.Errorf("vcsrepo: create temp index: %w", err)
	}
	tmpName := tmp.Name()
	succeeded := false
	defer func() {
		if !succeeded {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()
	if _, err := tmp.Write(b); err != nil {
		return fmt.Errorf("vcsrepo: write temp index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("vcsrepo: close temp index: %w", err)
	}
	if err := os.Rename(tmpName, r.indexPath()); err != nil {
		return fmt.Errorf("vcsrepo: rename index into place: %w", err)
	}
	succeeded = true
	return nil
}

// withIndex is the scoped read-modify-write helper Design Notes §9
// calls for: load, pass a mutable reference to fn, persist only if fn
// succeeds, leave the on-disk index untouched otherwise.
func (r *Repository) withIndex(fn func(ix *index.Index) error) error {
	ix, err := r.loadIndex()
	if err != nil {
		return err
	}
	if err := fn(ix); err != nil {
		return err
	}
	return r.saveIndex(ix)
}
