// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"github.com/arborvcs/arbor/internal/index"
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/refstore"
	"github.com/arborvcs/arbor/internal/vcserrors"
	"github.com/arborvcs/arbor/internal/worktree"
)

// flatToCleanIndex turns a flat tree mapping into an all-clean index, the shape
// every read side of checkout/reset/fast-forward needs.
func flatToCleanIndex(flat map[string]plumbing.Hash) *index.Index {
	ix := index.New()
	for path, oid := range flat {
		ix.Set(path, oid)
	}
	return ix
}

// Checkout resolves name (spec §6), materializes its commit's tree into
// the index and working tree, and points HEAD at it: symbolic if name
// names an existing branch, direct (detached) otherwise.
func (r *Repository) Checkout(name string) error {
	ix, err := r.loadIndex()
	if err != nil {
		return err
	}
	if ix.HasConflicts() {
		return vcserrors.ErrConflictInIndex
	}

	oid, err := r.Resolve(name)
	if err != nil {
		return err
	}
	commit, err := r.graph.ParseCommit(oid)
	if err != nil {
		return err
	}
	flat, err := worktree.ReadTree(r.store, commit.Tree)
	if err != nil {
		return err
	}
	newIx := flatToCleanIndex(flat)
	if err := r.wt.Checkout(newIx); err != nil {
		return err
	}
	if err := r.saveIndex(newIx); err != nil {
		return err
	}

	branchRef := plumbing.NewBranchReferenceName(name)
	if _, err := r.refs.Reference(branchRef); err == nil {
		return r.refs.ReferenceUpdate(refstore.NewSymbolicReference(plumbing.HEAD, branchRef), nil)
	} else if !vcserrors.IsMissingRef(err) {
		return err
	}
	return r.refs.ReferenceUpdate(refstore.NewHashReference(plumbing.HEAD, oid), nil)
}

// Reset moves HEAD to oid and, depending on mode, overwrites the index
// and/or the working tree (spec §4.7; default mode is soft per §9).
func (r *Repository) Reset(oid plumbing.Hash, mode ResetMode) error {
	commit, err := r.graph.ParseCommit(oid)
	if err != nil {
		return err
	}
	if err := r.updateHEAD(oid); err != nil {
		return err
	}
	if mode == ResetSoft {
		return nil
	}

	flat, err := worktree.ReadTree(r.store, commit.Tree)
	if err != nil {
		return err
	}
	ix := flatToCleanIndex(flat)
	if mode == ResetHard {
		if err := r.wt.Checkout(ix); err != nil {
			return err
		}
	}
	return r.saveIndex(ix)
}
