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

// Merge merges other into HEAD (spec §4.7). A fast-forward (merge base
// equals HEAD) simply moves HEAD; otherwise it performs the three-way
// index merge of spec §4.6, leaving MERGE_HEAD/ORIG_HEAD set and any
// conflicts for the caller to resolve with Add then Commit.
func (r *Repository) Merge(other plumbing.Hash, labelOther string) (*MergeResult, error) {
	ix, err := r.loadIndex()
	if err != nil {
		return nil, err
	}
	if ix.HasConflicts() {
		return nil, vcserrors.ErrConflictInIndex
	}
	if _, err := r.refs.Reference(plumbing.MergeHead); err == nil {
		return nil, vcserrors.ErrOperationInProgress
	} else if !vcserrors.IsMissingRef(err) {
		return nil, err
	}

	headOID, hasHead, err := r.headHash()
	if err != nil {
		return nil, err
	}
	if !hasHead {
		return nil, vcserrors.NewInvalidInput("HEAD is undefined, nothing to merge into")
	}

	base, err := r.graph.GetMergeBase(other, headOID)
	if err != nil {
		return nil, err
	}

	if base == headOID {
		otherCommit, err := r.graph.ParseCommit(other)
		if err != nil {
			return nil, err
		}
		flat, err := worktree.ReadTree(r.store, otherCommit.Tree)
		if err != nil {
			return nil, err
		}
		newIx := flatToCleanIndex(flat)
		if err := r.wt.Checkout(newIx); err != nil {
			return nil, err
		}
		if err := r.saveIndex(newIx); err != nil {
			return nil, err
		}
		if err := r.updateHEAD(other); err != nil {
			return nil, err
		}
		r.log.Info("vcsrepo: fast-forward merge")
		return &MergeResult{FastForward: true}, nil
	}

	if err := r.refs.ReferenceUpdate(refstore.NewHashReference(plumbing.MergeHead, other), nil); err != nil {
		return nil, err
	}
	if err := r.refs.ReferenceUpdate(refstore.NewHashReference(plumbing.OrigHead, headOID), nil); err != nil {
		return nil, err
	}

	mergedIx, err := r.mergeTreesAgainstBase(base, headOID, other, "HEAD", labelOther)
	if err != nil {
		return nil, err
	}
	if err := r.wt.Checkout(mergedIx); err != nil {
		return nil, err
	}
	if err := r.saveIndex(mergedIx); err != nil {
		return nil, err
	}

	if len(mergedIx.Conflicts) > 0 {
		r.log.WithField("conflicts", len(mergedIx.Conflicts)).Info("vcsrepo: merge produced conflicts")
	}
	return &MergeResult{Conflicts: mergedIx.Conflicts}, nil
}

// mergeTreesAgainstBase resolves base/head/other commits to flat trees
// and runs the §4.6 three-way merge over them.
func (r *Repository) mergeTreesAgainstBase(base, head, other plumbing.Hash, labelHead, labelOther string) (*index.Index, error) {
	baseCommit, err := r.graph.ParseCommit(base)
	if err != nil {
		return nil, err
	}
	headCommit, err := r.graph.ParseCommit(head)
	if err != nil {
		return nil, err
	}
	otherCommit, err := r.graph.ParseCommit(other)
	if err != nil {
		return nil, err
	}
	baseFlat, err := worktree.ReadTree(r.store, baseCommit.Tree)
	if err != nil {
		return nil, err
	}
	headFlat, err := worktree.ReadTree(r.store, headCommit.Tree)
	if err != nil {
		return nil, err
	}
	otherFlat, err := worktree.ReadTree(r.store, otherCommit.Tree)
	if err != nil {
		return nil, err
	}
	return index.MergeTreesWithMerger(r.store, baseFlat, headFlat, otherFlat, labelHead, labelOther, r.conflictMerger())
}

// MergeAbort requires a merge in progress; it hard-resets to ORIG_HEAD
// and clears MERGE_HEAD/ORIG_HEAD (spec §4.7).
func (r *Repository) MergeAbort() error {
	if _, err := r.refs.Reference(plumbing.MergeHead); err != nil {
		if vcserrors.IsMissingRef(err) {
			return vcserrors.NewInvalidInput("no merge in progress")
		}
		return err
	}
	orig, err := r.refs.Resolve(plumbing.OrigHead)
	if err != nil {
		return err
	}
	if err := r.Reset(orig, ResetHard); err != nil {
		return err
	}
	_ = r.refs.ReferenceDelete(plumbing.MergeHead)
	_ = r.refs.ReferenceDelete(plumbing.OrigHead)
	return nil
}
