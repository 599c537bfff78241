// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/refstore"
	"github.com/arborvcs/arbor/internal/vcserrors"
)

func (r *Repository) cleanupCherryPickRefs() {
	_ = r.refs.ReferenceDelete(plumbing.OrigHead)
	_ = r.refs.ReferenceDelete(plumbing.CherryPickHead)
}

// CherryPick replays commitOID's own change onto HEAD (spec §4.7).
// Root and merge commits are rejected as invalid-input.
func (r *Repository) CherryPick(commitOID plumbing.Hash) (*ApplyOutcome, error) {
	if err := r.assertNoOperationInProgress(); err != nil {
		return nil, err
	}
	ix, err := r.loadIndex()
	if err != nil {
		return nil, err
	}
	if ix.HasConflicts() {
		return nil, vcserrors.ErrConflictInIndex
	}
	if dirty, err := r.isWorkingTreeDirty(); err != nil {
		return nil, err
	} else if dirty {
		return nil, vcserrors.ErrDirtyWorkingTree
	}

	c, err := r.graph.ParseCommit(commitOID)
	if err != nil {
		return nil, err
	}
	if c.IsRoot() {
		return nil, vcserrors.NewInvalidInput("cannot cherry-pick a root commit")
	}
	if c.IsMerge() {
		return nil, vcserrors.NewInvalidInput("cannot cherry-pick a merge commit")
	}

	headOID, hasHead, err := r.headHash()
	if err != nil {
		return nil, err
	}
	if !hasHead {
		return nil, vcserrors.NewInvalidInput("HEAD is undefined, nothing to cherry-pick onto")
	}

	if err := r.refs.ReferenceUpdate(refstore.NewHashReference(plumbing.OrigHead, headOID), nil); err != nil {
		return nil, err
	}

	mergedIx, err := r.applyCommit(c, c.Parents[0], headOID)
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
		if err := r.refs.ReferenceUpdate(refstore.NewHashReference(plumbing.CherryPickHead, commitOID), nil); err != nil {
			return nil, err
		}
		return &ApplyOutcome{Conflicts: mergedIx.Conflicts}, nil
	}

	oid, skipped, err := r.finishApply(c, headOID)
	if err != nil {
		return nil, err
	}
	r.cleanupCherryPickRefs()
	return &ApplyOutcome{CommitOID: oid, Skipped: skipped}, nil
}

// CherryPickContinue resumes a cherry-pick whose conflicts the caller
// has just resolved and staged.
func (r *Repository) CherryPickContinue() (*ApplyOutcome, error) {
	ref, err := r.refs.Reference(plumbing.CherryPickHead)
	if err != nil {
		if vcserrors.IsMissingRef(err) {
			return nil, vcserrors.NewInvalidInput("no cherry-pick in progress")
		}
		return nil, err
	}
	c, err := r.graph.ParseCommit(ref.Hash())
	if err != nil {
		return nil, err
	}
	headOID, hasHead, err := r.headHash()
	if err != nil {
		return nil, err
	}
	if !hasHead {
		return nil, vcserrors.NewInvalidInput("HEAD is undefined mid cherry-pick")
	}

	oid, skipped, err := r.finishApply(c, headOID)
	if err != nil {
		return nil, err
	}
	r.cleanupCherryPickRefs()
	return &ApplyOutcome{CommitOID: oid, Skipped: skipped}, nil
}

// CherryPickAbort hard-resets to ORIG_HEAD and clears the in-progress
// markers.
func (r *Repository) CherryPickAbort() error {
	orig, err := r.refs.Resolve(plumbing.OrigHead)
	if err != nil {
		if vcserrors.IsMissingRef(err) {
			return vcserrors.NewInvalidInput("no cherry-pick in progress")
		}
		return err
	}
	if err := r.Reset(orig, ResetHard); err != nil {
		return err
	}
	r.cleanupCherryPickRefs()
	return nil
}
