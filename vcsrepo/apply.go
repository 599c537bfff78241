// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"time"

	"github.com/arborvcs/arbor/internal/config"
	"github.com/arborvcs/arbor/internal/index"
	"github.com/arborvcs/arbor/internal/object"
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/vcserrors"
	"github.com/arborvcs/arbor/internal/worktree"
)

// applyCommit is the shared first half of cherry-pick and each rebase
// replay step (spec §4.7's _apply_commit): it runs the §4.6 three-way
// merge of c's own change (base = c's parent's tree, other = c's tree)
// against the current HEAD tree, producing an index that may or may
// not still contain conflicts.
func (r *Repository) applyCommit(c *object.Commit, base, headOID plumbing.Hash) (*index.Index, error) {
	headCommit, err := r.graph.ParseCommit(headOID)
	if err != nil {
		return nil, err
	}
	baseCommit, err := r.graph.ParseCommit(base)
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
	otherFlat, err := worktree.ReadTree(r.store, c.Tree)
	if err != nil {
		return nil, err
	}
	return index.MergeTreesWithMerger(r.store, baseFlat, headFlat, otherFlat, "HEAD", "cherry-pick", r.conflictMerger())
}

// finishApply is _finish_apply: write the now-resolved index as a
// tree; if it equals HEAD's tree the change is empty and is skipped
// (restoring the working tree to HEAD); otherwise produce a commit
// preserving c's author, with the current identity as committer.
func (r *Repository) finishApply(c *object.Commit, headOID plumbing.Hash) (oid plumbing.Hash, skipped bool, err error) {
	ix, err := r.loadIndex()
	if err != nil {
		return plumbing.ZeroHash, false, err
	}
	if ix.HasConflicts() {
		return plumbing.ZeroHash, false, vcserrors.ErrConflictInIndex
	}

	newTree, err := worktree.WriteTree(r.store, ix)
	if err != nil {
		return plumbing.ZeroHash, false, err
	}
	headCommit, err := r.graph.ParseCommit(headOID)
	if err != nil {
		return plumbing.ZeroHash, false, err
	}

	if newTree == headCommit.Tree {
		flat, err := worktree.ReadTree(r.store, headCommit.Tree)
		if err != nil {
			return plumbing.ZeroHash, false, err
		}
		restoreIx := flatToCleanIndex(flat)
		if err := r.wt.Checkout(restoreIx); err != nil {
			return plumbing.ZeroHash, false, err
		}
		if err := r.saveIndex(restoreIx); err != nil {
			return plumbing.ZeroHash, false, err
		}
		r.log.WithField("commit", headOID.String()).Warn("vcsrepo: skipped empty change")
		return plumbing.ZeroHash, true, nil
	}

	user := r.cfg.ResolveUser(config.User{})
	committer := plumbing.NewSignature(user.Name, user.Email, time.Now())
	newCommit := &object.Commit{
		Tree:      newTree,
		Parents:   []plumbing.Hash{headOID},
		Author:    c.Author,
		Committer: committer,
		Message:   c.Message,
	}
	newOID, err := r.store.HashObject(object.CommitKind, newCommit.Encode())
	if err != nil {
		return plumbing.ZeroHash, false, err
	}
	if err := r.updateHEAD(newOID); err != nil {
		return plumbing.ZeroHash, false, err
	}
	return newOID, false, nil
}
