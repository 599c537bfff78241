// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"time"

	"github.com/arborvcs/arbor/internal/config"
	"github.com/arborvcs/arbor/internal/object"
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/vcserrors"
	"github.com/arborvcs/arbor/internal/worktree"
	"github.com/sirupsen/logrus"
)

// Commit writes the current index as a tree and stores a new commit
// object over it (spec §4.7). Parents are HEAD (if defined) plus
// MERGE_HEAD when allowMergeParent is true and a merge is in progress;
// consuming MERGE_HEAD this way also clears it and ORIG_HEAD.
func (r *Repository) Commit(message string, authorOverrides config.User, allowMergeParent bool) (plumbing.Hash, error) {
	ix, err := r.loadIndex()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if ix.HasConflicts() {
		return plumbing.ZeroHash, vcserrors.ErrConflictInIndex
	}

	treeOID, err := worktree.WriteTree(r.store, ix)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	var parents []plumbing.Hash
	headOID, hasHead, err := r.headHash()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if hasHead {
		parents = append(parents, headOID)
	}

	mergeConsumed := false
	if allowMergeParent {
		mh, err := r.refs.Reference(plumbing.MergeHead)
		if err == nil {
			parents = append(parents, mh.Hash())
			mergeConsumed = true
		} else if !vcserrors.IsMissingRef(err) {
			return plumbing.ZeroHash, err
		}
	}

	user := r.cfg.ResolveUser(authorOverrides)
	sig := plumbing.NewSignature(user.Name, user.Email, time.Now())

	c := &object.Commit{
		Tree:      treeOID,
		Parents:   parents,
		Author:    sig,
		Committer: sig,
		Message:   message,
	}
	oid, err := r.store.HashObject(object.CommitKind, c.Encode())
	if err != nil {
		return plumbing.ZeroHash, err
	}

	if err := r.updateHEAD(oid); err != nil {
		return plumbing.ZeroHash, err
	}

	if mergeConsumed {
		_ = r.refs.ReferenceDelete(plumbing.MergeHead)
		_ = r.refs.ReferenceDelete(plumbing.OrigHead)
	}

	r.log.WithFields(logrus.Fields{"oid": oid.String(), "parents": len(parents)}).Info("vcsrepo: commit")
	return oid, nil
}
