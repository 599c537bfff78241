// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/refstore"
	"github.com/arborvcs/arbor/internal/vcserrors"
)

// CreateBranch points a new refs/heads/<name> at oid, failing if one
// already exists (supplemented per SPEC_FULL.md §C.3).
func (r *Repository) CreateBranch(name string, at plumbing.Hash) error {
	refName := plumbing.NewBranchReferenceName(name)
	if _, err := r.refs.Reference(refName); err == nil {
		return vcserrors.NewInvalidInput("branch already exists: " + name)
	} else if !vcserrors.IsMissingRef(err) {
		return err
	}
	if _, err := r.graph.ParseCommit(at); err != nil {
		return err
	}
	return r.refs.ReferenceUpdate(refstore.NewHashReference(refName, at), nil)
}

// Branches lists every local branch reference.
func (r *Repository) Branches() ([]*refstore.Reference, error) {
	return r.refs.IterReferences("refs/heads/")
}

// CreateTag points a new refs/tags/<name> at oid, failing if one
// already exists.
func (r *Repository) CreateTag(name string, at plumbing.Hash) error {
	refName := plumbing.NewTagReferenceName(name)
	if _, err := r.refs.Reference(refName); err == nil {
		return vcserrors.NewInvalidInput("tag already exists: " + name)
	} else if !vcserrors.IsMissingRef(err) {
		return err
	}
	if _, err := r.graph.ParseCommit(at); err != nil {
		return err
	}
	return r.refs.ReferenceUpdate(refstore.NewHashReference(refName, at), nil)
}

// Tags lists every tag reference.
func (r *Repository) Tags() ([]*refstore.Reference, error) {
	return r.refs.IterReferences("refs/tags/")
}
