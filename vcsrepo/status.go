// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"sort"

	"github.com/arborvcs/arbor/internal/index"
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/worktree"
)

// FileStatus names one of the per-path classifications Status reports,
// ported from the distillation source's status() (SPEC_FULL.md §C.1).
type FileStatus string

const (
	StatusUnmodified FileStatus = "unmodified"
	StatusModified   FileStatus = "modified"
	StatusAdded      FileStatus = "added"
	StatusDeleted    FileStatus = "deleted"
	StatusUntracked  FileStatus = "untracked"
)

// PathStatus is a path's staged state (index vs HEAD) and unstaged
// state (working tree vs index).
type PathStatus struct {
	Staged   FileStatus
	Worktree FileStatus
}

// Status is the three-way comparison of HEAD's tree, the index, and a
// fresh working-tree scan.
type Status map[string]PathStatus

// IsClean reports whether every path is unmodified on both axes; it is
// the "clean working tree" precondition cherry-pick and rebase require
// (spec §4.7).
func (s Status) IsClean() bool {
	for _, st := range s {
		if st.Staged != StatusUnmodified || st.Worktree != StatusUnmodified {
			return false
		}
	}
	return true
}

func (r *Repository) Status() (Status, error) {
	ix, err := r.loadIndex()
	if err != nil {
		return nil, err
	}

	headFlat := map[string]plumbing.Hash{}
	if headOID, hasHead, err := r.headHash(); err != nil {
		return nil, err
	} else if hasHead {
		headCommit, err := r.graph.ParseCommit(headOID)
		if err != nil {
			return nil, err
		}
		if headFlat, err = worktree.ReadTree(r.store, headCommit.Tree); err != nil {
			return nil, err
		}
	}

	scanned, err := r.wt.Scan()
	if err != nil {
		return nil, err
	}

	out := make(Status, len(ix.Entries))
	for _, p := range unionStatusPaths(headFlat, ix.Entries, scanned) {
		headOID, inHead := headFlat[p]
		entry, inIndex := ix.Entries[p]
		wtOID, inWT := scanned[p]

		var st PathStatus
		switch {
		case !inIndex && inHead:
			st.Staged = StatusDeleted
		case inIndex && entry.IsConflict():
			st.Staged = StatusModified
		case inIndex && !inHead:
			st.Staged = StatusAdded
		case inIndex && entry.OID != headOID:
			st.Staged = StatusModified
		default:
			st.Staged = StatusUnmodified
		}

		switch {
		case !inWT && inIndex:
			st.Worktree = StatusDeleted
		case inWT && !inIndex:
			st.Worktree = StatusUntracked
		case inWT && inIndex && !entry.IsConflict() && wtOID != entry.OID:
			st.Worktree = StatusModified
		default:
			st.Worktree = StatusUnmodified
		}

		out[p] = st
	}
	return out, nil
}

// isWorkingTreeDirty implements the "clean working tree" precondition
// of cherry-pick/rebase: no staged or unstaged changes relative to
// HEAD.
func (r *Repository) isWorkingTreeDirty() (bool, error) {
	st, err := r.Status()
	if err != nil {
		return false, err
	}
	return !st.IsClean(), nil
}

func unionStatusPaths(headFlat map[string]plumbing.Hash, entries map[string]index.Entry, scanned map[string]plumbing.Hash) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for p := range headFlat {
		add(p)
	}
	for p := range entries {
		add(p)
	}
	for p := range scanned {
		add(p)
	}
	sort.Strings(out)
	return out
}
