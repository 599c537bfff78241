// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"errors"

	"github.com/arborvcs/arbor/internal/plumbing"
)

// errStopWalk is an internal sentinel used to cut a commit-graph walk
// short once a caller-imposed limit is reached; it is never returned to
// callers of this package.
var errStopWalk = errors.New("vcsrepo: stop walk")

// ResetMode selects how far reset(oid) moves state (spec §4.7).
type ResetMode int

const (
	ResetSoft ResetMode = iota
	ResetMixed
	ResetHard
)

// MergeResult reports the outcome of Merge: either a fast-forward (no
// new commit, nothing further for the caller to do) or a set of
// conflicted paths left for the user to resolve and commit.
type MergeResult struct {
	FastForward bool
	Conflicts   []string
}

// ApplyOutcome is the shared result shape of cherry-pick and each
// rebase replay step (spec §4.7's _apply_commit/_finish_apply): a
// conflict, a skip (the change was already present), or a new commit.
type ApplyOutcome struct {
	CommitOID       plumbing.Hash
	Skipped         bool
	Conflicts       []string
	AlreadyUpToDate bool
	Done            bool
}
