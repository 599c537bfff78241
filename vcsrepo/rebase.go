// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/refstore"
	"github.com/arborvcs/arbor/internal/vcserrors"
)

const rebaseStateFileName = "REBASE_STATE"

// rebaseState is the persisted replay list plus cursor that makes
// rebase resumable, ported from the teacher's RebaseMD TOML shape.
type rebaseState struct {
	OrigHead     plumbing.Hash   `toml:"orig_head"`
	Upstream     plumbing.Hash   `toml:"upstream"`
	Commits      []plumbing.Hash `toml:"commits"`
	CurrentIndex int             `toml:"current_index"`
}

func (r *Repository) rebaseStatePath() string {
	return filepath.Join(r.storeRoot, rebaseStateFileName)
}

func (r *Repository) loadRebaseState() (*rebaseState, error) {
	var st rebaseState
	if _, err := toml.DecodeFile(r.rebaseStatePath(), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *Repository) saveRebaseState(st *rebaseState) error {
	f, err := os.Create(r.rebaseStatePath())
	if err != nil {
		return fmt.Errorf("vcsrepo: create rebase state: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(st)
}

func (r *Repository) clearRebaseState() {
	_ = os.Remove(r.rebaseStatePath())
}

// commitsToReplay walks first-parent from head back to (but excluding)
// base, rejecting any merge commit along the way, and returns the
// walk reversed into replay (oldest-first) order (spec §4.7, §9).
func (r *Repository) commitsToReplay(head, base plumbing.Hash) ([]plumbing.Hash, error) {
	var commits []plumbing.Hash
	cur := head
	for cur != base {
		c, err := r.graph.ParseCommit(cur)
		if err != nil {
			return nil, err
		}
		if c.IsMerge() {
			return nil, vcserrors.NewInvalidInput("rebase over a merge commit is not supported")
		}
		commits = append(commits, cur)
		if c.IsRoot() {
			break
		}
		cur = c.Parents[0]
	}
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	return commits, nil
}

// Rebase replays HEAD's commits (since their merge-base with upstream)
// onto upstream (spec §4.7).
func (r *Repository) Rebase(upstream plumbing.Hash) (*ApplyOutcome, error) {
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

	headOID, hasHead, err := r.headHash()
	if err != nil {
		return nil, err
	}
	if !hasHead {
		return nil, vcserrors.NewInvalidInput("HEAD is undefined, nothing to rebase")
	}

	base, err := r.graph.GetMergeBase(upstream, headOID)
	if err != nil {
		return nil, err
	}
	if base == upstream {
		return &ApplyOutcome{AlreadyUpToDate: true, Done: true}, nil
	}

	commits, err := r.commitsToReplay(headOID, base)
	if err != nil {
		return nil, err
	}

	if err := r.refs.ReferenceUpdate(refstore.NewHashReference(plumbing.OrigHead, headOID), nil); err != nil {
		return nil, err
	}
	if err := r.Reset(upstream, ResetHard); err != nil {
		return nil, err
	}

	st := &rebaseState{OrigHead: headOID, Upstream: upstream, Commits: commits, CurrentIndex: 0}
	if err := r.saveRebaseState(st); err != nil {
		return nil, err
	}
	return r.rebaseReplayLoop(st)
}

// rebaseReplayLoop applies each not-yet-replayed commit in st.Commits
// in order. When a step stops on conflicts, st (with CurrentIndex
// pointing at that step) is persisted so RebaseContinue can resume it.
func (r *Repository) rebaseReplayLoop(st *rebaseState) (*ApplyOutcome, error) {
	var last ApplyOutcome
	for st.CurrentIndex < len(st.Commits) {
		oid := st.Commits[st.CurrentIndex]
		c, err := r.graph.ParseCommit(oid)
		if err != nil {
			return nil, err
		}
		headOID, hasHead, err := r.headHash()
		if err != nil {
			return nil, err
		}
		if !hasHead {
			return nil, vcserrors.NewInvalidInput("HEAD is undefined mid rebase")
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
			if err := r.saveRebaseState(st); err != nil {
				return nil, err
			}
			return &ApplyOutcome{Conflicts: mergedIx.Conflicts}, nil
		}

		oid2, skipped, err := r.finishApply(c, headOID)
		if err != nil {
			return nil, err
		}
		st.CurrentIndex++
		last = ApplyOutcome{CommitOID: oid2, Skipped: skipped}
	}

	r.clearRebaseState()
	_ = r.refs.ReferenceDelete(plumbing.OrigHead)
	last.Done = true
	return &last, nil
}

// RebaseContinue resumes a rebase whose conflicts the caller has just
// resolved and staged.
func (r *Repository) RebaseContinue() (*ApplyOutcome, error) {
	st, err := r.loadRebaseState()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vcserrors.NewInvalidInput("no rebase in progress")
		}
		return nil, err
	}
	ix, err := r.loadIndex()
	if err != nil {
		return nil, err
	}
	if ix.HasConflicts() {
		return nil, vcserrors.ErrConflictInIndex
	}

	c, err := r.graph.ParseCommit(st.Commits[st.CurrentIndex])
	if err != nil {
		return nil, err
	}
	headOID, hasHead, err := r.headHash()
	if err != nil {
		return nil, err
	}
	if !hasHead {
		return nil, vcserrors.NewInvalidInput("HEAD is undefined mid rebase")
	}
	if _, _, err := r.finishApply(c, headOID); err != nil {
		return nil, err
	}
	st.CurrentIndex++
	return r.rebaseReplayLoop(st)
}

// RebaseAbort hard-resets to the original HEAD and discards the
// persisted rebase state.
func (r *Repository) RebaseAbort() error {
	st, err := r.loadRebaseState()
	if err != nil {
		if os.IsNotExist(err) {
			return vcserrors.NewInvalidInput("no rebase in progress")
		}
		return err
	}
	if err := r.Reset(st.OrigHead, ResetHard); err != nil {
		return err
	}
	r.clearRebaseState()
	_ = r.refs.ReferenceDelete(plumbing.OrigHead)
	return nil
}
