// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"errors"

	"github.com/arborvcs/arbor/internal/object"
	"github.com/arborvcs/arbor/internal/plumbing"
)

// History walks first-parent-prioritized ancestry from rev and returns
// the decoded commits in visit order, stopping once maxCount have been
// collected (maxCount <= 0 means unbounded). Supplemented per
// SPEC_FULL.md §C.4.
func (r *Repository) History(rev string, maxCount int) ([]*object.Commit, error) {
	start, err := r.Resolve(rev)
	if err != nil {
		return nil, err
	}

	var commits []*object.Commit
	err = r.graph.IterCommitsAndParents([]plumbing.Hash{start}, func(oid plumbing.Hash) error {
		c, err := r.graph.ParseCommit(oid)
		if err != nil {
			return err
		}
		commits = append(commits, c)
		if maxCount > 0 && len(commits) >= maxCount {
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return nil, err
	}
	return commits, nil
}
