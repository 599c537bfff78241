// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph

import (
	"fmt"
	"sync"

	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/vcserrors"
	"golang.org/x/sync/errgroup"
)

// VerifyObjectsExist walks every object reachable from roots and
// confirms each one is present in the store, checking existence
// concurrently — the object-graph walk is read-only and safe to
// parallelize (spec §5 permits internal concurrency for this kind of
// check).
func (g *Graph) VerifyObjectsExist(roots []plumbing.Hash) error {
	var grp errgroup.Group
	grp.SetLimit(8)
	var mu sync.Mutex
	var missing []string

	err := g.IterObjectsInCommits(roots, func(oid plumbing.Hash) error {
		grp.Go(func() error {
			if g.store.Exists(oid) {
				return nil
			}
			mu.Lock()
			missing = append(missing, oid.String())
			mu.Unlock()
			return nil
		})
		return nil
	})
	if err != nil {
		return err
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("commitgraph: %d objects missing, first %s: %w", len(missing), missing[0], &vcserrors.ErrMissingObject{OID: missing[0]})
	}
	return nil
}
