// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package vcsrepo is the explicit Repository handle (Design Notes §9):
// it is the only package that knows about every leaf subsystem (object
// store, reference store, index, tree service, commit graph,
// diff/merge, config) and implements the history operations of spec
// §4.7 — commit, checkout, reset, merge, cherry-pick, rebase, add —
// plus the read-only conveniences supplemented from the distillation
// source (status, diff, branch/tag listing, history).
package vcsrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arborvcs/arbor/internal/commitgraph"
	"github.com/arborvcs/arbor/internal/config"
	"github.com/arborvcs/arbor/internal/diffmerge"
	"github.com/arborvcs/arbor/internal/index"
	"github.com/arborvcs/arbor/internal/objstore"
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/refstore"
	"github.com/arborvcs/arbor/internal/vcserrors"
	"github.com/arborvcs/arbor/internal/worktree"
	"github.com/sirupsen/logrus"
)

// DefaultStoreDirName is the metadata directory name used when a caller
// has no preference, analogous to ".git".
const DefaultStoreDirName = ".arbor"

const indexFileName = "index"

// Repository ties every leaf subsystem to one working directory and
// one metadata root. Constructing a second Repository against another
// path is how the out-of-scope remote collaborator would "switch
// stores" (Design Notes §9); nothing here is process-global.
type Repository struct {
	root         string
	storeRoot    string
	storeDirName string

	store *objstore.Store
	refs  *refstore.Store
	graph *commitgraph.Graph
	wt    *worktree.Tree
	cfg   *config.Config
	log   *logrus.Entry
}

// Open opens the repository rooted at root, creating its metadata
// directory, loose-object store, HEAD reference (symbolic, pointing at
// an as-yet-nonexistent "master" branch), and empty index if they do
// not already exist. Per spec §3's invariant, HEAD is always defined
// once Open returns successfully.
func Open(root, storeDirName string) (*Repository, error) {
	if storeDirName == "" {
		storeDirName = DefaultStoreDirName
	}
	storeRoot := filepath.Join(root, storeDirName)
	if err := os.MkdirAll(storeRoot, 0o755); err != nil {
		return nil, fmt.Errorf("vcsrepo: create store root: %w", err)
	}

	store, err := objstore.NewStore(storeRoot)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(storeRoot)
	if err != nil {
		return nil, fmt.Errorf("vcsrepo: load config: %w", err)
	}

	repo := &Repository{
		root:         root,
		storeRoot:    storeRoot,
		storeDirName: storeDirName,
		store:        store,
		refs:         refstore.NewStore(storeRoot),
		graph:        commitgraph.NewGraph(store),
		wt:           worktree.New(root, storeDirName, store),
		cfg:          cfg,
		log:          logrus.WithField("repo", root),
	}

	if _, err := repo.refs.Reference(plumbing.HEAD); err != nil {
		if !vcserrors.IsMissingRef(err) {
			return nil, err
		}
		initialHEAD := refstore.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("master"))
		if err := repo.refs.ReferenceUpdate(initialHEAD, nil); err != nil {
			return nil, fmt.Errorf("vcsrepo: initialize HEAD: %w", err)
		}
	}

	if _, err := os.Stat(repo.indexPath()); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := repo.saveIndex(index.New()); err != nil {
			return nil, fmt.Errorf("vcsrepo: initialize index: %w", err)
		}
	}

	return repo, nil
}

func (r *Repository) Root() string           { return r.root }
func (r *Repository) StoreRoot() string      { return r.storeRoot }
func (r *Repository) Store() *objstore.Store { return r.store }
func (r *Repository) Config() *config.Config { return r.cfg }
func (r *Repository) Log() *logrus.Entry     { return r.log }

// conflictMerger builds the per-path conflict resolver used by the
// three-way index merge (spec §4.3/§4.6): the built-in diff3 unless
// config key merge.tool names an external command line, in which case
// conflicting hunks are shelled out to it and a tool failure falls back
// to diff3 rather than aborting the whole merge.
func (r *Repository) conflictMerger() index.ConflictMerger {
	tool := r.cfg.Merge.Tool
	if tool == "" {
		return nil
	}
	ext := &diffmerge.ExternalMergeTool{CommandLine: tool}
	return func(base, head, other []byte, labelHead, labelOther string) ([]byte, bool) {
		merged, conflict, err := ext.Merge(context.Background(), base, head, other, labelHead, labelOther)
		if err != nil {
			r.log.WithError(err).WithField("tool", tool).Warn("vcsrepo: external merge tool failed, falling back to built-in diff3")
			return diffmerge.ThreeWayMerge(base, head, other, labelHead, "", labelOther)
		}
		return merged, conflict
	}
}

func (r *Repository) indexPath() string {
	return filepath.Join(r.storeRoot, indexFileName)
}

// headHash resolves HEAD, distinguishing "no commits yet" (a symbolic
// HEAD pointing at a branch that has never been committed to) from a
// real error.
func (r *Repository) headHash() (oid plumbing.Hash, defined bool, err error) {
	h, err := r.refs.Resolve(plumbing.HEAD)
	if err != nil {
		if vcserrors.IsMissingRef(err) {
			return plumbing.ZeroHash, false, nil
		}
		return plumbing.ZeroHash, false, err
	}
	return h, true, nil
}

// updateHEAD writes oid through HEAD: if HEAD is symbolic, the branch
// it points at advances and HEAD itself is untouched; if HEAD is
// direct (detached), HEAD is overwritten (spec §4.2's write-through
// rule).
func (r *Repository) updateHEAD(oid plumbing.Hash) error {
	ref, err := r.refs.Reference(plumbing.HEAD)
	if err != nil {
		if vcserrors.IsMissingRef(err) {
			return r.refs.ReferenceUpdate(refstore.NewHashReference(plumbing.HEAD, oid), nil)
		}
		return err
	}
	if ref.Type() == refstore.SymbolicReference {
		return r.refs.ReferenceUpdate(refstore.NewHashReference(ref.Target(), oid), nil)
	}
	return r.refs.ReferenceUpdate(refstore.NewHashReference(plumbing.HEAD, oid), nil)
}

func (r *Repository) assertNoOperationInProgress() error {
	for _, name := range []plumbing.ReferenceName{plumbing.MergeHead, plumbing.CherryPickHead} {
		if _, err := r.refs.Reference(name); err == nil {
			return vcserrors.ErrOperationInProgress
		} else if !vcserrors.IsMissingRef(err) {
			return err
		}
	}
	if _, err := r.loadRebaseState(); err == nil {
		return vcserrors.ErrOperationInProgress
	} else if !os.IsNotExist(err) {
		return err
	}
	return nil
}
