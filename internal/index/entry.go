// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package index implements the staged working-set snapshot (spec
// §4.6): a path-keyed sum type of clean and conflicted entries, and the
// three-way tree merge that produces it.
package index

import (
	"encoding/json"

	"github.com/arborvcs/arbor/internal/plumbing"
)

// ConflictType names which row of the merge decision table produced a
// conflict.
type ConflictType string

const (
	ConflictAddAdd                  ConflictType = "add_add"
	ConflictCurrentDeleteTargetMod  ConflictType = "current_delete_target_modify"
	ConflictCurrentModTargetDelete  ConflictType = "current_modify_target_delete"
	ConflictContent                 ConflictType = "content_conflict"
)

// Entry is the sum type Design Notes §9 calls for: either Clean (a
// resolved OID) or Conflict (all three sides plus the merged,
// marker-bearing blob). Exactly one of the two is meaningful, selected
// by State.
type Entry struct {
	State State `json:"state"`

	// Clean
	OID plumbing.Hash `json:"oid,omitempty"`

	// Conflict
	CType  ConflictType  `json:"ctype,omitempty"`
	Merged plumbing.Hash `json:"merged_oid,omitempty"`
	Base   plumbing.Hash `json:"base,omitempty"`
	Head   plumbing.Hash `json:"head,omitempty"`
	Other  plumbing.Hash `json:"other,omitempty"`
}

type State string

const (
	StateClean    State = "clean"
	StateConflict State = "conflict"
)

func Clean(oid plumbing.Hash) Entry {
	return Entry{State: StateClean, OID: oid}
}

func Conflict(ctype ConflictType, merged, base, head, other plumbing.Hash) Entry {
	return Entry{State: StateConflict, CType: ctype, Merged: merged, Base: base, Head: head, Other: other}
}

func (e Entry) IsConflict() bool { return e.State == StateConflict }

// Index is the full staged snapshot: path -> Entry, plus the ordered
// list of conflicted paths (iteration order, per spec §4.6).
type Index struct {
	Entries   map[string]Entry `json:"entries"`
	Conflicts []string         `json:"conflicts,omitempty"`
}

func New() *Index {
	return &Index{Entries: make(map[string]Entry)}
}

// HasConflicts reports whether any path remains conflicted.
func (ix *Index) HasConflicts() bool {
	return len(ix.Conflicts) > 0
}

// Set stages a clean entry for path, resolving any prior conflict.
func (ix *Index) Set(path string, oid plumbing.Hash) {
	ix.Entries[path] = Clean(oid)
	ix.removeConflict(path)
}

// Remove unstages path entirely.
func (ix *Index) Remove(path string) {
	delete(ix.Entries, path)
	ix.removeConflict(path)
}

func (ix *Index) removeConflict(path string) {
	for i, p := range ix.Conflicts {
		if p == path {
			ix.Conflicts = append(ix.Conflicts[:i], ix.Conflicts[i+1:]...)
			return
		}
	}
}

// Marshal/Unmarshal give the index its on-disk JSON persistence.
func (ix *Index) Marshal() ([]byte, error) {
	return json.MarshalIndent(ix, "", "  ")
}

func Unmarshal(b []byte) (*Index, error) {
	ix := New()
	if len(b) == 0 {
		return ix, nil
	}
	if err := json.Unmarshal(b, ix); err != nil {
		return nil, err
	}
	if ix.Entries == nil {
		ix.Entries = make(map[string]Entry)
	}
	return ix, nil
}
