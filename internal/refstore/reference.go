// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package refstore implements the reference store (spec §4.2): named
// pointers to object ids, either direct (a hash) or symbolic (another
// reference name), written through a lock-file-then-rename protocol.
package refstore

import (
	"fmt"

	"github.com/arborvcs/arbor/internal/plumbing"
)

// ReferenceType distinguishes a direct reference from a symbolic one.
type ReferenceType int

const (
	HashReference ReferenceType = iota
	SymbolicReference
)

// Reference is a single entry read from or written to the store: either
// "<name> -> <hash>" or "<name> -> ref: <target>".
type Reference struct {
	name   plumbing.ReferenceName
	typ    ReferenceType
	hash   plumbing.Hash
	target plumbing.ReferenceName
}

func NewHashReference(name plumbing.ReferenceName, hash plumbing.Hash) *Reference {
	return &Reference{name: name, typ: HashReference, hash: hash}
}

func NewSymbolicReference(name, target plumbing.ReferenceName) *Reference {
	return &Reference{name: name, typ: SymbolicReference, target: target}
}

func (r *Reference) Name() plumbing.ReferenceName   { return r.name }
func (r *Reference) Type() ReferenceType             { return r.typ }
func (r *Reference) Hash() plumbing.Hash             { return r.hash }
func (r *Reference) Target() plumbing.ReferenceName  { return r.target }

func (r *Reference) String() string {
	switch r.typ {
	case SymbolicReference:
		return fmt.Sprintf("ref: %s", r.target)
	default:
		return r.hash.String()
	}
}
