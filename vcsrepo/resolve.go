// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package vcsrepo

import (
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/vcserrors"
)

// Resolve implements the OID resolution order of spec §6: the raw name
// as a ref path, then "refs/<name>", then "refs/tags/<name>", then
// "refs/heads/<name>"; "@" aliases HEAD before any of that is tried;
// finally a bare 40-char hex literal is accepted as-is.
func (r *Repository) Resolve(name string) (plumbing.Hash, error) {
	if name == "@" {
		name = string(plumbing.HEAD)
	}

	candidates := []plumbing.ReferenceName{
		plumbing.ReferenceName(name),
		plumbing.ReferenceName("refs/" + name),
		plumbing.NewTagReferenceName(name),
		plumbing.NewBranchReferenceName(name),
	}
	for _, c := range candidates {
		h, err := r.refs.Resolve(c)
		if err == nil {
			return h, nil
		}
		if !vcserrors.IsMissingRef(err) {
			return plumbing.ZeroHash, err
		}
	}

	if plumbing.IsValidHex(name) {
		return plumbing.NewHash(name), nil
	}
	return plumbing.ZeroHash, &vcserrors.ErrUnknownName{Name: name}
}
