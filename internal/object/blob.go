// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package object implements the three typed objects (spec §3): blob,
// tree, and commit, each an encode/decode pair over the bytes stored by
// the object store.
package object

const BlobKind = "blob"

// Blob is the opaque byte payload of a file's contents. It has no
// structure of its own; the object store's (type, payload) pair is the
// entire representation.
type Blob struct {
	Content []byte
}

func (b *Blob) Encode() []byte {
	return b.Content
}

func DecodeBlob(payload []byte) *Blob {
	return &Blob{Content: payload}
}
