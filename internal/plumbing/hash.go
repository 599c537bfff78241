// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package plumbing holds the small shared value types used across the
// object store, reference store, and index: the content hash, commit
// signatures, and reference names.
package plumbing

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"hash"
)

const (
	// HashSize is the digest size of the object id, in bytes.
	HashSize = sha1.Size
	// HashHexSize is the digest size of the object id, in hex characters.
	HashHexSize = HashSize * 2
)

// Hash is a content-addressed object id: the SHA-1 digest of
// "<type> \0 <payload>" (spec §3).
type Hash [HashSize]byte

// ZeroHash is the Hash zero value, used to represent "no object" (e.g.
// a root commit's missing parent, or an absent tree for an empty repo).
var ZeroHash Hash

// NewHash decodes a 40-character hex string into a Hash. Malformed input
// decodes to whatever hex.Decode manages to read; callers that need to
// reject malformed hex should check the length first.
func NewHash(s string) Hash {
	var h Hash
	b, _ := hex.DecodeString(s)
	copy(h[:], b)
	return h
}

// IsValidHex reports whether s is a well-formed 40-character hex OID.
func IsValidHex(s string) bool {
	if len(s) != HashHexSize {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*h = NewHash(s)
	return nil
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	*h = NewHash(string(text))
	return nil
}

// Hasher computes a Hash over a stream of typed-object bytes.
type Hasher struct {
	h hash.Hash
}

func NewHasher() *Hasher {
	return &Hasher{h: sha1.New()}
}

func (hr *Hasher) Write(p []byte) (int, error) {
	return hr.h.Write(p)
}

func (hr *Hasher) Sum() Hash {
	var h Hash
	copy(h[:], hr.h.Sum(nil))
	return h
}

// HashTypedPayload computes the OID of a payload prefixed with its type
// tag, exactly as spec §3 defines it: sha1("<type>\0<payload>").
func HashTypedPayload(typeTag string, payload []byte) Hash {
	hr := NewHasher()
	_, _ = hr.Write([]byte(typeTag))
	_, _ = hr.Write([]byte{0})
	_, _ = hr.Write(payload)
	return hr.Sum()
}
