// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package objstore implements the content-addressed object store (spec
// §4.1): loose objects are deflate-compressed and written once, keyed by
// the SHA-1 of their typed payload, under a two-character shard directory.
package objstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/vcserrors"
	"github.com/sirupsen/logrus"
)

const objectsDirName = "objects"

// Store is a loose-object database rooted at a single directory.
type Store struct {
	root string
	log  *logrus.Entry
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithLogger attaches a structured logger; a nil logger leaves the
// default logrus standard logger in place.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore opens (creating if necessary) the loose-object store rooted at
// root/objects.
func NewStore(root string, opts ...Option) (*Store, error) {
	s := &Store{
		root: filepath.Join(root, objectsDirName),
		log:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, o := range opts {
		o(s)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, fmt.Errorf("objstore: create root: %w", err)
	}
	return s, nil
}

// Root returns the objects directory this store writes into.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) path(oid plumbing.Hash) string {
	hex := oid.String()
	return filepath.Join(s.root, hex[:2], hex[2:])
}

// Exists reports whether oid is present in the store.
func (s *Store) Exists(oid plumbing.Hash) bool {
	_, err := os.Stat(s.path(oid))
	return err == nil
}

// HashObject computes the object id of (typeTag, payload) and, unless it
// is already present, deflates and writes it to the store. It is
// write-once: an existing object is never rewritten, matching the
// content-addressed guarantee that the same oid always means the same
// bytes.
func (s *Store) HashObject(typeTag string, payload []byte) (plumbing.Hash, error) {
	oid := plumbing.HashTypedPayload(typeTag, payload)
	if s.Exists(oid) {
		return oid, nil
	}
	if err := s.writeObject(oid, typeTag, payload); err != nil {
		return plumbing.ZeroHash, err
	}
	s.log.WithFields(logrus.Fields{"oid": oid.String(), "type": typeTag}).Debug("objstore: wrote object")
	return oid, nil
}

func (s *Store) writeObject(oid plumbing.Hash, typeTag string, payload []byte) error {
	dir := filepath.Join(s.root, oid.String()[:2])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("objstore: mkdir shard: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "tmp-obj-")
	if err != nil {
		return fmt.Errorf("objstore: create temp: %w", err)
	}
	tmpName := tmp.Name()
	succeeded := false
	defer func() {
		if !succeeded {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	zw := getZlibWriter(tmp)
	defer putZlibWriter(zw)
	if _, err := zw.Write([]byte(typeTag)); err != nil {
		return fmt.Errorf("objstore: write header: %w", err)
	}
	if _, err := zw.Write([]byte{0}); err != nil {
		return fmt.Errorf("objstore: write header: %w", err)
	}
	if _, err := zw.Write(payload); err != nil {
		return fmt.Errorf("objstore: write payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("objstore: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("objstore: close temp: %w", err)
	}
	finalPath := s.path(oid)
	if err := os.Rename(tmpName, finalPath); err != nil {
		return fmt.Errorf("objstore: rename into place: %w", err)
	}
	succeeded = true
	return nil
}

// GetObject reads and inflates the object stored under oid, returning its
// type tag and payload.
func (s *Store) GetObject(oid plumbing.Hash) (typeTag string, payload []byte, err error) {
	f, err := os.Open(s.path(oid))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, &vcserrors.ErrMissingObject{OID: oid.String()}
		}
		return "", nil, fmt.Errorf("objstore: open: %w", err)
	}
	defer f.Close()

	zr, err := getZlibReader(f)
	if err != nil {
		return "", nil, &vcserrors.ErrCorruptObject{OID: oid.String(), Reason: err.Error()}
	}
	defer putZlibReader(zr)

	raw, err := io.ReadAll(zr)
	if err != nil {
		return "", nil, &vcserrors.ErrCorruptObject{OID: oid.String(), Reason: err.Error()}
	}
	nul := -1
	for i, b := range raw {
		if b == 0 {
			nul = i
			break
		}
	}
	if nul == -1 {
		return "", nil, &vcserrors.ErrCorruptObject{OID: oid.String(), Reason: "missing type-tag delimiter"}
	}
	return string(raw[:nul]), raw[nul+1:], nil
}

// GetTyped reads oid and verifies its type tag matches want.
func (s *Store) GetTyped(oid plumbing.Hash, want string) ([]byte, error) {
	got, payload, err := s.GetObject(oid)
	if err != nil {
		return nil, err
	}
	if got != want {
		return nil, &vcserrors.ErrWrongType{OID: oid.String(), Want: want, Got: got}
	}
	return payload, nil
}

// CopyFrom reads raw object bytes (type-tagged, uncompressed) from src and
// stores them as oid, skipping the write if already present. It is used to
// import an object whose id is already known, without recomputing the hash.
func (s *Store) CopyFrom(oid plumbing.Hash, typeTag string, src io.Reader) error {
	if s.Exists(oid) {
		_, _ = io.Copy(io.Discard, src)
		return nil
	}
	raw, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("objstore: read source: %w", err)
	}
	header := typeTag + "\x00"
	if len(raw) < len(header) || string(raw[:len(header)]) != header {
		return &vcserrors.ErrCorruptObject{OID: oid.String(), Reason: "source does not start with the expected type-tag header"}
	}
	return s.writeObject(oid, typeTag, raw[len(header):])
}

// CopyTo writes the inflated, type-tagged bytes of oid to dst.
func (s *Store) CopyTo(oid plumbing.Hash, dst io.Writer) error {
	typeTag, payload, err := s.GetObject(oid)
	if err != nil {
		return err
	}
	if _, err := dst.Write([]byte(typeTag)); err != nil {
		return err
	}
	if _, err := dst.Write([]byte{0}); err != nil {
		return err
	}
	_, err = dst.Write(payload)
	return err
}
