// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package refstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/vcserrors"
)

// maxSymbolicDepth bounds symbolic reference resolution (spec §4.2):
// a chain longer than this is treated as invalid rather than looped
// forever.
const maxSymbolicDepth = 8

// Store is a filesystem-backed reference store rooted directly at a
// repository directory: refs live at "<root>/HEAD",
// "<root>/refs/heads/<name>", and so on.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) path(name plumbing.ReferenceName) string {
	return filepath.Join(s.root, filepath.FromSlash(string(name)))
}

// Reference reads the reference named name without following symbolic
// links.
func (s *Store) Reference(name plumbing.ReferenceName) (*Reference, error) {
	b, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &vcserrors.ErrMissingRef{Name: string(name)}
		}
		return nil, fmt.Errorf("refstore: read %s: %w", name, err)
	}
	return parseReference(name, string(b))
}

func parseReference(name plumbing.ReferenceName, content string) (*Reference, error) {
	line := strings.TrimSpace(content)
	if target, ok := strings.CutPrefix(line, "ref: "); ok {
		return NewSymbolicReference(name, plumbing.ReferenceName(strings.TrimSpace(target))), nil
	}
	if !plumbing.IsValidHex(line) {
		return nil, &vcserrors.ErrCorruptObject{OID: line, Reason: fmt.Sprintf("reference %s does not contain a valid hash or symbolic target", name)}
	}
	return NewHashReference(name, plumbing.NewHash(line)), nil
}

// Resolve follows symbolic references until it reaches a direct
// reference, returning the hash it points to. A chain longer than
// maxSymbolicDepth fails with ErrRefResolutionTooDeep.
func (s *Store) Resolve(name plumbing.ReferenceName) (plumbing.Hash, error) {
	cur := name
	for depth := 0; depth < maxSymbolicDepth; depth++ {
		ref, err := s.Reference(cur)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		if ref.Type() == HashReference {
			return ref.Hash(), nil
		}
		cur = ref.Target()
	}
	return plumbing.ZeroHash, vcserrors.ErrRefResolutionTooDeep
}

// ReferenceUpdate writes ref through a lock file. If old is non-nil, the
// update is rejected unless the reference currently holds exactly that
// value (a compare-and-swap), matching the teacher's checkReference
// guard.
func (s *Store) ReferenceUpdate(ref *Reference, old *Reference) error {
	target := s.path(ref.Name())
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("refstore: mkdir: %w", err)
	}
	lock := target + ".lock"
	fd, err := os.OpenFile(lock, os.O_CREATE|os.O_EXCL|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("refstore: %s: %w", ref.Name(), vcserrors.ErrOperationInProgress)
		}
		return fmt.Errorf("refstore: create lock: %w", err)
	}
	defer os.Remove(lock)

	if err := s.checkOld(ref.Name(), old); err != nil {
		fd.Close()
		return err
	}

	content := ref.String() + "\n"
	if _, err := fd.WriteString(content); err != nil {
		fd.Close()
		return fmt.Errorf("refstore: write: %w", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("refstore: close: %w", err)
	}
	if err := os.Rename(lock, target); err != nil {
		return fmt.Errorf("refstore: rename into place: %w", err)
	}
	return nil
}

func (s *Store) checkOld(name plumbing.ReferenceName, old *Reference) error {
	if old == nil {
		return nil
	}
	cur, err := s.Reference(name)
	if err != nil {
		if vcserrors.IsMissingRef(err) {
			return fmt.Errorf("refstore: %s: expected existing value, found none", name)
		}
		return err
	}
	if cur.Type() != old.Type() || cur.String() != old.String() {
		return fmt.Errorf("refstore: %s: %w", name, errReferenceChanged)
	}
	return nil
}

var errReferenceChanged = errors.New("reference has changed concurrently")

// ReferenceDelete removes name, first taking its lock so a concurrent
// update is serialized against the delete.
func (s *Store) ReferenceDelete(name plumbing.ReferenceName) error {
	target := s.path(name)
	lock := target + ".lock"
	fd, err := os.OpenFile(lock, os.O_CREATE|os.O_EXCL|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("refstore: %s: %w", name, vcserrors.ErrOperationInProgress)
		}
		return fmt.Errorf("refstore: create lock: %w", err)
	}
	fd.Close()
	defer os.Remove(lock)
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("refstore: remove: %w", err)
	}
	return nil
}

// IterReferences walks every loose reference under one of the
// well-known namespaces (refs/heads, refs/tags, refs/remote), returning
// them sorted by name.
func (s *Store) IterReferences(prefix plumbing.ReferenceName) ([]*Reference, error) {
	var out []*Reference
	root := s.path(prefix)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || strings.HasSuffix(d.Name(), ".lock") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		name := plumbing.ReferenceName(filepath.ToSlash(rel))
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		ref, err := parseReference(name, string(b))
		if err != nil {
			return err
		}
		out = append(out, ref)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("refstore: walk %s: %w", prefix, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}
