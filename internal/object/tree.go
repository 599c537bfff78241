// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/arborvcs/arbor/internal/plumbing"
)

const TreeKind = "tree"

// EntryKind is the kind of object a TreeEntry points at.
type EntryKind string

const (
	EntryBlob EntryKind = "blob"
	EntryTree EntryKind = "tree"
)

// TreeEntry is one line of a tree object: "<kind> <oid> <name>".
type TreeEntry struct {
	Kind EntryKind
	OID  plumbing.Hash
	Name string
}

// Tree is the decoded form of a tree object: entries sorted by name.
type Tree struct {
	Entries []TreeEntry
}

// Encode serializes t's entries, sorted by name, one "<kind> <oid> <name>\n"
// line each (spec §3).
func (t *Tree) Encode() []byte {
	sorted := make([]TreeEntry, len(t.Entries))
	copy(sorted, t.Entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var buf bytes.Buffer
	for _, e := range sorted {
		fmt.Fprintf(&buf, "%s %s %s\n", e.Kind, e.OID.String(), e.Name)
	}
	return buf.Bytes()
}

// DecodeTree parses a tree object payload.
func DecodeTree(payload []byte) (*Tree, error) {
	t := &Tree{}
	sc := bufio.NewScanner(bytes.NewReader(payload))
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 3)
		if len(fields) != 3 {
			return nil, fmt.Errorf("object: malformed tree entry %q", line)
		}
		kind := EntryKind(fields[0])
		if kind != EntryBlob && kind != EntryTree {
			return nil, fmt.Errorf("object: unknown tree entry kind %q", fields[0])
		}
		name := fields[2]
		if name == "." || name == ".." || strings.Contains(name, "/") {
			return nil, fmt.Errorf("object: invalid tree entry name %q", name)
		}
		t.Entries = append(t.Entries, TreeEntry{
			Kind: kind,
			OID:  plumbing.NewHash(fields[1]),
			Name: name,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Find returns the entry named name, or false if not present.
func (t *Tree) Find(name string) (TreeEntry, bool) {
	for _, e := range t.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return TreeEntry{}, false
}
