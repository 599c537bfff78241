// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package plumbing

import "strings"

// ReferenceName is the textual path of a reference, e.g. "HEAD",
// "refs/heads/master".
type ReferenceName string

const (
	HEAD             ReferenceName = "HEAD"
	MergeHead        ReferenceName = "MERGE_HEAD"
	OrigHead         ReferenceName = "ORIG_HEAD"
	CherryPickHead   ReferenceName = "CHERRY_PICK_HEAD"
	refHeadsPrefix   = "refs/heads/"
	refTagsPrefix    = "refs/tags/"
	refRemotePrefix  = "refs/remote/"
)

func (n ReferenceName) String() string { return string(n) }

// IsBranch reports whether n names a local branch tip.
func (n ReferenceName) IsBranch() bool {
	return strings.HasPrefix(string(n), refHeadsPrefix)
}

// IsTag reports whether n names a tag.
func (n ReferenceName) IsTag() bool {
	return strings.HasPrefix(string(n), refTagsPrefix)
}

// IsRemote reports whether n names a cached remote branch tip.
func (n ReferenceName) IsRemote() bool {
	return strings.HasPrefix(string(n), refRemotePrefix)
}

// Short strips any well-known prefix, returning the leaf name a user
// would type: "refs/heads/master" -> "master".
func (n ReferenceName) Short() string {
	s := string(n)
	for _, p := range []string{refHeadsPrefix, refTagsPrefix, refRemotePrefix} {
		if strings.HasPrefix(s, p) {
			return s[len(p):]
		}
	}
	return s
}

// BranchName is Short, but only meaningful when IsBranch is true.
func (n ReferenceName) BranchName() string {
	return n.Short()
}

// NewBranchReferenceName builds "refs/heads/<name>".
func NewBranchReferenceName(name string) ReferenceName {
	return ReferenceName(refHeadsPrefix + name)
}

// NewTagReferenceName builds "refs/tags/<name>".
func NewTagReferenceName(name string) ReferenceName {
	return ReferenceName(refTagsPrefix + name)
}

// NewRemoteReferenceName builds "refs/remote/<name>".
func NewRemoteReferenceName(name string) ReferenceName {
	return ReferenceName(refRemotePrefix + name)
}
