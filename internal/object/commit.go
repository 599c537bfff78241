// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/arborvcs/arbor/internal/plumbing"
)

const CommitKind = "commit"

// Commit is the decoded form of a commit object (spec §3): a tree, an
// ordered list of parents, author and committer signatures, and a
// message.
type Commit struct {
	Tree      plumbing.Hash
	Parents   []plumbing.Hash
	Author    plumbing.Signature
	Committer plumbing.Signature
	Message   string
}

// Encode serializes c in the exact header-then-blank-line-then-message
// form spec §3 defines.
func (c *Commit) Encode() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.Tree.String())
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p.String())
	}
	fmt.Fprintf(&buf, "author %s\n", c.Author.String())
	fmt.Fprintf(&buf, "committer %s\n", c.Committer.String())
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// DecodeCommit parses a commit object payload. Unlike the teacher's
// tolerant ExtraHeaders parser, an unrecognized header key is a fatal
// parse error (spec §4.5).
func DecodeCommit(payload []byte) (*Commit, error) {
	c := &Commit{}
	r := bufio.NewReader(bytes.NewReader(payload))
	sawTree := false
	sawAuthor := false
	sawCommitter := false
	for {
		line, err := r.ReadString('\n')
		if err != nil && len(line) == 0 {
			break
		}
		text := strings.TrimSuffix(line, "\n")
		if text == "" {
			break
		}
		key, value, ok := strings.Cut(text, " ")
		if !ok {
			return nil, fmt.Errorf("object: malformed commit header %q", text)
		}
		switch key {
		case "tree":
			c.Tree = plumbing.NewHash(value)
			sawTree = true
		case "parent":
			c.Parents = append(c.Parents, plumbing.NewHash(value))
		case "author":
			c.Author = plumbing.DecodeSignature([]byte(value))
			sawAuthor = true
		case "committer":
			c.Committer = plumbing.DecodeSignature([]byte(value))
			sawCommitter = true
		default:
			return nil, fmt.Errorf("object: unrecognized commit header %q", key)
		}
	}
	if !sawTree || !sawAuthor || !sawCommitter {
		return nil, fmt.Errorf("object: commit missing required header (tree=%v author=%v committer=%v)", sawTree, sawAuthor, sawCommitter)
	}
	rest, err := bufioReadAll(r)
	if err != nil {
		return nil, err
	}
	c.Message = rest
	return c, nil
}

func bufioReadAll(r *bufio.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// IsRoot reports whether c has no parents.
func (c *Commit) IsRoot() bool { return len(c.Parents) == 0 }

// IsMerge reports whether c has two or more parents.
func (c *Commit) IsMerge() bool { return len(c.Parents) >= 2 }
