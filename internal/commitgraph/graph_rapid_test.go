package commitgraph

import (
	"testing"
	"time"

	"github.com/arborvcs/arbor/internal/object"
	"github.com/arborvcs/arbor/internal/objstore"
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var rapidSig = plumbing.NewSignature("rapid", "rapid@example.com", time.Unix(1700000000, 0))

func rapidCommit(rt *rapid.T, s *objstore.Store, tree, parent plumbing.Hash, msg string) plumbing.Hash {
	var parents []plumbing.Hash
	if !parent.IsZero() {
		parents = []plumbing.Hash{parent}
	}
	c := &object.Commit{Tree: tree, Parents: parents, Author: rapidSig, Committer: rapidSig, Message: msg}
	oid, err := s.HashObject(object.CommitKind, c.Encode())
	if err != nil {
		rt.Fatal(err)
	}
	return oid
}

// extendChain grows a chain of n commits from root (the zero hash
// means "start a new root commit") and returns the tip.
func extendChain(rt *rapid.T, s *objstore.Store, tree, root plumbing.Hash, n int) plumbing.Hash {
	tip := root
	for i := 0; i < n; i++ {
		tip = rapidCommit(rt, s, tree, tip, "c")
	}
	return tip
}

// TestMergeBaseIsSymmetric checks spec §8's merge-base law over
// randomly generated linear histories sharing a common prefix: two
// chains grown from the same root must agree on merge-base regardless
// of argument order, and that merge-base must be an ancestor of both.
func TestMergeBaseIsSymmetric(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s, err := objstore.NewStore(t.TempDir())
		require.NoError(t, err)
		g := NewGraph(s)

		tr := &object.Tree{}
		tree, err := s.HashObject(object.TreeKind, tr.Encode())
		require.NoError(t, err)

		sharedLen := rapid.IntRange(1, 6).Draw(rt, "sharedLen")
		root := extendChain(rt, s, tree, plumbing.ZeroHash, sharedLen)

		leftExtra := rapid.IntRange(0, 5).Draw(rt, "leftExtra")
		rightExtra := rapid.IntRange(0, 5).Draw(rt, "rightExtra")
		a := extendChain(rt, s, tree, root, leftExtra)
		b := extendChain(rt, s, tree, root, rightExtra)

		baseAB, err := g.GetMergeBase(a, b)
		if err != nil {
			rt.Fatal(err)
		}
		baseBA, err := g.GetMergeBase(b, a)
		if err != nil {
			rt.Fatal(err)
		}
		if baseAB != baseBA {
			rt.Fatalf("merge-base not symmetric: (a,b)=%s (b,a)=%s", baseAB, baseBA)
		}

		ancestorOfA, err := g.IsAncestor(a, baseAB)
		if err != nil {
			rt.Fatal(err)
		}
		if !ancestorOfA {
			rt.Fatalf("merge-base %s is not an ancestor of a=%s", baseAB, a)
		}
		ancestorOfB, err := g.IsAncestor(b, baseAB)
		if err != nil {
			rt.Fatal(err)
		}
		if !ancestorOfB {
			rt.Fatalf("merge-base %s is not an ancestor of b=%s", baseAB, b)
		}
	})
}
