package commitgraph

import (
	"testing"
	"time"

	"github.com/arborvcs/arbor/internal/object"
	"github.com/arborvcs/arbor/internal/objstore"
	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/vcserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *objstore.Store {
	t.Helper()
	s, err := objstore.NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func commitOID(t *testing.T, s *objstore.Store, tree plumbing.Hash, parents []plumbing.Hash, msg string) plumbing.Hash {
	t.Helper()
	sig := plumbing.NewSignature("tester", "tester@example.com", time.Unix(1700000000, 0))
	c := &object.Commit{Tree: tree, Parents: parents, Author: sig, Committer: sig, Message: msg}
	oid, err := s.HashObject(object.CommitKind, c.Encode())
	require.NoError(t, err)
	return oid
}

func emptyTree(t *testing.T, s *objstore.Store) plumbing.Hash {
	t.Helper()
	tr := &object.Tree{}
	oid, err := s.HashObject(object.TreeKind, tr.Encode())
	require.NoError(t, err)
	return oid
}

// buildLinearHistory builds A -> B -> C (parent order oldest-first-parent)
// and returns their OIDs in that order.
func buildLinearHistory(t *testing.T, s *objstore.Store) (a, b, c plumbing.Hash) {
	t.Helper()
	tree := emptyTree(t, s)
	a = commitOID(t, s, tree, nil, "A")
	b = commitOID(t, s, tree, []plumbing.Hash{a}, "B")
	c = commitOID(t, s, tree, []plumbing.Hash{b}, "C")
	return a, b, c
}

func TestMergeBaseLinear(t *testing.T) {
	s := newTestStore(t)
	g := NewGraph(s)
	a, b, c := buildLinearHistory(t, s)
	_ = a

	tree := emptyTree(t, s)
	d := commitOID(t, s, tree, []plumbing.Hash{b}, "D")

	base, err := g.GetMergeBase(c, d)
	require.NoError(t, err)
	assert.Equal(t, b, base)
}

func TestMergeBaseSelf(t *testing.T) {
	s := newTestStore(t)
	g := NewGraph(s)
	_, _, c := buildLinearHistory(t, s)
	base, err := g.GetMergeBase(c, c)
	require.NoError(t, err)
	assert.Equal(t, c, base)
}

func TestMergeBaseUnrelated(t *testing.T) {
	s := newTestStore(t)
	g := NewGraph(s)
	tree := emptyTree(t, s)
	x := commitOID(t, s, tree, nil, "X")
	y := commitOID(t, s, tree, nil, "Y")
	_, err := g.GetMergeBase(x, y)
	require.Error(t, err)
	assert.ErrorIs(t, err, vcserrors.ErrNoCommonHistory)
}

func TestIsAncestor(t *testing.T) {
	s := newTestStore(t)
	g := NewGraph(s)
	a, b, c := buildLinearHistory(t, s)

	ok, err := g.IsAncestor(c, a)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.IsAncestor(a, c)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = g.IsAncestor(c, b)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIterCommitsAndParentsFirstParentPriority(t *testing.T) {
	s := newTestStore(t)
	g := NewGraph(s)
	tree := emptyTree(t, s)
	a := commitOID(t, s, tree, nil, "A")
	b := commitOID(t, s, tree, nil, "B")
	merge := commitOID(t, s, tree, []plumbing.Hash{a, b}, "merge")

	var order []plumbing.Hash
	err := g.IterCommitsAndParents([]plumbing.Hash{merge}, func(oid plumbing.Hash) error {
		order = append(order, oid)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, order, 3)
	assert.Equal(t, merge, order[0])
	assert.Equal(t, a, order[1])
	assert.Equal(t, b, order[2])
}

func TestVerifyObjectsExist(t *testing.T) {
	s := newTestStore(t)
	g := NewGraph(s)
	_, _, c := buildLinearHistory(t, s)
	assert.NoError(t, g.VerifyObjectsExist([]plumbing.Hash{c}))
}
