package object

import (
	"testing"
	"time"

	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeEncodeSortsByName(t *testing.T) {
	tr := &Tree{Entries: []TreeEntry{
		{Kind: EntryBlob, OID: plumbing.NewHash("1111111111111111111111111111111111111111"), Name: "zeta.txt"},
		{Kind: EntryBlob, OID: plumbing.NewHash("2222222222222222222222222222222222222222"), Name: "alpha.txt"},
	}}
	encoded := tr.Encode()
	decoded, err := DecodeTree(encoded)
	require.NoError(t, err)
	require.Len(t, decoded.Entries, 2)
	assert.Equal(t, "alpha.txt", decoded.Entries[0].Name)
	assert.Equal(t, "zeta.txt", decoded.Entries[1].Name)
}

func TestTreeDecodeRejectsBadName(t *testing.T) {
	_, err := DecodeTree([]byte("blob 1111111111111111111111111111111111111111 a/b\n"))
	assert.Error(t, err)
}

func TestCommitRoundTrip(t *testing.T) {
	when := time.Unix(1700000000, 0)
	c := &Commit{
		Tree:      plumbing.NewHash("1111111111111111111111111111111111111111"),
		Parents:   []plumbing.Hash{plumbing.NewHash("2222222222222222222222222222222222222222")},
		Author:    plumbing.NewSignature("A", "a@example.com", when),
		Committer: plumbing.NewSignature("B", "b@example.com", when),
		Message:   "hello\n",
	}
	decoded, err := DecodeCommit(c.Encode())
	require.NoError(t, err)
	assert.Equal(t, c.Tree, decoded.Tree)
	assert.Equal(t, c.Parents, decoded.Parents)
	assert.Equal(t, c.Message, decoded.Message)
	assert.Equal(t, c.Author.Name, decoded.Author.Name)
}

func TestCommitDecodeRejectsUnrecognizedHeader(t *testing.T) {
	payload := []byte("tree 1111111111111111111111111111111111111111\n" +
		"author A <a@example.com> 1700000000 +0000\n" +
		"committer B <b@example.com> 1700000000 +0000\n" +
		"gpgsig stuff\n\nmsg\n")
	_, err := DecodeCommit(payload)
	assert.Error(t, err)
}

func TestCommitIsRootAndMerge(t *testing.T) {
	root := &Commit{}
	assert.True(t, root.IsRoot())
	assert.False(t, root.IsMerge())

	merge := &Commit{Parents: []plumbing.Hash{plumbing.NewHash("1111111111111111111111111111111111111111"), plumbing.NewHash("2222222222222222222222222222222222222222")}}
	assert.False(t, merge.IsRoot())
	assert.True(t, merge.IsMerge())
}
