package vcsrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitTreeIsDeterministicGivenIdenticalContent(t *testing.T) {
	repoA, rootA := openTestRepo(t)
	writeFile(t, rootA, "a.txt", "hello")
	oidA := commitAll(t, repoA, "first")

	repoB, rootB := openTestRepo(t)
	writeFile(t, rootB, "a.txt", "hello")
	oidB := commitAll(t, repoB, "first")

	commitA, err := repoA.graph.ParseCommit(plumbingHashFromString(t, oidA))
	require.NoError(t, err)
	commitB, err := repoB.graph.ParseCommit(plumbingHashFromString(t, oidB))
	require.NoError(t, err)

	assert.Equal(t, commitA.Tree, commitB.Tree)
}

func TestCommitChainsParents(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	first := commitAll(t, repo, "first")

	writeFile(t, root, "a.txt", "v2")
	second := commitAll(t, repo, "second")
	assert.NotEqual(t, first, second)

	headOID, hasHead, err := repo.headHash()
	require.NoError(t, err)
	require.True(t, hasHead)
	assert.Equal(t, second, headOID.String())

	c, err := repo.graph.ParseCommit(headOID)
	require.NoError(t, err)
	require.Len(t, c.Parents, 1)
	assert.Equal(t, first, c.Parents[0].String())
}

func TestCommitRejectsConflictedIndex(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	commitAll(t, repo, "first")

	ix, err := repo.loadIndex()
	require.NoError(t, err)
	ix.Conflicts = append(ix.Conflicts, "a.txt")
	require.NoError(t, repo.saveIndex(ix))

	_, err = repo.Commit("second", testUser, false)
	require.Error(t, err)
}
