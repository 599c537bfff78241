package vcsrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryWalksFirstParentInReverseChronologicalOrder(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	commitAll(t, repo, "first")
	writeFile(t, root, "a.txt", "v2")
	commitAll(t, repo, "second")
	writeFile(t, root, "a.txt", "v3")
	commitAll(t, repo, "third")

	commits, err := repo.History("HEAD", 0)
	require.NoError(t, err)
	require.Len(t, commits, 3)
	assert.Equal(t, "third", commits[0].Message)
	assert.Equal(t, "second", commits[1].Message)
	assert.Equal(t, "first", commits[2].Message)

	limited, err := repo.History("HEAD", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "third", limited[0].Message)
	assert.Equal(t, "second", limited[1].Message)
}
