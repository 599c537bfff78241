package vcsrepo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusIsCleanRightAfterCommit(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	commitAll(t, repo, "first")

	st, err := repo.Status()
	require.NoError(t, err)
	assert.True(t, st.IsClean())

	dirty, err := repo.isWorkingTreeDirty()
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestStatusReportsModifiedAddedDeletedUntracked(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	writeFile(t, root, "b.txt", "v1")
	commitAll(t, repo, "first")

	writeFile(t, root, "a.txt", "v2")
	require.NoError(t, os.Remove(filepath.Join(root, "b.txt")))
	writeFile(t, root, "c.txt", "new")

	st, err := repo.Status()
	require.NoError(t, err)
	assert.False(t, st.IsClean())
	assert.Equal(t, StatusModified, st["a.txt"].Worktree)
	assert.Equal(t, StatusDeleted, st["b.txt"].Worktree)
	assert.Equal(t, StatusUntracked, st["c.txt"].Worktree)

	require.NoError(t, repo.Add(".", "b.txt"))
	st, err = repo.Status()
	require.NoError(t, err)
	assert.Equal(t, StatusModified, st["a.txt"].Staged)
	assert.Equal(t, StatusDeleted, st["b.txt"].Staged)
	assert.Equal(t, StatusAdded, st["c.txt"].Staged)
}
