package vcsrepo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutBranchMaterializesTreeAndStaysSymbolic(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	commitAll(t, repo, "first")

	require.NoError(t, repo.CreateBranch("feature", mustHead(t, repo)))
	require.NoError(t, repo.Checkout("feature"))

	ref, err := repo.refs.Reference("HEAD")
	require.NoError(t, err)
	assert.Equal(t, "refs/heads/feature", ref.Target().String())
}

func TestCheckoutDetachesOnRawOID(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	oid := commitAll(t, repo, "first")

	require.NoError(t, repo.Checkout(oid))

	ref, err := repo.refs.Reference("HEAD")
	require.NoError(t, err)
	assert.Equal(t, oid, ref.Hash().String())
}

func TestResetHardRewritesWorkingTree(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	first := commitAll(t, repo, "first")

	writeFile(t, root, "a.txt", "v2")
	commitAll(t, repo, "second")

	require.NoError(t, repo.Reset(plumbingHashFromString(t, first), ResetHard))

	content, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(content))
}

func TestResetSoftLeavesWorkingTreeAlone(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	first := commitAll(t, repo, "first")

	writeFile(t, root, "a.txt", "v2")
	commitAll(t, repo, "second")

	require.NoError(t, repo.Reset(plumbingHashFromString(t, first), ResetSoft))

	content, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(content))
}

func mustHead(t *testing.T, repo *Repository) plumbing.Hash {
	t.Helper()
	oid, defined, err := repo.headHash()
	require.NoError(t, err)
	require.True(t, defined)
	return oid
}
