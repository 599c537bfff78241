package vcsrepo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeFastForwardIsNoOpBeyondMovingHEAD(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	base := commitAll(t, repo, "base")

	require.NoError(t, repo.CreateBranch("feature", plumbingHashFromString(t, base)))
	require.NoError(t, repo.Checkout("feature"))
	writeFile(t, root, "a.txt", "v2")
	ahead := commitAll(t, repo, "ahead")

	require.NoError(t, repo.Checkout("master"))
	result, err := repo.Merge(plumbingHashFromString(t, ahead), "feature")
	require.NoError(t, err)
	assert.True(t, result.FastForward)
	assert.Empty(t, result.Conflicts)

	headOID, _, err := repo.headHash()
	require.NoError(t, err)
	assert.Equal(t, ahead, headOID.String())

	_, err = repo.refs.Reference(plumbing.MergeHead)
	assert.Error(t, err, "a fast-forward never sets MERGE_HEAD")
}

func TestMergeConflictThenResolveThenCommitProducesTwoParents(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "base\n")
	base := commitAll(t, repo, "base")

	require.NoError(t, repo.CreateBranch("feature", plumbingHashFromString(t, base)))
	require.NoError(t, repo.Checkout("feature"))
	writeFile(t, root, "a.txt", "feature change\n")
	featureTip := commitAll(t, repo, "feature change")

	require.NoError(t, repo.Checkout("master"))
	writeFile(t, root, "a.txt", "master change\n")
	masterTip := commitAll(t, repo, "master change")

	result, err := repo.Merge(plumbingHashFromString(t, featureTip), "feature")
	require.NoError(t, err)
	require.False(t, result.FastForward)
	require.Contains(t, result.Conflicts, "a.txt")

	_, err = repo.refs.Reference(plumbing.MergeHead)
	require.NoError(t, err)

	writeFile(t, root, "a.txt", "resolved\n")
	require.NoError(t, repo.Add("."))

	mergeOID, err := repo.Commit("merge feature", testUser, true)
	require.NoError(t, err)

	c, err := repo.graph.ParseCommit(mergeOID)
	require.NoError(t, err)
	require.Len(t, c.Parents, 2)
	assert.Equal(t, masterTip, c.Parents[0].String())
	assert.Equal(t, featureTip, c.Parents[1].String())

	_, err = repo.refs.Reference(plumbing.MergeHead)
	assert.Error(t, err, "commit consumes MERGE_HEAD")

	content, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "resolved\n", string(content))
}

func TestMergeAbortRestoresOrigHead(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "base\n")
	base := commitAll(t, repo, "base")

	require.NoError(t, repo.CreateBranch("feature", plumbingHashFromString(t, base)))
	require.NoError(t, repo.Checkout("feature"))
	writeFile(t, root, "a.txt", "feature change\n")
	featureTip := commitAll(t, repo, "feature change")

	require.NoError(t, repo.Checkout("master"))
	writeFile(t, root, "a.txt", "master change\n")
	masterTip := commitAll(t, repo, "master change")

	_, err := repo.Merge(plumbingHashFromString(t, featureTip), "feature")
	require.NoError(t, err)

	require.NoError(t, repo.MergeAbort())

	headOID, _, err := repo.headHash()
	require.NoError(t, err)
	assert.Equal(t, masterTip, headOID.String())

	_, err = repo.refs.Reference(plumbing.MergeHead)
	assert.Error(t, err)
}

func TestMergeUsesConfiguredExternalTool(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "base\n")
	base := commitAll(t, repo, "base")

	require.NoError(t, repo.CreateBranch("feature", plumbingHashFromString(t, base)))
	require.NoError(t, repo.Checkout("feature"))
	writeFile(t, root, "a.txt", "feature change\n")
	featureTip := commitAll(t, repo, "feature change")

	require.NoError(t, repo.Checkout("master"))
	writeFile(t, root, "a.txt", "master change\n")
	commitAll(t, repo, "master change")

	repo.cfg.Merge.Tool = "sh -c cat"

	result, err := repo.Merge(plumbingHashFromString(t, featureTip), "feature")
	require.NoError(t, err)
	require.Len(t, result.Conflicts, 1, "a.txt was changed differently on each side")

	content, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "--- BASE ---")
	assert.Contains(t, string(content), "master change")
	assert.Contains(t, string(content), "feature change")
}
