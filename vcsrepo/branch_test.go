package vcsrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBranchAndListBranches(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	oid := commitAll(t, repo, "first")

	require.NoError(t, repo.CreateBranch("feature", plumbingHashFromString(t, oid)))

	err := repo.CreateBranch("feature", plumbingHashFromString(t, oid))
	require.Error(t, err, "duplicate branch name is rejected")

	branches, err := repo.Branches()
	require.NoError(t, err)
	var names []string
	for _, b := range branches {
		names = append(names, b.Name().Short())
	}
	assert.Contains(t, names, "master")
	assert.Contains(t, names, "feature")
}

func TestCreateTagAndListTags(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	oid := commitAll(t, repo, "first")

	require.NoError(t, repo.CreateTag("v1.0.0", plumbingHashFromString(t, oid)))

	tags, err := repo.Tags()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "v1.0.0", tags[0].Name().Short())
}
