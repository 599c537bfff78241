package vcsrepo

import (
	"testing"

	"github.com/arborvcs/arbor/internal/vcserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOrderAndAliases(t *testing.T) {
	repo, root := openTestRepo(t)
	writeFile(t, root, "a.txt", "v1")
	oid := commitAll(t, repo, "first")

	require.NoError(t, repo.CreateTag("v1.0.0", plumbingHashFromString(t, oid)))
	require.NoError(t, repo.CreateBranch("feature", plumbingHashFromString(t, oid)))

	h, err := repo.Resolve("master")
	require.NoError(t, err)
	assert.Equal(t, oid, h.String())

	h, err = repo.Resolve("v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, oid, h.String())

	h, err = repo.Resolve("feature")
	require.NoError(t, err)
	assert.Equal(t, oid, h.String())

	h, err = repo.Resolve("@")
	require.NoError(t, err)
	assert.Equal(t, oid, h.String())

	h, err = repo.Resolve(oid)
	require.NoError(t, err)
	assert.Equal(t, oid, h.String())

	_, err = repo.Resolve("does-not-exist")
	require.Error(t, err)
	var unknown *vcserrors.ErrUnknownName
	assert.ErrorAs(t, err, &unknown)
}
