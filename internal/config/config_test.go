package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsNotError(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.True(t, c.User.Empty())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	c := &Config{User: User{Name: "Ada", Email: "ada@example.com"}}
	require.NoError(t, c.Save(root))

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, c.User, loaded.User)
}

func TestResolveUserFallsBackToDefault(t *testing.T) {
	c := &Config{}
	t.Setenv("GIT_AUTHOR_NAME", "")
	t.Setenv("GIT_AUTHOR_EMAIL", "")
	u := c.ResolveUser(User{})
	assert.Equal(t, DefaultUser, u)
}

func TestResolveUserPrefersOverrides(t *testing.T) {
	c := &Config{User: User{Name: "Config Name", Email: "config@example.com"}}
	u := c.ResolveUser(User{Name: "Override Name"})
	assert.Equal(t, "Override Name", u.Name)
	assert.Equal(t, "config@example.com", u.Email)
}
