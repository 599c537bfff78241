package objstore

import (
	"bytes"
	"os"
	"testing"

	"github.com/arborvcs/arbor/internal/plumbing"
	"github.com/arborvcs/arbor/internal/vcserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashObjectRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	oid, err := s.HashObject("blob", []byte("hello world"))
	require.NoError(t, err)
	assert.True(t, s.Exists(oid))

	typeTag, payload, err := s.GetObject(oid)
	require.NoError(t, err)
	assert.Equal(t, "blob", typeTag)
	assert.Equal(t, []byte("hello world"), payload)
}

func TestHashObjectIsContentAddressed(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	oid1, err := s.HashObject("blob", []byte("same"))
	require.NoError(t, err)
	oid2, err := s.HashObject("blob", []byte("same"))
	require.NoError(t, err)
	assert.Equal(t, oid1, oid2)

	oid3, err := s.HashObject("blob", []byte("different"))
	require.NoError(t, err)
	assert.NotEqual(t, oid1, oid3)
}

func TestHashObjectWriteOnceDoesNotRewrite(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	oid, err := s.HashObject("blob", []byte("content"))
	require.NoError(t, err)

	info1, err := os.Stat(s.path(oid))
	require.NoError(t, err)

	_, err = s.HashObject("blob", []byte("content"))
	require.NoError(t, err)

	info2, err := os.Stat(s.path(oid))
	require.NoError(t, err)
	assert.Equal(t, info1.ModTime(), info2.ModTime())
}

func TestGetObjectMissing(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = s.GetObject(plumbing.NewHash("0000000000000000000000000000000000000000"))
	require.Error(t, err)
	assert.True(t, vcserrors.IsMissingObject(err))
}

func TestGetTypedWrongType(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	oid, err := s.HashObject("blob", []byte("x"))
	require.NoError(t, err)

	_, err = s.GetTyped(oid, "tree")
	require.Error(t, err)
	assert.True(t, vcserrors.IsWrongType(err))
}

func TestCopyFromCopyTo(t *testing.T) {
	src, err := NewStore(t.TempDir())
	require.NoError(t, err)
	dst, err := NewStore(t.TempDir())
	require.NoError(t, err)

	oid, err := src.HashObject("commit", []byte("payload"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.CopyTo(oid, &buf))

	require.NoError(t, dst.CopyFrom(oid, "commit", &buf))
	typeTag, payload, err := dst.GetObject(oid)
	require.NoError(t, err)
	assert.Equal(t, "commit", typeTag)
	assert.Equal(t, []byte("payload"), payload)
}
