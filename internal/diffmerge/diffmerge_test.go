package diffmerge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineDiffEmptyWhenEqual(t *testing.T) {
	a := []byte("line1\nline2\nline3\n")
	assert.Nil(t, LineDiff(a, a, "a", "b"))
}

func TestLineDiffNonEmptyWhenDifferent(t *testing.T) {
	a := []byte("line1\nline2\nline3\n")
	b := []byte("line1\nchanged\nline3\n")
	patch := LineDiff(a, b, "a", "b")
	assert.NotEmpty(t, patch)
	assert.Contains(t, string(patch), "-line2")
	assert.Contains(t, string(patch), "+changed")
}

func TestThreeWayMergeCleanFastForward(t *testing.T) {
	base := []byte("line1\nbase\nline3\n")
	head := []byte("line1\nbase\nline3\n")
	other := []byte("line1\nother\nline3\n")

	merged, conflict := ThreeWayMerge(base, head, other, "HEAD", "base", "feature")
	assert.False(t, conflict)
	assert.Equal(t, "line1\nother\nline3\n", string(merged))
}

func TestThreeWayMergeConflictSameLine(t *testing.T) {
	base := []byte("line1\nbase\nline3\n")
	head := []byte("line1\nmaster\nline3\n")
	other := []byte("line1\nfeature\nline3\n")

	merged, conflict := ThreeWayMerge(base, head, other, "HEAD", "base", "feature")
	assert.True(t, conflict)
	s := string(merged)
	assert.Contains(t, s, "<<<<<<< HEAD")
	assert.Contains(t, s, "=======")
	assert.Contains(t, s, ">>>>>>> feature")
	assert.Contains(t, s, "master")
	assert.Contains(t, s, "feature")
}

func TestThreeWayMergeBothSidesIdentical(t *testing.T) {
	base := []byte("X\n")
	head := []byte("changed\n")
	other := []byte("changed\n")

	merged, conflict := ThreeWayMerge(base, head, other, "HEAD", "base", "feature")
	assert.False(t, conflict)
	assert.Equal(t, "changed\n", string(merged))
}
