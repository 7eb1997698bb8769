package verification_test

import (
	"testing"

	"github.com/streetU/crypto-primitives/verification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResultIsVerified(t *testing.T) {
	r := verification.New()
	assert.True(t, r.Verified())
	assert.Empty(t, r.Errors())
	assert.NoError(t, r.Err())
}

func TestFailMakesResultUnverified(t *testing.T) {
	r := verification.New()
	r.Fail("check one failed")
	assert.False(t, r.Verified())
	assert.Equal(t, []string{"check one failed"}, r.Errors())
	require.Error(t, r.Err())
}

func TestFailfFormatsMessage(t *testing.T) {
	r := verification.New()
	r.Failf("mismatch at index %d: got %d want %d", 3, 5, 7)
	assert.Equal(t, []string{"mismatch at index 3: got 5 want 7"}, r.Errors())
}

func TestFailPreservesOrder(t *testing.T) {
	r := verification.New()
	r.Fail("first")
	r.Fail("second")
	r.Fail("third")
	assert.Equal(t, []string{"first", "second", "third"}, r.Errors())
}

func TestMergeWithPrefix(t *testing.T) {
	r := verification.New()
	sub := verification.New()
	sub.Fail("inner failure")
	r.Merge("sub-argument", sub)
	assert.Equal(t, []string{"sub-argument: inner failure"}, r.Errors())
}

func TestMergeWithoutPrefix(t *testing.T) {
	r := verification.New()
	sub := verification.New()
	sub.Fail("inner failure")
	r.Merge("", sub)
	assert.Equal(t, []string{"inner failure"}, r.Errors())
}

func TestMergeVerifiedSubResultAddsNothing(t *testing.T) {
	r := verification.New()
	r.Fail("top-level failure")
	sub := verification.New()
	r.Merge("sub", sub)
	assert.Equal(t, []string{"top-level failure"}, r.Errors())
}

func TestMergePreservesRelativeOrderAcrossCalls(t *testing.T) {
	r := verification.New()
	r.Fail("a")
	sub := verification.New()
	sub.Fail("b")
	sub.Fail("c")
	r.Merge("sub", sub)
	r.Fail("d")
	assert.Equal(t, []string{"a", "sub: b", "sub: c", "d"}, r.Errors())
}
