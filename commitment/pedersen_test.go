package commitment_test

import (
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zqVec(t *testing.T, zq *mathx.ZqGroup, vals ...int64) mathx.GroupVector[mathx.ZqElement] {
	t.Helper()
	elems := make([]mathx.ZqElement, len(vals))
	for i, v := range vals {
		e, err := zq.GenerateElement(big.NewInt(v))
		require.NoError(t, err)
		elems[i] = e
	}
	vec, err := mathx.NewGroupVector(elems)
	require.NoError(t, err)
	return vec
}

func TestCommitMatchesHandComputedValue(t *testing.T) {
	group := testGroup(t)
	zq := group.ToZqGroup()
	key := testKey(t, group)

	a := zqVec(t, zq, 2, 3)
	r, err := zq.GenerateElement(big.NewInt(5))
	require.NoError(t, err)

	c, err := commitment.Commit(a, r, key)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(12), c.Value())
}

func TestCommitRejectsShapeMismatch(t *testing.T) {
	group := testGroup(t)
	zq := group.ToZqGroup()
	key := testKey(t, group)

	a := zqVec(t, zq, 2)
	r, _ := zq.GenerateElement(big.NewInt(5))
	_, err := commitment.Commit(a, r, key)
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.ShapeError))
}

func TestCommitIsAdditivelyHomomorphic(t *testing.T) {
	group := testGroup(t)
	zq := group.ToZqGroup()
	key := testKey(t, group)

	a1 := zqVec(t, zq, 2, 3)
	a2 := zqVec(t, zq, 4, 1)
	r1, _ := zq.GenerateElement(big.NewInt(5))
	r2, _ := zq.GenerateElement(big.NewInt(9))

	c1, err := commitment.Commit(a1, r1, key)
	require.NoError(t, err)
	c2, err := commitment.Commit(a2, r2, key)
	require.NoError(t, err)
	combined, err := c1.Multiply(c2)
	require.NoError(t, err)

	sumA1, _ := a1.Get(0)
	sumA2, _ := a2.Get(0)
	sum0, err := sumA1.Add(sumA2)
	require.NoError(t, err)
	sumA1b, _ := a1.Get(1)
	sumA2b, _ := a2.Get(1)
	sum1, err := sumA1b.Add(sumA2b)
	require.NoError(t, err)
	sumR, err := r1.Add(r2)
	require.NoError(t, err)

	sumVec, err := mathx.NewGroupVector([]mathx.ZqElement{sum0, sum1})
	require.NoError(t, err)
	direct, err := commitment.Commit(sumVec, sumR, key)
	require.NoError(t, err)

	assert.True(t, direct.Equal(combined))
}

func TestCommitMatrixCommitsEachColumn(t *testing.T) {
	group := testGroup(t)
	zq := group.ToZqGroup()
	key := testKey(t, group)

	// Build a 2x2 matrix: 2 rows (nu=2 per column) x 2 columns.
	e11, _ := zq.GenerateElement(big.NewInt(2))
	e21, _ := zq.GenerateElement(big.NewInt(3))
	e12, _ := zq.GenerateElement(big.NewInt(4))
	e22, _ := zq.GenerateElement(big.NewInt(1))
	m, err := mathx.NewGroupMatrix([][]mathx.ZqElement{{e11, e12}, {e21, e22}})
	require.NoError(t, err)

	r := zqVec(t, zq, 5, 9)
	commits, err := commitment.CommitMatrix(m, r, key)
	require.NoError(t, err)
	require.Equal(t, 2, commits.Len())

	col1, err := m.Column(0)
	require.NoError(t, err)
	r1, _ := r.Get(0)
	want1, err := commitment.Commit(col1, r1, key)
	require.NoError(t, err)
	got1, _ := commits.Get(0)
	assert.True(t, want1.Equal(got1))
}

func TestCommitMatrixRejectsColumnCountMismatch(t *testing.T) {
	group := testGroup(t)
	zq := group.ToZqGroup()
	key := testKey(t, group)

	e11, _ := zq.GenerateElement(big.NewInt(2))
	e21, _ := zq.GenerateElement(big.NewInt(3))
	m, err := mathx.NewGroupMatrix([][]mathx.ZqElement{{e11}, {e21}})
	require.NoError(t, err)

	r := zqVec(t, zq, 5, 9)
	_, err = commitment.CommitMatrix(m, r, key)
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.ShapeError))
}
