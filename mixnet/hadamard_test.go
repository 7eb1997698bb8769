package mixnet_test

import (
	"testing"

	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/mixnet"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildHadamardCase(t *testing.T, group *mathx.GqGroup, ck commitment.Key, rnd randomness.Provider) (mixnet.HadamardStatement, mixnet.HadamardWitness) {
	t.Helper()
	zq := group.ToZqGroup()

	col1 := []int64{2, 3}
	col2 := []int64{4, 5}
	b := []int64{col1[0] * col2[0], col1[1] * col2[1]} // 8, 15

	a1 := zqVecFromInts(t, zq, col1)
	a2 := zqVecFromInts(t, zq, col2)
	bVec := zqVecFromInts(t, zq, b)

	r1 := randomZqElement(t, zq, rnd)
	r2 := randomZqElement(t, zq, rnd)
	s := randomZqElement(t, zq, rnd)

	ca1, err := commitment.Commit(a1, r1, ck)
	require.NoError(t, err)
	ca2, err := commitment.Commit(a2, r2, ck)
	require.NoError(t, err)
	cb, err := commitment.Commit(bVec, s, ck)
	require.NoError(t, err)

	caVec, err := mathx.NewGroupVector([]mathx.GqElement{ca1, ca2})
	require.NoError(t, err)

	rVec, err := mathx.NewGroupVector([]mathx.ZqElement{r1, r2})
	require.NoError(t, err)

	st := mixnet.HadamardStatement{CA: caVec, Cb: cb, CK: ck}
	wit := mixnet.HadamardWitness{
		A: matrixFromColumns(t, [][]mathx.ZqElement{a1.ToSlice(), a2.ToSlice()}),
		R: rVec,
		B: bVec,
		S: s,
	}
	return st, wit
}

func TestHadamardArgumentRoundTrip(t *testing.T) {
	group := bigTestGroup(t)
	rnd := randomness.NewSystemProvider()
	ck := testKey(t, group, 2)
	h := testHash()

	st, wit := buildHadamardCase(t, group, ck, rnd)
	arg, err := mixnet.GetHadamardArgument(h, st, wit, rnd)
	require.NoError(t, err)

	result, err := mixnet.VerifyHadamardArgument(h, st, arg)
	require.NoError(t, err)
	assert.True(t, result.Verified(), "unexpected failures: %v", result.Errors())
}

func TestHadamardArgumentRejectsMismatchedProduct(t *testing.T) {
	group := bigTestGroup(t)
	rnd := randomness.NewSystemProvider()
	ck := testKey(t, group, 2)
	zq := group.ToZqGroup()
	h := testHash()

	st, wit := buildHadamardCase(t, group, ck, rnd)
	wit.B = zqVecFromInts(t, zq, []int64{1, 1})

	_, err := mixnet.GetHadamardArgument(h, st, wit, rnd)
	require.Error(t, err)
}

func TestHadamardArgumentRejectsMLessThanTwo(t *testing.T) {
	group := bigTestGroup(t)
	rnd := randomness.NewSystemProvider()
	ck := testKey(t, group, 2)
	zq := group.ToZqGroup()
	h := testHash()

	col := zqVecFromInts(t, zq, []int64{2, 3})
	r := randomZqElement(t, zq, rnd)
	c, err := commitment.Commit(col, r, ck)
	require.NoError(t, err)
	caVec, err := mathx.NewGroupVector([]mathx.GqElement{c})
	require.NoError(t, err)

	st := mixnet.HadamardStatement{CA: caVec, Cb: c, CK: ck}
	wit := mixnet.HadamardWitness{
		A: matrixFromColumns(t, [][]mathx.ZqElement{col.ToSlice()}),
		R: zqVecFromInts(t, zq, []int64{0}),
		B: col,
		S: zq.ZeroElement(),
	}
	_, err = mixnet.GetHadamardArgument(h, st, wit, rnd)
	require.Error(t, err)
}
