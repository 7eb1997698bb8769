package testvectors_test

import (
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/testvectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() testvectors.Context {
	return testvectors.Context{P: "17", Q: "0b", G: "02"} // p=23, q=11, g=2
}

func TestContextGqGroupParsesHex(t *testing.T) {
	group, err := testContext().GqGroup()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(23), group.P())
	assert.Equal(t, big.NewInt(11), group.Q())
}

func TestGqElementHexRoundTrip(t *testing.T) {
	group, err := testContext().GqGroup()
	require.NoError(t, err)
	e, err := group.GenerateElement(big.NewInt(8))
	require.NoError(t, err)

	s := testvectors.GqElementToHex(e)
	back, err := testvectors.GqElementFromHex(group, s)
	require.NoError(t, err)
	assert.True(t, e.Equal(back))
}

func TestZqElementHexRoundTrip(t *testing.T) {
	group, err := testContext().GqGroup()
	require.NoError(t, err)
	zq := group.ToZqGroup()
	e, err := zq.GenerateElement(big.NewInt(9))
	require.NoError(t, err)

	s := testvectors.ZqElementToHex(e)
	back, err := testvectors.ZqElementFromHex(zq, s)
	require.NoError(t, err)
	assert.True(t, e.Equal(back))
}

func TestContextPublicKeyDecodes(t *testing.T) {
	group, err := testContext().GqGroup()
	require.NoError(t, err)
	e4, err := group.GenerateElement(big.NewInt(4))
	require.NoError(t, err)
	e8, err := group.GenerateElement(big.NewInt(8))
	require.NoError(t, err)

	ctx := testContext()
	ctx.PublicKeyHex = []string{testvectors.GqElementToHex(e4), testvectors.GqElementToHex(e8)}

	pk, err := ctx.PublicKey(group)
	require.NoError(t, err)
	assert.Equal(t, 2, pk.Len())
	got0, err := pk.Get(0)
	require.NoError(t, err)
	assert.True(t, got0.Equal(e4))
}

func TestContextKeyRequiresCommitmentKey(t *testing.T) {
	group, err := testContext().GqGroup()
	require.NoError(t, err)
	ctx := testContext()
	_, err = ctx.Key(group)
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.InvalidInput))
}

func TestContextKeyDecodes(t *testing.T) {
	group, err := testContext().GqGroup()
	require.NoError(t, err)
	h, err := group.GenerateElement(big.NewInt(3))
	require.NoError(t, err)
	g1, err := group.GenerateElement(big.NewInt(4))
	require.NoError(t, err)

	ctx := testContext()
	ctx.CommitmentKey = &testvectors.KeyJSON{
		H:  testvectors.GqElementToHex(h),
		Gs: []string{testvectors.GqElementToHex(g1)},
	}

	key, err := ctx.Key(group)
	require.NoError(t, err)
	assert.Equal(t, 1, key.Nu())
	assert.True(t, key.H().Equal(h))
}

func TestCiphertextJSONRoundTrip(t *testing.T) {
	group, err := testContext().GqGroup()
	require.NoError(t, err)
	gamma, err := group.GenerateElement(big.NewInt(4))
	require.NoError(t, err)
	phi, err := group.GenerateElement(big.NewInt(8))
	require.NoError(t, err)
	phiVec, err := mathx.NewGroupVector([]mathx.GqElement{phi})
	require.NoError(t, err)
	c, err := elgamal.NewCiphertext(gamma, phiVec)
	require.NoError(t, err)

	j := testvectors.CiphertextToJSON(c)
	back, err := testvectors.CiphertextFromJSON(group, j)
	require.NoError(t, err)
	assert.True(t, back.Gamma().Equal(c.Gamma()))
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	f := testvectors.File{
		Suite: "shuffle-basic",
		Cases: []testvectors.Case{
			{
				Name:    "case-1",
				Context: testContext(),
				Input:   testvectors.Input{Statement: []byte(`{"n":4}`)},
				Output:  testvectors.Output{Verified: boolPtr(true)},
			},
		},
	}

	data, err := testvectors.Encode(f)
	require.NoError(t, err)

	back, err := testvectors.Decode(data)
	require.NoError(t, err)
	require.Len(t, back.Cases, 1)
	assert.Equal(t, "shuffle-basic", back.Suite)
	assert.Equal(t, "case-1", back.Cases[0].Name)
	assert.True(t, *back.Cases[0].Output.Verified)
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	_, err := testvectors.Decode([]byte("not json"))
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.InvalidInput))
}

func boolPtr(b bool) *bool { return &b }
