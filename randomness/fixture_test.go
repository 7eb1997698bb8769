package randomness_test

import (
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureProviderReplaysInOrder(t *testing.T) {
	p := randomness.NewFixtureProvider(
		[]*big.Int{big.NewInt(3), big.NewInt(5)},
		[][]byte{{1, 2, 3}},
	)

	a, err := p.GenInteger(big.NewInt(11))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3), a)

	b, err := p.GenInteger(big.NewInt(11))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), b)

	bytes, err := p.GenBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, bytes)
}

func TestFixtureProviderRejectsBadUpperBound(t *testing.T) {
	p := randomness.NewFixtureProvider(nil, nil)
	_, err := p.GenInteger(big.NewInt(0))
	require.Error(t, err)
}

func TestFixtureProviderPanicsOnExhaustedQueue(t *testing.T) {
	p := randomness.NewFixtureProvider(nil, nil)
	assert.Panics(t, func() {
		_, _ = p.GenInteger(big.NewInt(5))
	})
}

func TestFixtureProviderPanicsOnByteLengthMismatch(t *testing.T) {
	p := randomness.NewFixtureProvider(nil, [][]byte{{1, 2}})
	assert.Panics(t, func() {
		_, _ = p.GenBytes(3)
	})
}

func TestGenZqVectorConsumesOneSamplePerElement(t *testing.T) {
	zq, err := mathx.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)
	p := randomness.NewFixtureProvider([]*big.Int{big.NewInt(2), big.NewInt(13)}, nil)

	vec, err := randomness.GenZqVector(p, zq, 2)
	require.NoError(t, err)
	require.Equal(t, 2, vec.Len())
	first, _ := vec.Get(0)
	second, _ := vec.Get(1)
	assert.Equal(t, big.NewInt(2), first.Value())
	assert.Equal(t, big.NewInt(2), second.Value()) // 13 mod 11 = 2
}
