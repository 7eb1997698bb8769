package randomness_test

import (
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/randomness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemProviderGenBytesLength(t *testing.T) {
	p := randomness.NewSystemProvider()
	b, err := p.GenBytes(16)
	require.NoError(t, err)
	assert.Len(t, b, 16)
}

func TestSystemProviderGenIntegerStaysInRange(t *testing.T) {
	p := randomness.NewSystemProvider()
	upper := big.NewInt(7)
	for i := 0; i < 50; i++ {
		v, err := p.GenInteger(upper)
		require.NoError(t, err)
		assert.True(t, v.Sign() >= 0)
		assert.True(t, v.Cmp(upper) < 0)
	}
}

func TestSystemProviderRejectsNonPositiveUpperBound(t *testing.T) {
	p := randomness.NewSystemProvider()
	_, err := p.GenInteger(big.NewInt(0))
	require.Error(t, err)
}

func TestSystemProviderIsConcurrencySafe(t *testing.T) {
	p := randomness.NewSystemProvider()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 20; j++ {
				_, err := p.GenInteger(big.NewInt(1000))
				assert.NoError(t, err)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
