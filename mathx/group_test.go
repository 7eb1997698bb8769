package mathx_test

import (
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGroup returns the small safe-prime group p=23, q=11, g=2 used
// throughout these tests.
func testGroup(t *testing.T) *mathx.GqGroup {
	t.Helper()
	g, err := mathx.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	return g
}

func TestNewGqGroupRejectsBadParameters(t *testing.T) {
	_, err := mathx.NewGqGroup(big.NewInt(22), big.NewInt(11), big.NewInt(2))
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.InvalidInput))

	_, err = mathx.NewGqGroup(nil, big.NewInt(11), big.NewInt(2))
	require.Error(t, err)

	// 5 is not a quadratic residue mod 23 (5^11 mod 23 != 1), so it
	// cannot generate the QR subgroup.
	_, err = mathx.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(5))
	require.Error(t, err)
}

func TestGqGroupEqual(t *testing.T) {
	g1 := testGroup(t)
	g2 := testGroup(t)
	assert.True(t, g1.Equal(g2))

	other, err := mathx.NewGqGroup(big.NewInt(47), big.NewInt(23), big.NewInt(2))
	require.NoError(t, err)
	assert.False(t, g1.Equal(other))
}

func TestGenerateElementRejectsNonMembers(t *testing.T) {
	g := testGroup(t)
	_, err := g.GenerateElement(big.NewInt(5))
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.InvalidInput))

	// 4 = 2^2 is a QR mod 23.
	e, err := g.GenerateElement(big.NewInt(4))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(4), e.Value())
}

func TestIdentityAndGenerator(t *testing.T) {
	g := testGroup(t)
	assert.True(t, g.Identity().IsIdentity())
	assert.Equal(t, big.NewInt(2), g.GeneratorElement().Value())
}

func TestToZqGroupSharesOrder(t *testing.T) {
	g := testGroup(t)
	zq := g.ToZqGroup()
	assert.Equal(t, g.Q(), zq.Q())
}

func TestZqGroupGenerateElementReducesModQ(t *testing.T) {
	zq, err := mathx.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)

	e, err := zq.GenerateElement(big.NewInt(15))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(4), e.Value())

	neg, err := zq.GenerateElement(big.NewInt(-1))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), neg.Value())
}

func TestZeroAndOneElement(t *testing.T) {
	zq, err := mathx.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)
	assert.True(t, zq.ZeroElement().IsZero())
	assert.Equal(t, big.NewInt(1), zq.OneElement().Value())
}
