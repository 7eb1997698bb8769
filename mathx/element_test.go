package mathx_test

import (
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGqElementMultiplyAndExponentiate(t *testing.T) {
	g := testGroup(t)
	zq := g.ToZqGroup()

	four, err := g.GenerateElement(big.NewInt(4))
	require.NoError(t, err)
	eight, err := g.GenerateElement(big.NewInt(8))
	require.NoError(t, err)

	product, err := four.Multiply(eight)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(9), product.Value())

	three, err := zq.GenerateElement(big.NewInt(3))
	require.NoError(t, err)
	gen := g.GeneratorElement()
	cubed, err := gen.Exponentiate(three)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(8), cubed.Value())
}

func TestGqElementMultiplyRejectsGroupMismatch(t *testing.T) {
	g1 := testGroup(t)
	g2, err := mathx.NewGqGroup(big.NewInt(47), big.NewInt(23), big.NewInt(2))
	require.NoError(t, err)

	a := g1.GeneratorElement()
	b := g2.GeneratorElement()
	_, err = a.Multiply(b)
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.GroupMismatch))
}

func TestGqElementInvert(t *testing.T) {
	g := testGroup(t)
	inv := g.GeneratorElement().Invert()
	assert.Equal(t, big.NewInt(12), inv.Value())

	product, err := g.GeneratorElement().Multiply(inv)
	require.NoError(t, err)
	assert.True(t, product.IsIdentity())
}

func TestMultiplyAllRejectsEmpty(t *testing.T) {
	_, err := mathx.MultiplyAll(nil)
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.InvalidInput))
}

func TestMultiplyAllFoldsElements(t *testing.T) {
	g := testGroup(t)
	two, _ := g.GenerateElement(big.NewInt(2))
	four, _ := g.GenerateElement(big.NewInt(4))
	eight, _ := g.GenerateElement(big.NewInt(8))

	result, err := mathx.MultiplyAll([]mathx.GqElement{two, four, eight})
	require.NoError(t, err)
	// 2*4*8 = 64 mod 23 = 18
	assert.Equal(t, big.NewInt(18), result.Value())
}

func TestZqElementArithmetic(t *testing.T) {
	zq, err := mathx.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)

	a, _ := zq.GenerateElement(big.NewInt(7))
	b, _ := zq.GenerateElement(big.NewInt(9))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), sum.Value())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(9), diff.Value())

	neg := a.Negate()
	assert.Equal(t, big.NewInt(4), neg.Value())

	prod, err := a.Multiply(b)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(8), prod.Value())
}

func TestZqElementInvert(t *testing.T) {
	zq, err := mathx.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)

	a, _ := zq.GenerateElement(big.NewInt(7))
	inv, err := a.Invert()
	require.NoError(t, err)
	prod, err := a.Multiply(inv)
	require.NoError(t, err)
	assert.True(t, prod.Equal(zq.OneElement()))

	_, err = zq.ZeroElement().Invert()
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.InvalidInput))
}

func TestZqElementExp(t *testing.T) {
	zq, err := mathx.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)
	a, _ := zq.GenerateElement(big.NewInt(3))
	assert.Equal(t, big.NewInt(9), a.Exp(2).Value())
	assert.Equal(t, big.NewInt(1), a.Exp(0).Value())
}

func TestSumZq(t *testing.T) {
	zq, err := mathx.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)

	empty, err := mathx.SumZq(zq, nil)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	a, _ := zq.GenerateElement(big.NewInt(6))
	b, _ := zq.GenerateElement(big.NewInt(8))
	sum, err := mathx.SumZq(zq, []mathx.ZqElement{a, b})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3), sum.Value())
}

func TestBytesRoundTripsThroughValue(t *testing.T) {
	g := testGroup(t)
	e := g.GeneratorElement()
	assert.Equal(t, e.Value().Bytes(), e.Bytes())
}
