package elgamal_test

import (
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGroup(t *testing.T) *mathx.GqGroup {
	t.Helper()
	g, err := mathx.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	return g
}

func message(t *testing.T, group *mathx.GqGroup, vals ...int64) elgamal.Message {
	t.Helper()
	elems := make([]mathx.GqElement, len(vals))
	for i, v := range vals {
		e, err := group.GenerateElement(big.NewInt(v))
		require.NoError(t, err)
		elems[i] = e
	}
	vec, err := mathx.NewGroupVector(elems)
	require.NoError(t, err)
	m, err := elgamal.NewMessage(vec)
	require.NoError(t, err)
	return m
}

func TestGenKeyPairAndEncryptDecryptRoundTrip(t *testing.T) {
	group := testGroup(t)
	zq := group.ToZqGroup()
	rnd := randomness.NewFixtureProvider([]*big.Int{big.NewInt(3), big.NewInt(7)}, nil)

	kp, err := elgamal.GenKeyPair(group, 2, rnd)
	require.NoError(t, err)

	m := message(t, group, 4, 8)
	r, err := zq.GenerateElement(big.NewInt(5))
	require.NoError(t, err)

	c, err := elgamal.Encrypt(m, r, kp.PublicKey)
	require.NoError(t, err)

	decrypted, err := elgamal.Decrypt(c, kp.SecretKey)
	require.NoError(t, err)

	for i := 0; i < m.Len(); i++ {
		want, _ := m.Get(i)
		got, _ := decrypted.Get(i)
		assert.True(t, want.Equal(got))
	}
}

func TestEncryptRejectsOversizedMessage(t *testing.T) {
	group := testGroup(t)
	zq := group.ToZqGroup()
	rnd := randomness.NewFixtureProvider([]*big.Int{big.NewInt(3)}, nil)
	kp, err := elgamal.GenKeyPair(group, 1, rnd)
	require.NoError(t, err)

	m := message(t, group, 4, 8)
	r, _ := zq.GenerateElement(big.NewInt(1))
	_, err = elgamal.Encrypt(m, r, kp.PublicKey)
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.ShapeError))
}

func TestMultiplyIsHomomorphicOverMessages(t *testing.T) {
	group := testGroup(t)
	zq := group.ToZqGroup()
	rnd := randomness.NewFixtureProvider([]*big.Int{big.NewInt(9)}, nil)
	kp, err := elgamal.GenKeyPair(group, 1, rnd)
	require.NoError(t, err)

	m1 := message(t, group, 4)
	m2 := message(t, group, 8)
	r1, _ := zq.GenerateElement(big.NewInt(2))
	r2, _ := zq.GenerateElement(big.NewInt(6))

	c1, err := elgamal.Encrypt(m1, r1, kp.PublicKey)
	require.NoError(t, err)
	c2, err := elgamal.Encrypt(m2, r2, kp.PublicKey)
	require.NoError(t, err)

	combined, err := elgamal.Multiply(c1, c2)
	require.NoError(t, err)

	decrypted, err := elgamal.Decrypt(combined, kp.SecretKey)
	require.NoError(t, err)

	want := message(t, group, 4*8%23)
	wantVal, _ := want.Get(0)
	gotVal, _ := decrypted.Get(0)
	assert.True(t, wantVal.Equal(gotVal))
}

func TestExponentiateMatchesRepeatedMultiplication(t *testing.T) {
	group := testGroup(t)
	zq := group.ToZqGroup()
	rnd := randomness.NewFixtureProvider([]*big.Int{big.NewInt(9)}, nil)
	kp, err := elgamal.GenKeyPair(group, 1, rnd)
	require.NoError(t, err)

	m := message(t, group, 4)
	r, _ := zq.GenerateElement(big.NewInt(2))
	c, err := elgamal.Encrypt(m, r, kp.PublicKey)
	require.NoError(t, err)

	exp, _ := zq.GenerateElement(big.NewInt(3))
	cubed, err := elgamal.Exponentiate(c, exp)
	require.NoError(t, err)

	decrypted, err := elgamal.Decrypt(cubed, kp.SecretKey)
	require.NoError(t, err)

	// 4^3 mod 23 = 64 mod 23 = 18
	want := message(t, group, 18)
	wantVal, _ := want.Get(0)
	gotVal, _ := decrypted.Get(0)
	assert.True(t, wantVal.Equal(gotVal))
}

func TestReEncryptPreservesPlaintext(t *testing.T) {
	group := testGroup(t)
	zq := group.ToZqGroup()
	rnd := randomness.NewFixtureProvider([]*big.Int{big.NewInt(9)}, nil)
	kp, err := elgamal.GenKeyPair(group, 1, rnd)
	require.NoError(t, err)

	m := message(t, group, 4)
	r, _ := zq.GenerateElement(big.NewInt(2))
	c, err := elgamal.Encrypt(m, r, kp.PublicKey)
	require.NoError(t, err)

	rPrime, _ := zq.GenerateElement(big.NewInt(5))
	reEncrypted, err := elgamal.ReEncrypt(c, rPrime, kp.PublicKey)
	require.NoError(t, err)
	assert.False(t, reEncrypted.Gamma().Equal(c.Gamma()))

	decrypted, err := elgamal.Decrypt(reEncrypted, kp.SecretKey)
	require.NoError(t, err)
	orig, _ := m.Get(0)
	got, _ := decrypted.Get(0)
	assert.True(t, orig.Equal(got))
}

func TestOnesRejectsNonPositiveLength(t *testing.T) {
	group := testGroup(t)
	_, err := elgamal.Ones(group, 0)
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.InvalidInput))
}

func TestNewCiphertextRejectsGroupMismatch(t *testing.T) {
	group := testGroup(t)
	other, err := mathx.NewGqGroup(big.NewInt(47), big.NewInt(23), big.NewInt(2))
	require.NoError(t, err)

	gamma := other.GeneratorElement()
	phiElem, _ := group.GenerateElement(big.NewInt(4))
	phi, err := mathx.NewGroupVector([]mathx.GqElement{phiElem})
	require.NoError(t, err)

	_, err = elgamal.NewCiphertext(gamma, phi)
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.GroupMismatch))
}
