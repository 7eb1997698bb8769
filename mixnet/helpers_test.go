package mixnet_test

import (
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/permutation"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/stretchr/testify/require"
)

// bigTestGroup is large enough that SHA256's 256-bit digest still
// satisfies ChallengeZq's bit-length precondition against q, which
// every sub-argument in this package relies on for its challenges.
func bigTestGroup(t *testing.T) *mathx.GqGroup {
	t.Helper()
	p, ok := new(big.Int).SetString("2377053792370087502568624045650489927592924060901165491568709040990685857989843", 10)
	require.True(t, ok)
	q, ok := new(big.Int).SetString("1188526896185043751284312022825244963796462030450582745784354520495342928994921", 10)
	require.True(t, ok)
	g, err := mathx.NewGqGroup(p, q, big.NewInt(3))
	require.NoError(t, err)
	return g
}

func testHash() hashing.Hash { return hashing.SHA256{} }

func testKey(t *testing.T, group *mathx.GqGroup, nu int) commitment.Key {
	t.Helper()
	k, err := commitment.DeriveVerifiableKey(group, nu)
	require.NoError(t, err)
	return k
}

func zqVecFromInts(t *testing.T, zq *mathx.ZqGroup, vals []int64) mathx.GroupVector[mathx.ZqElement] {
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

func randomZqVector(t *testing.T, zq *mathx.ZqGroup, rnd randomness.Provider, n int) mathx.GroupVector[mathx.ZqElement] {
	t.Helper()
	v, err := randomness.GenZqVector(rnd, zq, n)
	require.NoError(t, err)
	return v
}

func zqElementForInt(t *testing.T, zq *mathx.ZqGroup, v int64) mathx.ZqElement {
	t.Helper()
	e, err := zq.GenerateElement(big.NewInt(v))
	require.NoError(t, err)
	return e
}

func randomZqElement(t *testing.T, zq *mathx.ZqGroup, rnd randomness.Provider) mathx.ZqElement {
	t.Helper()
	e, err := randomness.GenZqElement(rnd, zq)
	require.NoError(t, err)
	return e
}

func matrixFromColumns(t *testing.T, cols [][]mathx.ZqElement) mathx.GroupMatrix[mathx.ZqElement] {
	t.Helper()
	m, err := mathx.MatrixFromColumns(cols)
	require.NoError(t, err)
	return m
}

// encryptedVector builds a vector of n single-component ciphertexts
// encrypting distinct small messages, for use as the public input a
// shuffle or multi-exponentiation statement permutes/combines.
func encryptedVector(t *testing.T, group *mathx.GqGroup, pk elgamal.PublicKey, rnd randomness.Provider, n int) ([]elgamal.Ciphertext, []mathx.ZqElement) {
	t.Helper()
	zq := group.ToZqGroup()
	out := make([]elgamal.Ciphertext, n)
	rs := make([]mathx.ZqElement, n)
	for i := 0; i < n; i++ {
		m, err := group.GenerateElement(big.NewInt(int64((2 + i) * (2 + i))))
		require.NoError(t, err)
		msgVec, err := mathx.NewGroupVector([]mathx.GqElement{m})
		require.NoError(t, err)
		msg, err := elgamal.NewMessage(msgVec)
		require.NoError(t, err)
		r := randomZqElement(t, zq, rnd)
		c, err := elgamal.Encrypt(msg, r, pk)
		require.NoError(t, err)
		out[i] = c
		rs[i] = r
	}
	return out, rs
}

func ciphertextVector(t *testing.T, cs []elgamal.Ciphertext) mathx.GroupVector[elgamal.Ciphertext] {
	t.Helper()
	v, err := mathx.NewGroupVector(cs)
	require.NoError(t, err)
	return v
}

// reEncryptAndPermute builds C' = ReEncrypt(C[sigma(i)], rho[i], pk)
// for i=0..n-1, the honest shuffle witness construction.
func reEncryptAndPermute(t *testing.T, pk elgamal.PublicKey, zq *mathx.ZqGroup, rnd randomness.Provider, c []elgamal.Ciphertext, sigma permutation.Permutation) ([]elgamal.Ciphertext, mathx.GroupVector[mathx.ZqElement]) {
	t.Helper()
	n := len(c)
	out := make([]elgamal.Ciphertext, n)
	rho := make([]mathx.ZqElement, n)
	for i := 0; i < n; i++ {
		src, err := sigma.Get(i)
		require.NoError(t, err)
		r := randomZqElement(t, zq, rnd)
		rho[i] = r
		ct, err := elgamal.ReEncrypt(c[src], r, pk)
		require.NoError(t, err)
		out[i] = ct
	}
	rhoVec, err := mathx.NewGroupVector(rho)
	require.NoError(t, err)
	return out, rhoVec
}
