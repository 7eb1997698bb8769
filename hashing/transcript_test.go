package hashing_test

import (
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallHash is a fake 4-bit-digest Hash so ChallengeZq can be tested
// against a Zq group whose modulus has enough bits to accept it.
type smallHash struct{}

func (smallHash) Sum(data ...[]byte) []byte {
	var acc byte
	for _, d := range data {
		for _, b := range d {
			acc ^= b
		}
	}
	return []byte{acc & 0x0f}
}
func (smallHash) Size() int      { return 1 }
func (smallHash) BitLength() int { return 4 }

func TestChallengeZqRejectsOversizedHash(t *testing.T) {
	zq, err := mathx.NewZqGroup(big.NewInt(7)) // 3-bit modulus
	require.NoError(t, err)
	_, err = hashing.ChallengeZq(hashing.SHA256{}, zq, hashing.Text("x"))
	require.Error(t, err)
	assert.True(t, ccerrors.Is(err, ccerrors.BitLengthTooLarge))
}

func TestChallengeZqAcceptsSmallHash(t *testing.T) {
	zq, err := mathx.NewZqGroup(big.NewInt(23)) // 5-bit modulus, > smallHash's 4 bits
	require.NoError(t, err)
	e, err := hashing.ChallengeZq(smallHash{}, zq, hashing.Text("x"))
	require.NoError(t, err)
	assert.True(t, e.Value().Cmp(big.NewInt(23)) < 0)
}

func TestChallengeZqIsDeterministic(t *testing.T) {
	zq, err := mathx.NewZqGroup(big.NewInt(23))
	require.NoError(t, err)
	tr := hashing.Transcript(hashing.Text("a"), hashing.Int64(5))
	e1, err := hashing.ChallengeZq(smallHash{}, zq, tr)
	require.NoError(t, err)
	e2, err := hashing.ChallengeZq(smallHash{}, zq, tr)
	require.NoError(t, err)
	assert.True(t, e1.Equal(e2))
}

func TestTranscriptWrapsIntoAList(t *testing.T) {
	h := hashing.SHA256{}
	direct, err := hashing.RecursiveHash(h, hashing.List(hashing.Text("a"), hashing.Text("b")))
	require.NoError(t, err)
	viaTranscript, err := hashing.RecursiveHash(h, hashing.Transcript(hashing.Text("a"), hashing.Text("b")))
	require.NoError(t, err)
	assert.Equal(t, direct, viaTranscript)
}
