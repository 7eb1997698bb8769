package elgamal

import (
	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/randomness"
)

// SchnorrProof is a knowledge-of-discrete-log proof over Gq (spec
// §4.10 supplement): it lets a component sign a commitment key or
// group-parameter triple so a downstream mix node can authenticate
// where a CommitmentKey came from before trusting it, independent of
// the shuffle/decryption arguments. It is grounded on the teacher's
// SchnorrSign/SchnorrVerify (util/Util.go), generalized from a kyber
// curve point to a mathx.GqElement.
type SchnorrProof struct {
	challenge mathx.ZqElement
	response  mathx.ZqElement
}

// Challenge returns the proof's challenge component.
func (p SchnorrProof) Challenge() mathx.ZqElement { return p.challenge }

// Response returns the proof's response component.
func (p SchnorrProof) Response() mathx.ZqElement { return p.response }

// SignSchnorr proves knowledge of privateKey such that publicKey =
// g^privateKey, binding the proof to message via the recursive hash.
func SignSchnorr(h hashing.Hash, group *mathx.GqGroup, privateKey mathx.ZqElement, publicKey mathx.GqElement, message []byte, rnd randomness.Provider) (SchnorrProof, error) {
	zq := group.ToZqGroup()
	v, err := randomness.GenZqElement(rnd, zq)
	if err != nil {
		return SchnorrProof{}, err
	}
	gen := group.GeneratorElement()
	t, err := gen.Exponentiate(v)
	if err != nil {
		return SchnorrProof{}, err
	}
	c, err := hashing.ChallengeZq(h, zq, hashing.Transcript(
		hashing.Bytes(publicKey.Bytes()),
		hashing.Bytes(t.Bytes()),
		hashing.Bytes(message),
	))
	if err != nil {
		return SchnorrProof{}, err
	}
	cx, err := c.Multiply(privateKey)
	if err != nil {
		return SchnorrProof{}, err
	}
	z, err := v.Add(cx)
	if err != nil {
		return SchnorrProof{}, err
	}
	return SchnorrProof{challenge: c, response: z}, nil
}

// VerifySchnorr recomputes t = g^response * publicKey^-challenge and
// checks the challenge rehashes to the same value.
func VerifySchnorr(h hashing.Hash, group *mathx.GqGroup, publicKey mathx.GqElement, message []byte, proof SchnorrProof) error {
	zq := group.ToZqGroup()
	gen := group.GeneratorElement()
	gz, err := gen.Exponentiate(proof.response)
	if err != nil {
		return err
	}
	negC := proof.challenge.Negate()
	pkNegC, err := publicKey.Exponentiate(negC)
	if err != nil {
		return err
	}
	t, err := gz.Multiply(pkNegC)
	if err != nil {
		return err
	}
	recomputed, err := hashing.ChallengeZq(h, zq, hashing.Transcript(
		hashing.Bytes(publicKey.Bytes()),
		hashing.Bytes(t.Bytes()),
		hashing.Bytes(message),
	))
	if err != nil {
		return err
	}
	if !recomputed.Equal(proof.challenge) {
		return ccerrors.New(ccerrors.InvalidInput, "Schnorr proof does not verify")
	}
	return nil
}
