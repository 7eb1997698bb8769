package hashing

import (
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/mathx"
)

// Transcript builds the single Hashable list every Fiat-Shamir
// challenge in this library is derived from (spec §9: "define a
// single transcript(...) helper... use this helper exclusively").
// Multiple top-level values are wrapped into one list, per spec §4.2.
func Transcript(values ...Hashable) Hashable {
	return List(values...)
}

// ChallengeZq hashes the transcript and reduces the digest into Zq,
// the pattern every argument in the mixnet package uses to derive a
// public-coin challenge from its running transcript (spec §4.6, §12
// in the glossary).
//
// It fails with BitLengthTooLarge if h's digest would be so much
// larger than q that reducing it mod q would bias the result (spec
// §4.7): this library requires the hash's bit length to be strictly
// less than q's bit length, matching the decryption-proof
// precondition in spec §4.7 applied uniformly to every challenge
// derivation.
func ChallengeZq(h Hash, zq *mathx.ZqGroup, transcript Hashable) (mathx.ZqElement, error) {
	if h.BitLength() >= zq.Q().BitLen() {
		return mathx.ZqElement{}, ccerrors.New(ccerrors.BitLengthTooLarge, "hash bit length %d >= bit length of q (%d)", h.BitLength(), zq.Q().BitLen())
	}
	digest, err := RecursiveHash(h, transcript)
	if err != nil {
		return mathx.ZqElement{}, err
	}
	n := new(big.Int).SetBytes(digest)
	return zq.GenerateElement(n)
}
