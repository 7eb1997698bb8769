package decryption

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/verification"
)

func logDebug(stage string, fields map[string]interface{}) {
	ev := log.Debug().Str("stage", stage)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg("decryption proof step")
}

// phiVector computes (g^b_1..g^b_l, gamma^b_1..gamma^b_l), the
// 2l-element "phi-decryption" both the prover's first move and the
// verifier's reconstruction are built from (spec §4.7).
func phiVector(gen, gamma mathx.GqElement, b mathx.GroupVector[mathx.ZqElement]) (mathx.GroupVector[mathx.GqElement], error) {
	l := b.Len()
	out := make([]mathx.GqElement, 2*l)
	for i := 0; i < l; i++ {
		bi, _ := b.Get(i)
		g, err := gen.Exponentiate(bi)
		if err != nil {
			return mathx.GroupVector[mathx.GqElement]{}, err
		}
		out[i] = g
		gm, err := gamma.Exponentiate(bi)
		if err != nil {
			return mathx.GroupVector[mathx.GqElement]{}, err
		}
		out[l+i] = gm
	}
	return mathx.NewGroupVector(out)
}

func decryptionTranscript(pk elgamal.PublicKey, c elgamal.Ciphertext, m elgamal.Message, aux hashing.Hashable, phi mathx.GroupVector[mathx.GqElement]) hashing.Hashable {
	var values []hashing.Hashable
	for i := 0; i < pk.Len(); i++ {
		k, _ := pk.Get(i)
		values = append(values, hashing.Bytes(k.Bytes()))
	}
	values = append(values, hashing.Bytes(c.Gamma().Bytes()))
	for i := 0; i < c.Len(); i++ {
		p, _ := c.Phi().Get(i)
		values = append(values, hashing.Bytes(p.Bytes()))
	}
	for i := 0; i < m.Len(); i++ {
		v, _ := m.Get(i)
		values = append(values, hashing.Bytes(v.Bytes()))
	}
	values = append(values, aux)
	for i := 0; i < phi.Len(); i++ {
		v, _ := phi.Get(i)
		values = append(values, hashing.Bytes(v.Bytes()))
	}
	return hashing.Transcript(values...)
}

func checkLengths(c elgamal.Ciphertext, pk elgamal.PublicKey, m elgamal.Message) error {
	l := c.Len()
	if l == 0 || l != m.Len() {
		return ccerrors.New(ccerrors.ShapeError, "ciphertext length %d must equal message length %d", l, m.Len())
	}
	if l > pk.Len() {
		return ccerrors.New(ccerrors.ShapeError, "ciphertext length %d exceeds public key length %d", l, pk.Len())
	}
	return nil
}

// GenDecryptionProof samples a masking vector b, computes its
// phi-decryption, derives the challenge e from (pk, c, m, aux,
// phi(b,gamma)), and responds z_i = b_i + e*sk_i (spec §4.7).
func GenDecryptionProof(h hashing.Hash, c elgamal.Ciphertext, pk elgamal.PublicKey, sk elgamal.PrivateKey, m elgamal.Message, aux hashing.Hashable, rnd randomness.Provider) (Proof, error) {
	if err := checkLengths(c, pk, m); err != nil {
		return Proof{}, err
	}
	l := c.Len()
	if sk.Len() < l {
		return Proof{}, ccerrors.New(ccerrors.ShapeError, "secret key length %d is shorter than ciphertext length %d", sk.Len(), l)
	}
	group := c.Group()
	zq := group.ToZqGroup()
	gen := group.GeneratorElement()

	b, err := randomness.GenZqVector(rnd, zq, l)
	if err != nil {
		return Proof{}, err
	}
	phi, err := phiVector(gen, c.Gamma(), b)
	if err != nil {
		return Proof{}, err
	}
	e, err := hashing.ChallengeZq(h, zq, decryptionTranscript(pk, c, m, aux, phi))
	if err != nil {
		return Proof{}, err
	}
	logDebug("challenge-derived", map[string]interface{}{"side": "prover", "l": l})

	z := make([]mathx.ZqElement, l)
	for i := 0; i < l; i++ {
		bi, _ := b.Get(i)
		ski, err := sk.Get(i)
		if err != nil {
			return Proof{}, err
		}
		eSki, err := e.Multiply(ski)
		if err != nil {
			return Proof{}, err
		}
		zi, err := bi.Add(eSki)
		if err != nil {
			return Proof{}, err
		}
		z[i] = zi
	}
	zVec, err := mathx.NewGroupVector(z)
	if err != nil {
		return Proof{}, err
	}
	return Proof{E: e, Z: zVec}, nil
}

// VerifyDecryption reconstructs phi(b,gamma) from z, e, and the
// statement (using gamma^{sk_i} = phi_i * m_i^{-1} in place of the
// hidden sk_i), then checks the recomputed challenge matches e (spec
// §4.7).
func VerifyDecryption(h hashing.Hash, c elgamal.Ciphertext, pk elgamal.PublicKey, m elgamal.Message, proof Proof, aux hashing.Hashable) (*verification.Result, error) {
	if err := checkLengths(c, pk, m); err != nil {
		return nil, err
	}
	l := c.Len()
	result := verification.New()
	if proof.Z.Len() != l {
		result.Failf("decryption proof response vector has length %d, expected %d", proof.Z.Len(), l)
		return result, nil
	}

	group := c.Group()
	zq := group.ToZqGroup()
	gen := group.GeneratorElement()
	gamma := c.Gamma()
	negE := proof.E.Negate()

	reconstructed := make([]mathx.GqElement, 2*l)
	for i := 0; i < l; i++ {
		zi, _ := proof.Z.Get(i)
		pki, err := pk.Get(i)
		if err != nil {
			return nil, err
		}
		gz, err := gen.Exponentiate(zi)
		if err != nil {
			return nil, err
		}
		pkiNegE, err := pki.Exponentiate(negE)
		if err != nil {
			return nil, err
		}
		first, err := gz.Multiply(pkiNegE)
		if err != nil {
			return nil, err
		}
		reconstructed[i] = first

		phii, err := c.Phi().Get(i)
		if err != nil {
			return nil, err
		}
		mi, err := m.Get(i)
		if err != nil {
			return nil, err
		}
		gammaSkVal, err := phii.Multiply(mi.Invert())
		if err != nil {
			return nil, err
		}
		gammaZ, err := gamma.Exponentiate(zi)
		if err != nil {
			return nil, err
		}
		gammaSkNegE, err := gammaSkVal.Exponentiate(negE)
		if err != nil {
			return nil, err
		}
		second, err := gammaZ.Multiply(gammaSkNegE)
		if err != nil {
			return nil, err
		}
		reconstructed[l+i] = second
	}
	phiPrime, err := mathx.NewGroupVector(reconstructed)
	if err != nil {
		return nil, err
	}

	ePrime, err := hashing.ChallengeZq(h, zq, decryptionTranscript(pk, c, m, aux, phiPrime))
	if err != nil {
		return nil, err
	}
	logDebug("challenge-derived", map[string]interface{}{"side": "verifier", "l": l})
	if !ePrime.Equal(proof.E) {
		result.Fail("Could not verify decryption proof of ciphertext")
	}
	return result, nil
}

// VerifiableDecryptions decrypts every ciphertext under keyPair and
// produces a parallel vector of decryption proofs (spec §4.7).
func VerifiableDecryptions(h hashing.Hash, ciphertexts mathx.GroupVector[elgamal.Ciphertext], keyPair elgamal.KeyPair, aux hashing.Hashable, rnd randomness.Provider) (mathx.GroupVector[elgamal.Message], mathx.GroupVector[Proof], error) {
	logDebug("dispatch", map[string]interface{}{"to": "GenDecryptionProof", "batch": ciphertexts.Len()})
	messages := make([]elgamal.Message, ciphertexts.Len())
	proofs := make([]Proof, ciphertexts.Len())
	for i := 0; i < ciphertexts.Len(); i++ {
		c, err := ciphertexts.Get(i)
		if err != nil {
			return mathx.GroupVector[elgamal.Message]{}, mathx.GroupVector[Proof]{}, err
		}
		m, err := elgamal.Decrypt(c, keyPair.SecretKey)
		if err != nil {
			return mathx.GroupVector[elgamal.Message]{}, mathx.GroupVector[Proof]{}, err
		}
		proof, err := GenDecryptionProof(h, c, keyPair.PublicKey, keyPair.SecretKey, m, aux, rnd)
		if err != nil {
			return mathx.GroupVector[elgamal.Message]{}, mathx.GroupVector[Proof]{}, err
		}
		messages[i] = m
		proofs[i] = proof
	}
	messagesVec, err := mathx.NewGroupVector(messages)
	if err != nil {
		return mathx.GroupVector[elgamal.Message]{}, mathx.GroupVector[Proof]{}, err
	}
	proofsVec, err := mathx.NewGroupVector(proofs)
	if err != nil {
		return mathx.GroupVector[elgamal.Message]{}, mathx.GroupVector[Proof]{}, err
	}
	return messagesVec, proofsVec, nil
}

// VerifyDecryptions verifies every (ciphertext, message, proof)
// triple and accumulates per-ciphertext outcomes into one
// VerificationResult (spec §4.7).
func VerifyDecryptions(h hashing.Hash, ciphertexts mathx.GroupVector[elgamal.Ciphertext], pk elgamal.PublicKey, messages mathx.GroupVector[elgamal.Message], proofs mathx.GroupVector[Proof], aux hashing.Hashable) (*verification.Result, error) {
	n := ciphertexts.Len()
	if n == 0 || n != messages.Len() || n != proofs.Len() {
		return nil, ccerrors.New(ccerrors.ShapeError, "ciphertexts, messages, and proofs must have equal non-zero length")
	}
	logDebug("dispatch", map[string]interface{}{"to": "VerifyDecryption", "batch": n})
	result := verification.New()
	for i := 0; i < n; i++ {
		c, err := ciphertexts.Get(i)
		if err != nil {
			return nil, err
		}
		m, err := messages.Get(i)
		if err != nil {
			return nil, err
		}
		proof, err := proofs.Get(i)
		if err != nil {
			return nil, err
		}
		sub, err := VerifyDecryption(h, c, pk, m, proof, aux)
		if err != nil {
			return nil, err
		}
		result.Merge(fmt.Sprintf("ciphertext %d", i), sub)
	}
	return result, nil
}
