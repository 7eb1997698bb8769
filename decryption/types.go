// Package decryption implements the Sigma-protocol decryption proof
// of spec §4.7: a non-interactive proof of knowledge of the secret
// key relating a ciphertext to its claimed decryption, plus a batch
// API over a vector of ciphertexts.
package decryption

import "github.com/streetU/crypto-primitives/mathx"

// Proof is (e, z): a scalar challenge and a length-ℓ response vector.
type Proof struct {
	E mathx.ZqElement
	Z mathx.GroupVector[mathx.ZqElement]
}

// ElementSize lets Proof satisfy mathx.Sized, so a batch of proofs
// can share the uniform-length invariant machinery GroupVector
// already gives every other homogeneous sequence in this library.
func (Proof) ElementSize() int { return 1 }
