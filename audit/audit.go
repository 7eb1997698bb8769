// Package audit provides a supplemental, non-normative tamper-evidence
// feature: a Merkle commitment over a mix step's ciphertext batch, so
// an operator can log a short digest per step instead of shipping the
// whole batch around. It never participates in, nor gates, the
// cryptographic verification of a shuffle, product, or decryption
// argument — it is an operational log line, not a proof.
package audit

import (
	"crypto/sha256"
	"fmt"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/xsleonard/go-merkle"
)

// Digest is a mix step's Merkle root plus the number of leaves it
// commits to, so a verifier can tell a short batch from a truncated
// one before recomputing anything.
type Digest struct {
	Root  []byte
	Count int
}

func ciphertextLeaf(c elgamal.Ciphertext) []byte {
	leaf := append([]byte{}, c.Gamma().Bytes()...)
	for i := 0; i < c.Len(); i++ {
		p, _ := c.Phi().Get(i)
		leaf = append(leaf, p.Bytes()...)
	}
	return leaf
}

// BatchDigest builds the Merkle root over a mix step's ciphertext
// vector, one leaf per ciphertext in vector order.
func BatchDigest(ciphertexts mathx.GroupVector[elgamal.Ciphertext]) (Digest, error) {
	n := ciphertexts.Len()
	if n == 0 {
		return Digest{}, ccerrors.New(ccerrors.InvalidInput, "cannot build a batch digest over an empty ciphertext vector")
	}
	leaves := make([][]byte, n)
	for i := 0; i < n; i++ {
		c, err := ciphertexts.Get(i)
		if err != nil {
			return Digest{}, err
		}
		leaves[i] = ciphertextLeaf(c)
	}
	tree := merkle.NewTree()
	if err := tree.Generate(leaves, sha256.New()); err != nil {
		return Digest{}, ccerrors.New(ccerrors.InvalidInput, "building batch digest Merkle tree: %v", err)
	}
	return Digest{Root: tree.Root().Hash, Count: n}, nil
}

// VerifyBatchDigest recomputes the Merkle root over ciphertexts and
// checks it against an operator's previously logged digest.
func VerifyBatchDigest(ciphertexts mathx.GroupVector[elgamal.Ciphertext], want Digest) (bool, error) {
	got, err := BatchDigest(ciphertexts)
	if err != nil {
		return false, err
	}
	if got.Count != want.Count {
		return false, nil
	}
	return fmt.Sprintf("%x", got.Root) == fmt.Sprintf("%x", want.Root), nil
}
