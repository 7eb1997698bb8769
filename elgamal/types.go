// Package elgamal implements multi-recipient ElGamal over a Gq group
// (spec §4.3): key generation, encryption, decryption, ciphertext
// multiplication/exponentiation, and the "ones" message used as the
// re-encryption building block inside the shuffle argument.
package elgamal

import (
	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/mathx"
)

// PublicKey is a vector of k Gq elements (g^sk_1 .. g^sk_k).
type PublicKey struct {
	keys mathx.GroupVector[mathx.GqElement]
}

// NewPublicKey validates non-emptiness and wraps keys.
func NewPublicKey(keys mathx.GroupVector[mathx.GqElement]) (PublicKey, error) {
	if keys.Len() == 0 {
		return PublicKey{}, ccerrors.New(ccerrors.InvalidInput, "public key must have at least one component")
	}
	return PublicKey{keys: keys}, nil
}

// Len returns k.
func (k PublicKey) Len() int { return k.keys.Len() }

// Get returns the i-th component.
func (k PublicKey) Get(i int) (mathx.GqElement, error) { return k.keys.Get(i) }

// Vector exposes the underlying GroupVector.
func (k PublicKey) Vector() mathx.GroupVector[mathx.GqElement] { return k.keys }

// PrivateKey is a vector of k Zq elements.
type PrivateKey struct {
	keys mathx.GroupVector[mathx.ZqElement]
}

// NewPrivateKey validates non-emptiness and wraps keys.
func NewPrivateKey(keys mathx.GroupVector[mathx.ZqElement]) (PrivateKey, error) {
	if keys.Len() == 0 {
		return PrivateKey{}, ccerrors.New(ccerrors.InvalidInput, "private key must have at least one component")
	}
	return PrivateKey{keys: keys}, nil
}

// Len returns k.
func (k PrivateKey) Len() int { return k.keys.Len() }

// Get returns the i-th component.
func (k PrivateKey) Get(i int) (mathx.ZqElement, error) { return k.keys.Get(i) }

// Vector exposes the underlying GroupVector.
func (k PrivateKey) Vector() mathx.GroupVector[mathx.ZqElement] { return k.keys }

// KeyPair bundles a private key with its corresponding public key.
type KeyPair struct {
	SecretKey PrivateKey
	PublicKey PublicKey
}

// Message is a vector of ℓ Gq elements being encrypted.
type Message struct {
	values mathx.GroupVector[mathx.GqElement]
}

// NewMessage validates non-emptiness and wraps values.
func NewMessage(values mathx.GroupVector[mathx.GqElement]) (Message, error) {
	if values.Len() == 0 {
		return Message{}, ccerrors.New(ccerrors.InvalidInput, "message must have at least one component")
	}
	return Message{values: values}, nil
}

// Len returns ℓ.
func (m Message) Len() int { return m.values.Len() }

// Get returns the i-th component.
func (m Message) Get(i int) (mathx.GqElement, error) { return m.values.Get(i) }

// Vector exposes the underlying GroupVector.
func (m Message) Vector() mathx.GroupVector[mathx.GqElement] { return m.values }

// ElementSize returns the shared per-component size.
func (m Message) ElementSize() int { return m.values.ElementSize() }

// Ones returns the all-identity message of length l in group, the
// neutral plaintext whose encryption is a pure re-encryption delta
// (spec §4.3).
func Ones(group *mathx.GqGroup, l int) (Message, error) {
	if l <= 0 {
		return Message{}, ccerrors.New(ccerrors.InvalidInput, "l must be positive, got %d", l)
	}
	ones := make([]mathx.GqElement, l)
	for i := range ones {
		ones[i] = group.Identity()
	}
	v, err := mathx.NewGroupVector(ones)
	if err != nil {
		return Message{}, err
	}
	return NewMessage(v)
}

// Ciphertext is (gamma, phi_1..phi_l), all in the same Gq.
type Ciphertext struct {
	gamma mathx.GqElement
	phi   mathx.GroupVector[mathx.GqElement]
}

// NewCiphertext validates that gamma and phi share a group and phi is
// non-empty.
func NewCiphertext(gamma mathx.GqElement, phi mathx.GroupVector[mathx.GqElement]) (Ciphertext, error) {
	if phi.Len() == 0 {
		return Ciphertext{}, ccerrors.New(ccerrors.InvalidInput, "ciphertext phi vector must be non-empty")
	}
	if first, _ := phi.Get(0); !first.Group().Equal(gamma.Group()) {
		return Ciphertext{}, ccerrors.New(ccerrors.GroupMismatch, "gamma and phi must share a Gq group")
	}
	return Ciphertext{gamma: gamma, phi: phi}, nil
}

// Gamma returns the gamma component.
func (c Ciphertext) Gamma() mathx.GqElement { return c.gamma }

// Phi returns the phi vector.
func (c Ciphertext) Phi() mathx.GroupVector[mathx.GqElement] { return c.phi }

// Len returns ℓ = len(phi).
func (c Ciphertext) Len() int { return c.phi.Len() }

// ElementSize lets Ciphertext satisfy mathx.Sized, so vectors of
// ciphertexts (spec §3: ShuffleStatement's C, C') enforce a uniform
// ℓ the same way GroupVector enforces uniform element-size elsewhere.
func (c Ciphertext) ElementSize() int { return c.phi.Len() }

// Group returns the shared Gq group of gamma and phi.
func (c Ciphertext) Group() *mathx.GqGroup { return c.gamma.Group() }
