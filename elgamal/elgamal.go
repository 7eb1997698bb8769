package elgamal

import (
	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/randomness"
)

// GenKeyPair samples sk = (x_1..x_k) uniformly from [0,q) and derives
// pk = (g^x_1 .. g^x_k) (spec §4.3).
func GenKeyPair(group *mathx.GqGroup, k int, rnd randomness.Provider) (KeyPair, error) {
	if k <= 0 {
		return KeyPair{}, ccerrors.New(ccerrors.InvalidInput, "k must be positive, got %d", k)
	}
	zq := group.ToZqGroup()
	skElems := make([]mathx.ZqElement, k)
	pkElems := make([]mathx.GqElement, k)
	gen := group.GeneratorElement()
	for i := 0; i < k; i++ {
		x, err := randomness.GenZqElement(rnd, zq)
		if err != nil {
			return KeyPair{}, err
		}
		pub, err := gen.Exponentiate(x)
		if err != nil {
			return KeyPair{}, err
		}
		skElems[i] = x
		pkElems[i] = pub
	}
	skVec, err := mathx.NewGroupVector(skElems)
	if err != nil {
		return KeyPair{}, err
	}
	pkVec, err := mathx.NewGroupVector(pkElems)
	if err != nil {
		return KeyPair{}, err
	}
	sk, err := NewPrivateKey(skVec)
	if err != nil {
		return KeyPair{}, err
	}
	pk, err := NewPublicKey(pkVec)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{SecretKey: sk, PublicKey: pk}, nil
}

// Encrypt returns (g^r, m_i * pk_i^r for i=1..len(message)) (spec
// §4.3). The public key may be longer than the message; only its
// first len(message) components are used.
func Encrypt(message Message, r mathx.ZqElement, pk PublicKey) (Ciphertext, error) {
	if message.Len() > pk.Len() {
		return Ciphertext{}, ccerrors.New(ccerrors.ShapeError, "message length %d exceeds public key length %d", message.Len(), pk.Len())
	}
	first, _ := pk.Get(0)
	group := first.Group()
	gen := group.GeneratorElement()
	gamma, err := gen.Exponentiate(r)
	if err != nil {
		return Ciphertext{}, err
	}
	phi := make([]mathx.GqElement, message.Len())
	for i := 0; i < message.Len(); i++ {
		m, err := message.Get(i)
		if err != nil {
			return Ciphertext{}, err
		}
		pki, err := pk.Get(i)
		if err != nil {
			return Ciphertext{}, err
		}
		pkiR, err := pki.Exponentiate(r)
		if err != nil {
			return Ciphertext{}, err
		}
		val, err := m.Multiply(pkiR)
		if err != nil {
			return Ciphertext{}, err
		}
		phi[i] = val
	}
	phiVec, err := mathx.NewGroupVector(phi)
	if err != nil {
		return Ciphertext{}, err
	}
	return NewCiphertext(gamma, phiVec)
}

// Decrypt returns m_i = phi_i * gamma^-sk_i for i=1..len(ciphertext)
// (spec §4.3). sk may be longer than the ciphertext.
func Decrypt(c Ciphertext, sk PrivateKey) (Message, error) {
	if c.Len() > sk.Len() {
		return Message{}, ccerrors.New(ccerrors.ShapeError, "ciphertext length %d exceeds private key length %d", c.Len(), sk.Len())
	}
	out := make([]mathx.GqElement, c.Len())
	for i := 0; i < c.Len(); i++ {
		phi, err := c.Phi().Get(i)
		if err != nil {
			return Message{}, err
		}
		x, err := sk.Get(i)
		if err != nil {
			return Message{}, err
		}
		negX := x.Negate()
		gammaInvX, err := c.Gamma().Exponentiate(negX)
		if err != nil {
			return Message{}, err
		}
		m, err := phi.Multiply(gammaInvX)
		if err != nil {
			return Message{}, err
		}
		out[i] = m
	}
	v, err := mathx.NewGroupVector(out)
	if err != nil {
		return Message{}, err
	}
	return NewMessage(v)
}

// Multiply returns the componentwise product of two ciphertexts of
// equal length over the same group.
func Multiply(a, b Ciphertext) (Ciphertext, error) {
	if a.Len() != b.Len() {
		return Ciphertext{}, ccerrors.New(ccerrors.ShapeError, "ciphertexts have different lengths %d and %d", a.Len(), b.Len())
	}
	gamma, err := a.Gamma().Multiply(b.Gamma())
	if err != nil {
		return Ciphertext{}, err
	}
	phi := make([]mathx.GqElement, a.Len())
	for i := 0; i < a.Len(); i++ {
		ai, _ := a.Phi().Get(i)
		bi, _ := b.Phi().Get(i)
		v, err := ai.Multiply(bi)
		if err != nil {
			return Ciphertext{}, err
		}
		phi[i] = v
	}
	phiVec, err := mathx.NewGroupVector(phi)
	if err != nil {
		return Ciphertext{}, err
	}
	return NewCiphertext(gamma, phiVec)
}

// Exponentiate returns c raised componentwise to the exponent a.
func Exponentiate(c Ciphertext, a mathx.ZqElement) (Ciphertext, error) {
	gamma, err := c.Gamma().Exponentiate(a)
	if err != nil {
		return Ciphertext{}, err
	}
	phi := make([]mathx.GqElement, c.Len())
	for i := 0; i < c.Len(); i++ {
		pi, _ := c.Phi().Get(i)
		v, err := pi.Exponentiate(a)
		if err != nil {
			return Ciphertext{}, err
		}
		phi[i] = v
	}
	phiVec, err := mathx.NewGroupVector(phi)
	if err != nil {
		return Ciphertext{}, err
	}
	return NewCiphertext(gamma, phiVec)
}

// ReEncrypt returns Enc_pk(ones(l), r) * c, the re-encryption of c by
// exponent r under pk (spec §4.3/§4.6.6): this is the identity the
// shuffle witness must satisfy for every re-encrypted, permuted entry.
func ReEncrypt(c Ciphertext, r mathx.ZqElement, pk PublicKey) (Ciphertext, error) {
	ones, err := Ones(c.Group(), c.Len())
	if err != nil {
		return Ciphertext{}, err
	}
	delta, err := Encrypt(ones, r, pk)
	if err != nil {
		return Ciphertext{}, err
	}
	return Multiply(delta, c)
}
