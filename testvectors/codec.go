package testvectors

import (
	"encoding/hex"
	"encoding/json"
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/mathx"
)

// Decode parses a test-vector JSON document.
func Decode(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, ccerrors.New(ccerrors.InvalidInput, "invalid test-vector JSON: %v", err)
	}
	return f, nil
}

// Encode serialises a test-vector document.
func Encode(f File) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

func parseBigHex(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, ccerrors.New(ccerrors.InvalidInput, "invalid hex integer %q", s)
	}
	return v, nil
}

func formatBigHex(v *big.Int) string {
	return hex.EncodeToString(v.Bytes())
}

// GqGroup builds the mathx.GqGroup the context describes.
func (c Context) GqGroup() (*mathx.GqGroup, error) {
	p, err := parseBigHex(c.P)
	if err != nil {
		return nil, err
	}
	q, err := parseBigHex(c.Q)
	if err != nil {
		return nil, err
	}
	g, err := parseBigHex(c.G)
	if err != nil {
		return nil, err
	}
	return mathx.NewGqGroup(p, q, g)
}

// GqElementFromHex decodes a single GqElement in group.
func GqElementFromHex(group *mathx.GqGroup, s string) (mathx.GqElement, error) {
	v, err := parseBigHex(s)
	if err != nil {
		return mathx.GqElement{}, err
	}
	return group.GenerateElement(v)
}

// GqElementToHex encodes a GqElement.
func GqElementToHex(e mathx.GqElement) string {
	return formatBigHex(e.Value())
}

// ZqElementFromHex decodes a single ZqElement in group.
func ZqElementFromHex(group *mathx.ZqGroup, s string) (mathx.ZqElement, error) {
	v, err := parseBigHex(s)
	if err != nil {
		return mathx.ZqElement{}, err
	}
	return group.GenerateElement(v)
}

// ZqElementToHex encodes a ZqElement.
func ZqElementToHex(e mathx.ZqElement) string {
	return formatBigHex(e.Value())
}

// PublicKey builds the elgamal.PublicKey the context describes.
func (c Context) PublicKey(group *mathx.GqGroup) (elgamal.PublicKey, error) {
	elems := make([]mathx.GqElement, len(c.PublicKeyHex))
	for i, s := range c.PublicKeyHex {
		e, err := GqElementFromHex(group, s)
		if err != nil {
			return elgamal.PublicKey{}, err
		}
		elems[i] = e
	}
	vec, err := mathx.NewGroupVector(elems)
	if err != nil {
		return elgamal.PublicKey{}, err
	}
	return elgamal.NewPublicKey(vec)
}

// Key builds the commitment.Key the context describes.
func (c Context) Key(group *mathx.GqGroup) (commitment.Key, error) {
	if c.CommitmentKey == nil {
		return commitment.Key{}, ccerrors.New(ccerrors.InvalidInput, "context has no commitment key")
	}
	h, err := GqElementFromHex(group, c.CommitmentKey.H)
	if err != nil {
		return commitment.Key{}, err
	}
	gs := make([]mathx.GqElement, len(c.CommitmentKey.Gs))
	for i, s := range c.CommitmentKey.Gs {
		e, err := GqElementFromHex(group, s)
		if err != nil {
			return commitment.Key{}, err
		}
		gs[i] = e
	}
	gsVec, err := mathx.NewGroupVector(gs)
	if err != nil {
		return commitment.Key{}, err
	}
	return commitment.NewKey(h, gsVec)
}

// CiphertextToJSON encodes a ciphertext for embedding in a raw
// statement/argument payload.
func CiphertextToJSON(c elgamal.Ciphertext) CiphertextJSON {
	phi := make([]string, c.Len())
	for i := 0; i < c.Len(); i++ {
		p, _ := c.Phi().Get(i)
		phi[i] = GqElementToHex(p)
	}
	return CiphertextJSON{Gamma: GqElementToHex(c.Gamma()), Phi: phi}
}

// CiphertextFromJSON decodes a ciphertext in group.
func CiphertextFromJSON(group *mathx.GqGroup, c CiphertextJSON) (elgamal.Ciphertext, error) {
	gamma, err := GqElementFromHex(group, c.Gamma)
	if err != nil {
		return elgamal.Ciphertext{}, err
	}
	phi := make([]mathx.GqElement, len(c.Phi))
	for i, s := range c.Phi {
		e, err := GqElementFromHex(group, s)
		if err != nil {
			return elgamal.Ciphertext{}, err
		}
		phi[i] = e
	}
	phiVec, err := mathx.NewGroupVector(phi)
	if err != nil {
		return elgamal.Ciphertext{}, err
	}
	return elgamal.NewCiphertext(gamma, phiVec)
}
