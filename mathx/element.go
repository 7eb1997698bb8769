package mathx

import (
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
)

// GqElement is a member of a GqGroup: an integer in [1, p) that is a
// quadratic residue mod p. Values are only ever produced by
// GqGroup.GenerateElement or by operations on existing elements, so
// membership is an invariant, not something callers re-check.
type GqElement struct {
	group *GqGroup
	v     *big.Int
}

// Group returns the element's carrier group.
func (e GqElement) Group() *GqGroup { return e.group }

// Value returns a copy of the underlying integer.
func (e GqElement) Value() *big.Int { return new(big.Int).Set(e.v) }

// Bytes returns the minimal big-endian encoding of the element's value.
func (e GqElement) Bytes() []byte { return bigIntToBytesFast(e.v) }

// Equal reports value and group equality.
func (e GqElement) Equal(other GqElement) bool {
	return e.group.Equal(other.group) && e.v.Cmp(other.v) == 0
}

func (e GqElement) requireSameGroup(other GqElement) error {
	if !e.group.Equal(other.group) {
		return ccerrors.New(ccerrors.GroupMismatch, "operands belong to different Gq groups")
	}
	return nil
}

// Multiply returns e*other mod p.
func (e GqElement) Multiply(other GqElement) (GqElement, error) {
	if err := e.requireSameGroup(other); err != nil {
		return GqElement{}, err
	}
	r := new(big.Int).Mod(new(big.Int).Mul(e.v, other.v), e.group.p)
	return GqElement{group: e.group, v: r}, nil
}

// Exponentiate returns e^x mod p for x in the Zq sharing e's group order.
func (e GqElement) Exponentiate(x ZqElement) (GqElement, error) {
	if e.group.q.Cmp(x.group.q) != 0 {
		return GqElement{}, ccerrors.New(ccerrors.GroupMismatch, "exponent is not in the matching Zq")
	}
	r := new(big.Int).Exp(e.v, x.v, e.group.p)
	return GqElement{group: e.group, v: r}, nil
}

// Invert returns e^-1 mod p.
func (e GqElement) Invert() GqElement {
	pMinus2 := new(big.Int).Sub(e.group.p, big.NewInt(2))
	r := new(big.Int).Exp(e.v, pMinus2, e.group.p)
	return GqElement{group: e.group, v: r}
}

// IsIdentity reports whether e is the group identity (1).
func (e GqElement) IsIdentity() bool { return e.v.Cmp(big.NewInt(1)) == 0 }

// MultiplyAll folds Multiply over a non-empty slice of elements
// sharing a common group.
func MultiplyAll(elems []GqElement) (GqElement, error) {
	if len(elems) == 0 {
		return GqElement{}, ccerrors.New(ccerrors.InvalidInput, "cannot multiply an empty element list")
	}
	acc := elems[0]
	var err error
	for _, e := range elems[1:] {
		acc, err = acc.Multiply(e)
		if err != nil {
			return GqElement{}, err
		}
	}
	return acc, nil
}

// ZqElement is a member of a ZqGroup: an integer in [0, q).
type ZqElement struct {
	group *ZqGroup
	v     *big.Int
}

// Group returns the element's carrier group.
func (e ZqElement) Group() *ZqGroup { return e.group }

// Value returns a copy of the underlying integer.
func (e ZqElement) Value() *big.Int { return new(big.Int).Set(e.v) }

// Bytes returns the minimal big-endian encoding of the element's value.
func (e ZqElement) Bytes() []byte { return bigIntToBytesFast(e.v) }

// Equal reports value and group equality.
func (e ZqElement) Equal(other ZqElement) bool {
	return e.group.Equal(other.group) && e.v.Cmp(other.v) == 0
}

func (e ZqElement) requireSameGroup(other ZqElement) error {
	if !e.group.Equal(other.group) {
		return ccerrors.New(ccerrors.GroupMismatch, "operands belong to different Zq groups")
	}
	return nil
}

// Add returns (e+other) mod q.
func (e ZqElement) Add(other ZqElement) (ZqElement, error) {
	if err := e.requireSameGroup(other); err != nil {
		return ZqElement{}, err
	}
	return mustZq(e.group, new(big.Int).Add(e.v, other.v)), nil
}

// Subtract returns (e-other) mod q, normalised into [0, q).
func (e ZqElement) Subtract(other ZqElement) (ZqElement, error) {
	if err := e.requireSameGroup(other); err != nil {
		return ZqElement{}, err
	}
	return mustZq(e.group, new(big.Int).Sub(e.v, other.v)), nil
}

// Negate returns (-e) mod q, normalised into [0, q).
func (e ZqElement) Negate() ZqElement {
	return mustZq(e.group, new(big.Int).Neg(e.v))
}

// Multiply returns (e*other) mod q.
func (e ZqElement) Multiply(other ZqElement) (ZqElement, error) {
	if err := e.requireSameGroup(other); err != nil {
		return ZqElement{}, err
	}
	return mustZq(e.group, new(big.Int).Mul(e.v, other.v)), nil
}

// Invert returns e^-1 mod q. Fails with InvalidInput if e is zero.
func (e ZqElement) Invert() (ZqElement, error) {
	if e.v.Sign() == 0 {
		return ZqElement{}, ccerrors.New(ccerrors.InvalidInput, "zero has no multiplicative inverse mod q")
	}
	r := new(big.Int).ModInverse(e.v, e.group.q)
	if r == nil {
		return ZqElement{}, ccerrors.New(ccerrors.InvalidInput, "value is not invertible mod q")
	}
	return ZqElement{group: e.group, v: r}, nil
}

// Exp returns e^k mod q for a plain non-negative exponent k (used for
// the polynomial powers x^i inside the zero/product arguments, which
// are themselves Zq elements but iterated with int indices).
func (e ZqElement) Exp(k int64) ZqElement {
	r := new(big.Int).Exp(e.v, big.NewInt(k), e.group.q)
	return ZqElement{group: e.group, v: r}
}

// IsZero reports whether e is the additive identity.
func (e ZqElement) IsZero() bool { return e.v.Sign() == 0 }

func mustZq(group *ZqGroup, v *big.Int) ZqElement {
	r := new(big.Int).Mod(v, group.q)
	return ZqElement{group: group, v: r}
}

// SumZq folds Add over a slice of ZqElements sharing a common group,
// starting from the group's zero element if the slice is empty.
func SumZq(group *ZqGroup, elems []ZqElement) (ZqElement, error) {
	acc := group.ZeroElement()
	var err error
	for _, e := range elems {
		acc, err = acc.Add(e)
		if err != nil {
			return ZqElement{}, err
		}
	}
	return acc, nil
}
