package mathx

import (
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
)

// GqGroup is the quadratic-residue subgroup of order q of (Z/pZ)*,
// for a safe prime p = 2q+1, carrying a fixed generator g. It is an
// immutable value object: two GqGroups with equal (p, q, g) are
// interchangeable.
type GqGroup struct {
	p, q, g *big.Int
}

// NewGqGroup validates p = 2q+1 with p, q prime and 1 < g < p, g a
// quadratic residue mod p, g != 1, then returns the group they define.
//
// Primality of p and q is not re-derived here (that is expensive and
// callers are expected to supply vetted, standardized parameters); it
// is checked with a probabilistic Miller-Rabin test at a safety margin
// appropriate for constructing a value object once, not in a hot loop.
func NewGqGroup(p, q, g *big.Int) (*GqGroup, error) {
	if p == nil || q == nil || g == nil {
		return nil, ccerrors.New(ccerrors.InvalidInput, "p, q, g must be non-nil")
	}
	two := big.NewInt(2)
	want := new(big.Int).Add(new(big.Int).Mul(two, q), big.NewInt(1))
	if want.Cmp(p) != 0 {
		return nil, ccerrors.New(ccerrors.InvalidInput, "p must equal 2q+1, got p=%v q=%v", p, q)
	}
	if !p.ProbablyPrime(40) || !q.ProbablyPrime(40) {
		return nil, ccerrors.New(ccerrors.InvalidInput, "p and q must both be prime")
	}
	grp := &GqGroup{p: new(big.Int).Set(p), q: new(big.Int).Set(q), g: new(big.Int).Set(g)}
	if !grp.isMember(g) || g.Cmp(big.NewInt(1)) == 0 {
		return nil, ccerrors.New(ccerrors.InvalidInput, "g=%v is not a valid generator of Gq", g)
	}
	return grp, nil
}

// P returns the safe prime modulus.
func (g *GqGroup) P() *big.Int { return new(big.Int).Set(g.p) }

// Q returns the subgroup order.
func (g *GqGroup) Q() *big.Int { return new(big.Int).Set(g.q) }

// G returns the generator.
func (g *GqGroup) G() *big.Int { return new(big.Int).Set(g.g) }

// Equal reports whether two groups share the same (p, q, g) triple.
func (g *GqGroup) Equal(other *GqGroup) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.p.Cmp(other.p) == 0 && g.q.Cmp(other.q) == 0 && g.g.Cmp(other.g) == 0
}

// isMember reports whether v satisfies 1 <= v < p and v^q == 1 mod p,
// the quadratic-residue membership test of spec §3.
func (g *GqGroup) isMember(v *big.Int) bool {
	if v.Sign() <= 0 || v.Cmp(g.p) >= 0 {
		return false
	}
	r := new(big.Int).Exp(v, g.q, g.p)
	return r.Cmp(big.NewInt(1)) == 0
}

// GenerateElement validates and wraps v as a GqElement of g.
func (g *GqGroup) GenerateElement(v *big.Int) (GqElement, error) {
	if v == nil || !g.isMember(v) {
		return GqElement{}, ccerrors.New(ccerrors.InvalidInput, "%v is not a member of Gq", v)
	}
	return GqElement{group: g, v: new(big.Int).Set(v)}, nil
}

// Identity returns the group identity element (1).
func (g *GqGroup) Identity() GqElement {
	e, _ := g.GenerateElement(big.NewInt(1))
	return e
}

// GeneratorElement returns g wrapped as a GqElement.
func (g *GqGroup) GeneratorElement() GqElement {
	e, _ := g.GenerateElement(g.g)
	return e
}

// ToZqGroup returns the ZqGroup sharing this Gq's order q.
func (g *GqGroup) ToZqGroup() *ZqGroup {
	return &ZqGroup{q: new(big.Int).Set(g.q)}
}

// ZqGroup is the additive/multiplicative group of integers modulo q.
type ZqGroup struct {
	q *big.Int
}

// NewZqGroup wraps a prime modulus q.
func NewZqGroup(q *big.Int) (*ZqGroup, error) {
	if q == nil || q.Sign() <= 0 {
		return nil, ccerrors.New(ccerrors.InvalidInput, "q must be positive, got %v", q)
	}
	return &ZqGroup{q: new(big.Int).Set(q)}, nil
}

// Q returns the modulus.
func (z *ZqGroup) Q() *big.Int { return new(big.Int).Set(z.q) }

// Equal reports whether two ZqGroups share the same modulus.
func (z *ZqGroup) Equal(other *ZqGroup) bool {
	if z == nil || other == nil {
		return z == other
	}
	return z.q.Cmp(other.q) == 0
}

// GenerateElement reduces v mod q and wraps it. Unlike Gq membership,
// any integer is valid input: it is normalised into [0, q).
func (z *ZqGroup) GenerateElement(v *big.Int) (ZqElement, error) {
	if v == nil {
		return ZqElement{}, ccerrors.New(ccerrors.InvalidInput, "value must be non-nil")
	}
	r := new(big.Int).Mod(v, z.q)
	return ZqElement{group: z, v: r}, nil
}

// ZeroElement returns the additive identity.
func (z *ZqGroup) ZeroElement() ZqElement {
	e, _ := z.GenerateElement(big.NewInt(0))
	return e
}

// OneElement returns the multiplicative identity.
func (z *ZqGroup) OneElement() ZqElement {
	e, _ := z.GenerateElement(big.NewInt(1))
	return e
}
