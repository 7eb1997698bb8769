// Package randomness implements the injected Randomness and KDF
// capabilities of spec §6: uniform integers and byte strings, HKDF-
// Expand, and KDF-to-Zq with rejection sampling. The core library
// never reads an OS entropy source directly; every sample is drawn
// through a Provider so tests can replay a fixed sample sequence and
// reproduce test vectors bit-exactly (spec §5).
package randomness

import (
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/mathx"
)

// Provider is the Randomness capability of spec §6. Implementations
// must be uniform over [0, upperExclusive) and must draw exactly one
// sample per logical request — callers rely on the "pulls the minimum
// number of samples... never re-reads after a sample has been
// consumed" contract (spec §5) to keep deterministic fixtures in
// lock-step with production code.
type Provider interface {
	// GenInteger returns a value uniform in [0, upperExclusive).
	GenInteger(upperExclusive *big.Int) (*big.Int, error)
	// GenBytes returns n uniformly random bytes.
	GenBytes(n int) ([]byte, error)
}

// GenZqElement draws a uniform exponent in Zq.
func GenZqElement(p Provider, group *mathx.ZqGroup) (mathx.ZqElement, error) {
	n, err := p.GenInteger(group.Q())
	if err != nil {
		return mathx.ZqElement{}, err
	}
	return group.GenerateElement(n)
}

// GenZqVector draws length independent uniform exponents in Zq, one
// Provider sample each, in order.
func GenZqVector(p Provider, group *mathx.ZqGroup, length int) (mathx.GroupVector[mathx.ZqElement], error) {
	if length < 0 {
		return mathx.GroupVector[mathx.ZqElement]{}, ccerrors.New(ccerrors.InvalidInput, "length must be non-negative, got %d", length)
	}
	elems := make([]mathx.ZqElement, length)
	for i := 0; i < length; i++ {
		e, err := GenZqElement(p, group)
		if err != nil {
			return mathx.GroupVector[mathx.ZqElement]{}, err
		}
		elems[i] = e
	}
	return mathx.NewGroupVector(elems)
}
