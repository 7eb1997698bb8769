// Package permutation implements the uniform random bijection service
// of spec §4.5, a Fisher-Yates shuffle driven by an injected
// randomness.Provider.
package permutation

import (
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/randomness"
)

func bigFromInt(n int) *big.Int { return big.NewInt(int64(n)) }

// Permutation is a bijection [0,N) -> [0,N), stored as an explicit
// value mapping.
type Permutation struct {
	mapping []int
}

// New wraps an explicit mapping without validating bijectivity; used
// internally by Gen and by tests constructing a fixed permutation for
// test vectors.
func New(mapping []int) Permutation {
	cp := make([]int, len(mapping))
	copy(cp, mapping)
	return Permutation{mapping: cp}
}

// Size returns N.
func (p Permutation) Size() int { return len(p.mapping) }

// Get returns the image of i, range-checked.
func (p Permutation) Get(i int) (int, error) {
	if i < 0 || i >= len(p.mapping) {
		return 0, ccerrors.New(ccerrors.InvalidInput, "index %d out of range [0,%d)", i, len(p.mapping))
	}
	return p.mapping[i], nil
}

// Gen returns a uniformly random permutation of [0,N) via Fisher-
// Yates, grounded on the teacher's shuffle/shuffle.go Shuffle()
// in-place swap loop, here driven by an injected randomness.Provider
// instead of a raw cipher.Stream.
func Gen(n int, rnd randomness.Provider) (Permutation, error) {
	if n <= 0 {
		return Permutation{}, ccerrors.New(ccerrors.InvalidInput, "N must be positive, got %d", n)
	}
	mapping := make([]int, n)
	for i := range mapping {
		mapping[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := rnd.GenInteger(bigFromInt(i + 1))
		if err != nil {
			return Permutation{}, err
		}
		jj := int(j.Int64())
		mapping[i], mapping[jj] = mapping[jj], mapping[i]
	}
	return New(mapping), nil
}
