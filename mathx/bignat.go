// Package mathx implements the arbitrary-precision modular arithmetic
// and group algebra the rest of crypto-primitives is built on: plain
// nonnegative-integer operations (BigNat), the quadratic-residue
// subgroup Gq of (Z/pZ)* for a safe prime p = 2q+1, its exponent group
// Zq, and homogeneous vector/matrix containers over either.
package mathx

import (
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
)

// BigNat is an arbitrary-precision nonnegative integer. It exists to
// give the rest of the package one place that owns byte<->integer
// conversion and nonnegativity, instead of scattering big.Int nil- and
// sign-checks across every call site.
type BigNat struct {
	v *big.Int
}

// NewBigNat wraps n, rejecting negative values.
func NewBigNat(n *big.Int) (BigNat, error) {
	if n == nil || n.Sign() < 0 {
		return BigNat{}, ccerrors.New(ccerrors.InvalidInput, "value must be non-negative, got %v", n)
	}
	return BigNat{v: new(big.Int).Set(n)}, nil
}

// NewBigNatFromInt64 wraps a non-negative int64.
func NewBigNatFromInt64(n int64) (BigNat, error) {
	return NewBigNat(big.NewInt(n))
}

// BigNatFromBytes reconstructs the integer a minimal big-endian byte
// array encodes (spec §6: no leading zero byte unless the value is 0).
func BigNatFromBytes(b []byte) BigNat {
	return BigNat{v: new(big.Int).SetBytes(b)}
}

// Int returns the underlying big.Int. The caller must not mutate it.
func (b BigNat) Int() *big.Int { return b.v }

// Sign is 0 for the zero value, 1 otherwise (BigNat is never negative).
func (b BigNat) Sign() int {
	if b.v == nil {
		return 0
	}
	return b.v.Sign()
}

// Cmp compares two BigNats the way big.Int.Cmp does.
func (b BigNat) Cmp(other BigNat) int { return b.v.Cmp(other.v) }

// BitLen returns the number of bits required to represent b, 0 for zero.
func (b BigNat) BitLen() int { return b.v.BitLen() }

// Bytes returns the minimum-length big-endian encoding of b: no
// leading zero byte, except that zero itself encodes as a single
// 0x00 byte (spec §6). This is the "fast" implementation: a
// pre-sized buffer with no reallocation. bigIntToBytesMinimal below
// is the reference implementation kept to prove the two agree
// (spec §9 Open Question).
func (b BigNat) Bytes() []byte {
	return bigIntToBytesFast(b.v)
}

// bigIntToBytesFast pre-sizes its output buffer from BitLen and never
// reallocates; big.Int.Bytes() already omits leading zero bytes for
// nonzero values, so the only special case is the zero value itself.
func bigIntToBytesFast(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0x00}
	}
	nBytes := (n.BitLen() + 7) / 8
	out := make([]byte, nBytes)
	n.FillBytes(out)
	return out
}

// bigIntToBytesMinimal is the reference implementation: it builds on
// big.Int.Bytes(), which already returns the minimal big-endian
// encoding for nonzero values (no leading zero byte), and special-
// cases zero into a single 0x00 byte, exactly as spec §6 describes.
func bigIntToBytesMinimal(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0x00}
	}
	return n.Bytes()
}
