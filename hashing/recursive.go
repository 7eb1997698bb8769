package hashing

import (
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
)

// Hashable is the sum type the recursive hash accepts: a byte string,
// a text string, a non-negative integer, or a list of Hashables
// (spec §4.2). The only implementations are the unexported wrapper
// types below, returned by the Bytes/Text/Int/List constructors, so
// the sum type is closed.
type Hashable interface {
	isHashable()
}

type bytesValue struct{ b []byte }
type textValue struct{ s string }
type intValue struct{ n *big.Int }
type listValue struct{ items []Hashable }

func (bytesValue) isHashable() {}
func (textValue) isHashable()  {}
func (intValue) isHashable()   {}
func (listValue) isHashable()  {}

// Bytes wraps a byte string.
func Bytes(b []byte) Hashable { return bytesValue{b: b} }

// Text wraps a UTF-8 string.
func Text(s string) Hashable { return textValue{s: s} }

// Int wraps a non-negative integer. Passing a negative value produces
// a Hashable that RecursiveHash rejects with InvalidInput.
func Int(n *big.Int) Hashable { return intValue{n: n} }

// Int64 is a convenience wrapper around Int for small non-negative values.
func Int64(n int64) Hashable { return intValue{n: big.NewInt(n)} }

// List wraps a (non-empty) list of Hashables.
func List(items ...Hashable) Hashable { return listValue{items: items} }

// RecursiveHash implements the domain-separated recursion of spec
// §4.2:
//
//	byte-string b  -> H(b)
//	text b         -> H(utf8(b))
//	integer n >= 0 -> H(minByteArray(n))
//	list of len 1  -> recursiveHash(list[0])
//	list of len >=2-> H(recursiveHash(list[0]) || ... || recursiveHash(list[k-1]))
//
// Empty lists are rejected with InvalidInput. Multiple top-level
// values passed to Transcript (see transcript.go) are wrapped in a list
// before reaching here.
func RecursiveHash(h Hash, value Hashable) ([]byte, error) {
	switch v := value.(type) {
	case bytesValue:
		return h.Sum(v.b), nil
	case textValue:
		return h.Sum([]byte(v.s)), nil
	case intValue:
		if v.n == nil || v.n.Sign() < 0 {
			return nil, ccerrors.New(ccerrors.InvalidInput, "cannot hash a negative integer: %v", v.n)
		}
		return h.Sum(minByteArray(v.n)), nil
	case listValue:
		if len(v.items) == 0 {
			return nil, ccerrors.New(ccerrors.InvalidInput, "cannot hash an empty list")
		}
		if len(v.items) == 1 {
			return RecursiveHash(h, v.items[0])
		}
		digests := make([][]byte, len(v.items))
		for i, item := range v.items {
			d, err := RecursiveHash(h, item)
			if err != nil {
				return nil, err
			}
			digests[i] = d
		}
		return h.Sum(digests...), nil
	default:
		return nil, ccerrors.New(ccerrors.InvalidInput, "unsupported Hashable implementation %T", value)
	}
}

// minByteArray returns the minimum-length big-endian encoding of n:
// no leading zero byte, a single 0x00 byte if n is zero.
func minByteArray(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0x00}
	}
	return n.Bytes()
}
