package mathx

import (
	"github.com/streetU/crypto-primitives/ccerrors"
)

// Sized is implemented by any element type that has a notion of
// "belongs to group G with element-size k", the capability trait
// spec §9 asks GroupVector/GroupMatrix entries to satisfy instead of
// an inheritance hierarchy. GqElement and ZqElement both trivially
// have element-size 1; ElGamal ciphertexts have element-size ℓ.
type Sized interface {
	ElementSize() int
}

// GqElements and ZqElements satisfy Sized with a constant size of 1,
// letting GroupVector[GqElement]/[ZqElement] share the same
// uniform-size invariant machinery as vectors of ciphertexts.
func (GqElement) ElementSize() int { return 1 }
func (ZqElement) ElementSize() int { return 1 }

// GroupVector is a finite, non-negative-length sequence of Sized
// values that all share an element-size. It is immutable: every
// mutating-looking operation returns a new vector.
type GroupVector[T Sized] struct {
	elems []T
	size  int
}

// NewGroupVector validates that every element shares the same
// element-size and wraps them. An empty vector is permitted; callers
// that require non-emptiness check Len() themselves (spec §3: "non-
// emptiness required only where stated").
func NewGroupVector[T Sized](elems []T) (GroupVector[T], error) {
	cp := make([]T, len(elems))
	copy(cp, elems)
	size := 0
	if len(cp) > 0 {
		size = cp[0].ElementSize()
		for _, e := range cp[1:] {
			if e.ElementSize() != size {
				return GroupVector[T]{}, ccerrors.New(ccerrors.ShapeError, "all vector entries must share element-size %d", size)
			}
		}
	}
	return GroupVector[T]{elems: cp, size: size}, nil
}

// Len returns the number of entries.
func (v GroupVector[T]) Len() int { return len(v.elems) }

// ElementSize returns the shared per-entry size, or 0 for an empty vector.
func (v GroupVector[T]) ElementSize() int { return v.size }

// Get returns the i-th entry, range-checked.
func (v GroupVector[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(v.elems) {
		return zero, ccerrors.New(ccerrors.InvalidInput, "index %d out of range [0,%d)", i, len(v.elems))
	}
	return v.elems[i], nil
}

// Slice returns the sub-vector [from, to).
func (v GroupVector[T]) Slice(from, to int) (GroupVector[T], error) {
	if from < 0 || to > len(v.elems) || from > to {
		return GroupVector[T]{}, ccerrors.New(ccerrors.InvalidInput, "invalid slice bounds [%d,%d) of length %d", from, to, len(v.elems))
	}
	return NewGroupVector(v.elems[from:to])
}

// Append returns a new vector with e appended, enforcing the shared
// element-size invariant if the receiver is non-empty.
func (v GroupVector[T]) Append(e T) (GroupVector[T], error) {
	if v.Len() > 0 && e.ElementSize() != v.size {
		return GroupVector[T]{}, ccerrors.New(ccerrors.ShapeError, "appended element has size %d, vector has size %d", e.ElementSize(), v.size)
	}
	out := make([]T, 0, len(v.elems)+1)
	out = append(out, v.elems...)
	out = append(out, e)
	return NewGroupVector(out)
}

// Prepend returns a new vector with e prepended.
func (v GroupVector[T]) Prepend(e T) (GroupVector[T], error) {
	if v.Len() > 0 && e.ElementSize() != v.size {
		return GroupVector[T]{}, ccerrors.New(ccerrors.ShapeError, "prepended element has size %d, vector has size %d", e.ElementSize(), v.size)
	}
	out := make([]T, 0, len(v.elems)+1)
	out = append(out, e)
	out = append(out, v.elems...)
	return NewGroupVector(out)
}

// ToSlice returns a defensive copy of the underlying entries.
func (v GroupVector[T]) ToSlice() []T {
	out := make([]T, len(v.elems))
	copy(out, v.elems)
	return out
}
