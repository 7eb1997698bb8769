// Package mixnet implements the Bayer-Groth zero-knowledge shuffle
// argument and its dependent sub-arguments (spec §4.6): single-value
// product, Hadamard, zero, product, and multi-exponentiation,
// composing into the apex shuffle argument that proves a batch of
// ElGamal ciphertexts was faithfully permuted and re-encrypted
// without revealing the permutation.
package mixnet

import (
	"math/big"

	"github.com/rs/zerolog/log"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/mathx"
)

// starMap computes <a,b>_y = sum_i a_i*b_i*y^i (spec §9 glossary),
// the bilinear form every sub-argument in this package reduces its
// relation to.
func starMap(a, b mathx.GroupVector[mathx.ZqElement], y mathx.ZqElement) (mathx.ZqElement, error) {
	if a.Len() != b.Len() {
		return mathx.ZqElement{}, ccerrors.New(ccerrors.ShapeError, "star-map operands have lengths %d and %d", a.Len(), b.Len())
	}
	zq := y.Group()
	acc := zq.ZeroElement()
	for i := 0; i < a.Len(); i++ {
		ai, _ := a.Get(i)
		bi, _ := b.Get(i)
		term, err := ai.Multiply(bi)
		if err != nil {
			return mathx.ZqElement{}, err
		}
		term, err = term.Multiply(y.Exp(int64(i)))
		if err != nil {
			return mathx.ZqElement{}, err
		}
		acc, err = acc.Add(term)
		if err != nil {
			return mathx.ZqElement{}, err
		}
	}
	return acc, nil
}

func constVector(zq *mathx.ZqGroup, value int64, n int) mathx.GroupVector[mathx.ZqElement] {
	elems := make([]mathx.ZqElement, n)
	v, _ := zq.GenerateElement(big.NewInt(value))
	for i := range elems {
		elems[i] = v
	}
	vec, _ := mathx.NewGroupVector(elems)
	return vec
}

func scaleVector(v mathx.GroupVector[mathx.ZqElement], x mathx.ZqElement) (mathx.GroupVector[mathx.ZqElement], error) {
	out := make([]mathx.ZqElement, v.Len())
	for i := 0; i < v.Len(); i++ {
		vi, _ := v.Get(i)
		scaled, err := vi.Multiply(x)
		if err != nil {
			return mathx.GroupVector[mathx.ZqElement]{}, err
		}
		out[i] = scaled
	}
	return mathx.NewGroupVector(out)
}

func addVectors(a, b mathx.GroupVector[mathx.ZqElement]) (mathx.GroupVector[mathx.ZqElement], error) {
	if a.Len() != b.Len() {
		return mathx.GroupVector[mathx.ZqElement]{}, ccerrors.New(ccerrors.ShapeError, "vector lengths %d and %d differ", a.Len(), b.Len())
	}
	out := make([]mathx.ZqElement, a.Len())
	for i := 0; i < a.Len(); i++ {
		ai, _ := a.Get(i)
		bi, _ := b.Get(i)
		sum, err := ai.Add(bi)
		if err != nil {
			return mathx.GroupVector[mathx.ZqElement]{}, err
		}
		out[i] = sum
	}
	return mathx.NewGroupVector(out)
}

func negateVector(v mathx.GroupVector[mathx.ZqElement]) mathx.GroupVector[mathx.ZqElement] {
	out := make([]mathx.ZqElement, v.Len())
	for i := 0; i < v.Len(); i++ {
		vi, _ := v.Get(i)
		out[i] = vi.Negate()
	}
	vec, _ := mathx.NewGroupVector(out)
	return vec
}

// truncateKey restricts a commitment key to its first k generators,
// the shape sub-arguments need when their auxiliary vectors are
// shorter than the outer commitment key's nu (the zero argument's
// scalar d-commitments use a length-1 key).
func truncateKey(ck commitment.Key, k int) (commitment.Key, error) {
	gs, err := ck.Gs().Slice(0, k)
	if err != nil {
		return commitment.Key{}, err
	}
	return commitment.NewKey(ck.H(), gs)
}

// scalarPedersen computes base^value * h^r mod p, the single-
// generator Pedersen commitment building block the single-value-
// product argument uses for its per-index scalar commitments.
func scalarPedersen(base, h mathx.GqElement, value, r mathx.ZqElement) (mathx.GqElement, error) {
	left, err := base.Exponentiate(value)
	if err != nil {
		return mathx.GqElement{}, err
	}
	right, err := h.Exponentiate(r)
	if err != nil {
		return mathx.GqElement{}, err
	}
	return left.Multiply(right)
}

func logDebug(component string, fields map[string]interface{}) {
	ev := log.Debug().Str("component", component)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg("mixnet argument step")
}
