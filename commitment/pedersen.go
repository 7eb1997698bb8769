package commitment

import (
	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/mathx"
)

// Commit computes c = h^r * prod g_i^a_i mod p for a=(a_1..a_nu) in
// Zq^nu, r in Zq, key=(h, g_1..g_nu) (spec §4.4).
func Commit(a mathx.GroupVector[mathx.ZqElement], r mathx.ZqElement, key Key) (mathx.GqElement, error) {
	if a.Len() != key.Nu() {
		return mathx.GqElement{}, ccerrors.New(ccerrors.ShapeError, "witness length %d does not match key size %d", a.Len(), key.Nu())
	}
	acc, err := key.H().Exponentiate(r)
	if err != nil {
		return mathx.GqElement{}, err
	}
	for i := 0; i < a.Len(); i++ {
		ai, _ := a.Get(i)
		gi, _ := key.Gs().Get(i)
		term, err := gi.Exponentiate(ai)
		if err != nil {
			return mathx.GqElement{}, err
		}
		acc, err = acc.Multiply(term)
		if err != nil {
			return mathx.GqElement{}, err
		}
	}
	return acc, nil
}

// CommitMatrix commits each column of A independently, using the
// matching entry of exponents r as that column's randomness (spec
// §4.4: "produces the vector of per-column commitments using
// exponents r_j").
func CommitMatrix(a mathx.GroupMatrix[mathx.ZqElement], r mathx.GroupVector[mathx.ZqElement], key Key) (mathx.GroupVector[mathx.GqElement], error) {
	if a.NumColumns() != r.Len() {
		return mathx.GroupVector[mathx.GqElement]{}, ccerrors.New(ccerrors.ShapeError, "matrix has %d columns, randomness has length %d", a.NumColumns(), r.Len())
	}
	commitments := make([]mathx.GqElement, a.NumColumns())
	for j := 0; j < a.NumColumns(); j++ {
		col, err := a.Column(j)
		if err != nil {
			return mathx.GroupVector[mathx.GqElement]{}, err
		}
		rj, _ := r.Get(j)
		c, err := Commit(col, rj, key)
		if err != nil {
			return mathx.GroupVector[mathx.GqElement]{}, err
		}
		commitments[j] = c
	}
	return mathx.NewGroupVector(commitments)
}
