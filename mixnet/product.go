package mixnet

import (
	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/verification"
)

// ProductStatement claims that the product of every entry of the m x
// n matrix committed column-wise in CA equals the public value B
// (spec §4.6.4).
type ProductStatement struct {
	CA mathx.GroupVector[mathx.GqElement]
	B  mathx.ZqElement
	CK commitment.Key
}

// ProductWitness supplies the matrix and its per-column randomness.
type ProductWitness struct {
	A mathx.GroupMatrix[mathx.ZqElement]
	R mathx.GroupVector[mathx.ZqElement]
}

// ProductArgument composes a Hadamard argument (reducing the m
// columns to their elementwise product p) with a single-value-product
// argument (reducing p's entries to the public B). When m=1 the
// Hadamard step is vacuous: p is just A's only column, so Cp is that
// column's own commitment and Hadamard is omitted.
type ProductArgument struct {
	Cp       mathx.GqElement
	Hadamard *HadamardArgument
	SVP      SVPArgument
}

// GetProductArgument builds the auxiliary product vector p, commits
// it (or reuses CA's single column commitment when m=1), proves the
// Hadamard step when m>=2, and chains a single-value-product proof
// that p's entries multiply to B.
func GetProductArgument(h hashing.Hash, st ProductStatement, wit ProductWitness, rnd randomness.Provider) (ProductArgument, error) {
	m := st.CA.Len()
	n := st.CK.Nu()
	if m == 0 {
		return ProductArgument{}, ccerrors.New(ccerrors.InvalidInput, "product argument requires m >= 1, got %d", m)
	}
	if m != wit.A.NumColumns() || n != wit.A.NumRows() {
		return ProductArgument{}, ccerrors.New(ccerrors.ShapeError, "product witness shape does not match statement")
	}

	col0, err := wit.A.Column(0)
	if err != nil {
		return ProductArgument{}, err
	}
	p := col0.ToSlice()
	for j := 1; j < m; j++ {
		col, err := wit.A.Column(j)
		if err != nil {
			return ProductArgument{}, err
		}
		next, err := hadamardProduct(mustVec(p), col)
		if err != nil {
			return ProductArgument{}, err
		}
		p = next.ToSlice()
	}
	pVec, err := mathx.NewGroupVector(p)
	if err != nil {
		return ProductArgument{}, err
	}

	if m == 1 {
		cp, _ := st.CA.Get(0)
		r0, _ := wit.R.Get(0)
		logDebug("product", map[string]interface{}{"stage": "dispatch", "to": "single-value-product", "m": m})
		svpArg, err := GetSingleValueProductArgument(h, SVPStatement{Ca: cp, B: st.B, CK: st.CK}, SVPWitness{A: pVec, R: r0}, rnd)
		if err != nil {
			return ProductArgument{}, err
		}
		return ProductArgument{Cp: cp, SVP: svpArg}, nil
	}

	zq := st.CK.Group().ToZqGroup()
	s, err := randomness.GenZqElement(rnd, zq)
	if err != nil {
		return ProductArgument{}, err
	}
	cp, err := commitment.Commit(pVec, s, st.CK)
	if err != nil {
		return ProductArgument{}, err
	}
	logDebug("product", map[string]interface{}{"stage": "dispatch", "to": "hadamard", "m": m})
	hadamardArg, err := GetHadamardArgument(h, HadamardStatement{CA: st.CA, Cb: cp, CK: st.CK}, HadamardWitness{A: wit.A, R: wit.R, B: pVec, S: s}, rnd)
	if err != nil {
		return ProductArgument{}, err
	}
	logDebug("product", map[string]interface{}{"stage": "dispatch", "to": "single-value-product", "m": m})
	svpArg, err := GetSingleValueProductArgument(h, SVPStatement{Ca: cp, B: st.B, CK: st.CK}, SVPWitness{A: pVec, R: s}, rnd)
	if err != nil {
		return ProductArgument{}, err
	}
	return ProductArgument{Cp: cp, Hadamard: &hadamardArg, SVP: svpArg}, nil
}

// VerifyProductArgument checks the m=1 boundary case directly, or
// verifies the Hadamard and single-value-product sub-arguments and
// merges their failures.
func VerifyProductArgument(h hashing.Hash, st ProductStatement, arg ProductArgument) (*verification.Result, error) {
	m := st.CA.Len()
	result := verification.New()
	if m == 1 {
		ca0, _ := st.CA.Get(0)
		if !arg.Cp.Equal(ca0) {
			result.Fail("product argument: Cp must equal the sole column commitment when m=1")
		}
	} else {
		if arg.Hadamard == nil {
			return nil, ccerrors.New(ccerrors.InvalidInput, "product argument with m=%d requires a Hadamard sub-argument", m)
		}
		logDebug("product", map[string]interface{}{"stage": "dispatch", "to": "hadamard", "m": m})
		hadamardResult, err := VerifyHadamardArgument(h, HadamardStatement{CA: st.CA, Cb: arg.Cp, CK: st.CK}, *arg.Hadamard)
		if err != nil {
			return nil, err
		}
		result.Merge("", hadamardResult)
	}
	logDebug("product", map[string]interface{}{"stage": "dispatch", "to": "single-value-product", "m": m})
	svpResult, err := VerifySingleValueProductArgument(h, SVPStatement{Ca: arg.Cp, B: st.B, CK: st.CK}, arg.SVP)
	if err != nil {
		return nil, err
	}
	result.Merge("", svpResult)
	return result, nil
}

func mustVec(s []mathx.ZqElement) mathx.GroupVector[mathx.ZqElement] {
	v, _ := mathx.NewGroupVector(s)
	return v
}
