package mixnet

import (
	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/verification"
)

// HadamardStatement claims that Cb commits to the elementwise
// (Hadamard) product of the m columns committed in CA (spec §4.6.2).
type HadamardStatement struct {
	CA mathx.GroupVector[mathx.GqElement]
	Cb mathx.GqElement
	CK commitment.Key
}

// HadamardWitness supplies A's columns, their commitment randomness,
// and the claimed product vector with its own randomness.
type HadamardWitness struct {
	A mathx.GroupMatrix[mathx.ZqElement]
	R mathx.GroupVector[mathx.ZqElement]
	B mathx.GroupVector[mathx.ZqElement]
	S mathx.ZqElement
}

// HadamardArgument is the proof: commitments to the intermediate
// running-product columns B_2..B_{m-1}, plus a single Zero argument
// binding the whole chain B_i = B_{i-1} . A_i together.
type HadamardArgument struct {
	CBIntermediate mathx.GroupVector[mathx.GqElement]
	ZeroArg        ZeroArgument
}

func hadamardTranscript(st HadamardStatement, cBIntermediate mathx.GroupVector[mathx.GqElement]) hashing.Hashable {
	values := []hashing.Hashable{hashing.Bytes(st.CK.H().Bytes()), hashing.Bytes(st.Cb.Bytes())}
	for i := 0; i < st.CA.Len(); i++ {
		e, _ := st.CA.Get(i)
		values = append(values, hashing.Bytes(e.Bytes()))
	}
	for i := 0; i < cBIntermediate.Len(); i++ {
		e, _ := cBIntermediate.Get(i)
		values = append(values, hashing.Bytes(e.Bytes()))
	}
	return hashing.Transcript(values...)
}

// GetHadamardArgument requires m >= 2 (spec §4.6.2: "with m=1 the
// protocol is ill-defined"). It computes the running Hadamard-product
// columns B_1=A_1, B_i=B_{i-1}.A_i, checks B_m against the witness's
// claimed product, commits the intermediate columns, and reduces the
// whole chain to one ZeroArgument call: for a random y drawn after
// all commitments are fixed, sum_{i=1}^{m-1} [<A_{i+1},B_i>_y -
// <1,B_{i+1}>_y] is identically zero iff every step of the chain is
// correct.
func GetHadamardArgument(h hashing.Hash, st HadamardStatement, wit HadamardWitness, rnd randomness.Provider) (HadamardArgument, error) {
	m := st.CA.Len()
	if m < 2 {
		return HadamardArgument{}, ccerrors.New(ccerrors.InvalidInput, "Hadamard argument requires m >= 2, got %d", m)
	}
	n := st.CK.Nu()
	zq := st.CK.Group().ToZqGroup()

	bCols := make([]mathx.GroupVector[mathx.ZqElement], m+1) // 1-indexed
	col1, _ := wit.A.Column(0)
	bCols[1] = col1
	for i := 2; i <= m; i++ {
		ai, _ := wit.A.Column(i - 1)
		prod, err := hadamardProduct(bCols[i-1], ai)
		if err != nil {
			return HadamardArgument{}, err
		}
		bCols[i] = prod
	}
	for idx := 0; idx < n; idx++ {
		last, _ := bCols[m].Get(idx)
		claimed, _ := wit.B.Get(idx)
		if !last.Equal(claimed) {
			return HadamardArgument{}, ccerrors.New(ccerrors.WitnessInconsistent, "Hadamard witness: column product does not match claimed B at index %d", idx)
		}
	}

	sCoeffs := make([]mathx.ZqElement, m+1) // 1-indexed
	r0, _ := wit.R.Get(0)
	sCoeffs[1] = r0
	sCoeffs[m] = wit.S
	intermediate := make([]mathx.GqElement, 0, m-2)
	for i := 2; i <= m-1; i++ {
		si, err := randomness.GenZqElement(rnd, zq)
		if err != nil {
			return HadamardArgument{}, err
		}
		sCoeffs[i] = si
		c, err := commitment.Commit(bCols[i], si, st.CK)
		if err != nil {
			return HadamardArgument{}, err
		}
		intermediate = append(intermediate, c)
	}
	cBIntermediate, err := mathx.NewGroupVector(intermediate)
	if err != nil {
		return HadamardArgument{}, err
	}

	y, err := hashing.ChallengeZq(h, zq, hadamardTranscript(st, cBIntermediate))
	if err != nil {
		return HadamardArgument{}, err
	}
	logDebug("hadamard", map[string]interface{}{"stage": "challenge-derived", "side": "prover", "m": m})

	negOnes := negateVector(constVector(zq, 1, n))
	cNegOnes, err := commitment.Commit(negOnes, zq.ZeroElement(), st.CK)
	if err != nil {
		return HadamardArgument{}, err
	}

	k := m - 1
	aCols := make([]mathx.GroupVector[mathx.ZqElement], 2*k)
	aRand := make([]mathx.ZqElement, 2*k)
	bColsZero := make([]mathx.GroupVector[mathx.ZqElement], 2*k)
	bRand := make([]mathx.ZqElement, 2*k)
	cAVec := make([]mathx.GqElement, 2*k)
	cBVec := make([]mathx.GqElement, 2*k)
	allB := make([]mathx.GqElement, m+1) // 1-indexed combined B commitments
	ca0, _ := st.CA.Get(0)
	allB[1] = ca0
	for i := 2; i <= m-1; i++ {
		c, _ := cBIntermediate.Get(i - 2)
		allB[i] = c
	}
	allB[m] = st.Cb

	for idx := 0; idx < k; idx++ {
		i := idx + 1 // i = 1..k, relates B_i and A_{i+1}
		aCols[idx], _ = wit.A.Column(i)
		caI1, _ := st.CA.Get(i)
		cAVec[idx] = caI1
		rI1, _ := wit.R.Get(i)
		aRand[idx] = rI1
		bColsZero[idx] = bCols[i]
		cBVec[idx] = allB[i]
		bRand[idx] = sCoeffs[i]

		aCols[k+idx] = negOnes
		cAVec[k+idx] = cNegOnes
		aRand[k+idx] = zq.ZeroElement()
		bColsZero[k+idx] = bCols[i+1]
		cBVec[k+idx] = allB[i+1]
		bRand[k+idx] = sCoeffs[i+1]
	}

	aMatrix, err := mathx.MatrixFromColumns(toSlices(aCols))
	if err != nil {
		return HadamardArgument{}, err
	}
	bMatrix, err := mathx.MatrixFromColumns(toSlices(bColsZero))
	if err != nil {
		return HadamardArgument{}, err
	}
	rVec, err := mathx.NewGroupVector(aRand)
	if err != nil {
		return HadamardArgument{}, err
	}
	sVec, err := mathx.NewGroupVector(bRand)
	if err != nil {
		return HadamardArgument{}, err
	}
	cAVecWrap, err := mathx.NewGroupVector(cAVec)
	if err != nil {
		return HadamardArgument{}, err
	}
	cBVecWrap, err := mathx.NewGroupVector(cBVec)
	if err != nil {
		return HadamardArgument{}, err
	}

	logDebug("hadamard", map[string]interface{}{"stage": "dispatch", "to": "zero", "m": m})
	zeroArg, err := GetZeroArgument(h, ZeroStatement{Y: y, CA: cAVecWrap, CB: cBVecWrap, CK: st.CK}, ZeroWitness{A: aMatrix, B: bMatrix, R: rVec, S: sVec}, rnd)
	if err != nil {
		return HadamardArgument{}, err
	}
	return HadamardArgument{CBIntermediate: cBIntermediate, ZeroArg: zeroArg}, nil
}

// VerifyHadamardArgument rebuilds the combined zero-statement from
// public values only and delegates to VerifyZeroArgument.
func VerifyHadamardArgument(h hashing.Hash, st HadamardStatement, arg HadamardArgument) (*verification.Result, error) {
	m := st.CA.Len()
	if m < 2 {
		return nil, ccerrors.New(ccerrors.InvalidInput, "Hadamard argument requires m >= 2, got %d", m)
	}
	if arg.CBIntermediate.Len() != m-2 {
		return nil, ccerrors.New(ccerrors.ShapeError, "Hadamard argument expects %d intermediate commitments, got %d", m-2, arg.CBIntermediate.Len())
	}
	n := st.CK.Nu()
	zq := st.CK.Group().ToZqGroup()

	y, err := hashing.ChallengeZq(h, zq, hadamardTranscript(st, arg.CBIntermediate))
	if err != nil {
		return nil, err
	}
	logDebug("hadamard", map[string]interface{}{"stage": "challenge-derived", "side": "verifier", "m": m})
	negOnes := negateVector(constVector(zq, 1, n))
	cNegOnes, err := commitment.Commit(negOnes, zq.ZeroElement(), st.CK)
	if err != nil {
		return nil, err
	}

	allB := make([]mathx.GqElement, m+1)
	ca0, _ := st.CA.Get(0)
	allB[1] = ca0
	for i := 2; i <= m-1; i++ {
		c, _ := arg.CBIntermediate.Get(i - 2)
		allB[i] = c
	}
	allB[m] = st.Cb

	k := m - 1
	cAVec := make([]mathx.GqElement, 2*k)
	cBVec := make([]mathx.GqElement, 2*k)
	for idx := 0; idx < k; idx++ {
		i := idx + 1
		caI1, _ := st.CA.Get(i)
		cAVec[idx] = caI1
		cBVec[idx] = allB[i]

		cAVec[k+idx] = cNegOnes
		cBVec[k+idx] = allB[i+1]
	}
	cAVecWrap, err := mathx.NewGroupVector(cAVec)
	if err != nil {
		return nil, err
	}
	cBVecWrap, err := mathx.NewGroupVector(cBVec)
	if err != nil {
		return nil, err
	}

	logDebug("hadamard", map[string]interface{}{"stage": "dispatch", "to": "zero", "m": m})
	result, err := VerifyZeroArgument(h, ZeroStatement{Y: y, CA: cAVecWrap, CB: cBVecWrap, CK: st.CK}, arg.ZeroArg)
	if err != nil {
		return nil, err
	}
	wrapped := verification.New()
	wrapped.Merge("Hadamard argument", result)
	return wrapped, nil
}

func hadamardProduct(a, b mathx.GroupVector[mathx.ZqElement]) (mathx.GroupVector[mathx.ZqElement], error) {
	if a.Len() != b.Len() {
		return mathx.GroupVector[mathx.ZqElement]{}, ccerrors.New(ccerrors.ShapeError, "Hadamard product operands have lengths %d and %d", a.Len(), b.Len())
	}
	out := make([]mathx.ZqElement, a.Len())
	for i := 0; i < a.Len(); i++ {
		ai, _ := a.Get(i)
		bi, _ := b.Get(i)
		v, err := ai.Multiply(bi)
		if err != nil {
			return mathx.GroupVector[mathx.ZqElement]{}, err
		}
		out[i] = v
	}
	return mathx.NewGroupVector(out)
}

func toSlices(cols []mathx.GroupVector[mathx.ZqElement]) [][]mathx.ZqElement {
	out := make([][]mathx.ZqElement, len(cols))
	for i, c := range cols {
		out[i] = c.ToSlice()
	}
	return out
}
