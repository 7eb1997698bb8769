package mixnet

import (
	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/verification"
)

// SVPStatement claims that Ca commits to a vector a whose entries
// multiply (in Zq) to the public value B (spec §4.6.1).
type SVPStatement struct {
	Ca mathx.GqElement
	B  mathx.ZqElement
	CK commitment.Key
}

// SVPWitness supplies a and its commitment randomness.
type SVPWitness struct {
	A mathx.GroupVector[mathx.ZqElement]
	R mathx.ZqElement
}

// SVPArgument proves the chain b_0=1, b_i=a_i*b_{i-1} (i=1..n),
// b_n=B, one product-triple Sigma proof per step, all driven by a
// single Fiat-Shamir challenge. CAi are per-index scalar commitments
// to a_i (under ck's i-th generator) linked back to Ca by the
// revealed blinding-offset U; CBi are scalar commitments to the
// interior chain values b_1..b_{n-1} (b_0 and b_n are public).
type SVPArgument struct {
	CAi mathx.GroupVector[mathx.GqElement]
	U   mathx.ZqElement
	CBi mathx.GroupVector[mathx.GqElement]
	T1  mathx.GroupVector[mathx.GqElement]
	T2  mathx.GroupVector[mathx.GqElement]
	T3  mathx.GroupVector[mathx.GqElement]
	ZA  mathx.GroupVector[mathx.ZqElement]
	ZT  mathx.GroupVector[mathx.ZqElement]
	ZB  mathx.GroupVector[mathx.ZqElement]
	ZS  mathx.GroupVector[mathx.ZqElement]
	ZD  mathx.GroupVector[mathx.ZqElement]
}

func svpTranscript(st SVPStatement, arg SVPArgument) hashing.Hashable {
	values := []hashing.Hashable{
		hashing.Bytes(st.CK.H().Bytes()),
		hashing.Bytes(st.Ca.Bytes()),
		hashing.Bytes(st.B.Bytes()),
		hashing.Bytes(arg.U.Bytes()),
	}
	for i := 0; i < arg.CAi.Len(); i++ {
		e, _ := arg.CAi.Get(i)
		values = append(values, hashing.Bytes(e.Bytes()))
	}
	for i := 0; i < arg.CBi.Len(); i++ {
		e, _ := arg.CBi.Get(i)
		values = append(values, hashing.Bytes(e.Bytes()))
	}
	for i := 0; i < arg.T1.Len(); i++ {
		e1, _ := arg.T1.Get(i)
		e2, _ := arg.T2.Get(i)
		e3, _ := arg.T3.Get(i)
		values = append(values, hashing.Bytes(e1.Bytes()), hashing.Bytes(e2.Bytes()), hashing.Bytes(e3.Bytes()))
	}
	return hashing.Transcript(values...)
}

// boundaryB returns the value, blinding randomness, and commitment of
// b_i for i in [0,n]: b_0=1 and b_n=B are public with zero blinding;
// interior indices come from bVals/sRand/CBi. Only the prover, who
// holds bVals/sRand, calls this.
func boundaryB(i, n int, zq *mathx.ZqGroup, g0 mathx.GqElement, h mathx.GqElement, st SVPStatement, bVals []mathx.ZqElement, sRand []mathx.ZqElement, cbi mathx.GroupVector[mathx.GqElement]) (mathx.ZqElement, mathx.ZqElement, mathx.GqElement, error) {
	switch {
	case i == 0:
		c, err := scalarPedersen(g0, h, zq.OneElement(), zq.ZeroElement())
		return zq.OneElement(), zq.ZeroElement(), c, err
	case i == n:
		c, err := scalarPedersen(g0, h, st.B, zq.ZeroElement())
		return st.B, zq.ZeroElement(), c, err
	default:
		c, err := cbi.Get(i - 1)
		return bVals[i-1], sRand[i-1], c, err
	}
}

// boundaryCommitment returns only the commitment to b_i for i in
// [0,n], the information the verifier has available (it never learns
// bVals/sRand).
func boundaryCommitment(i, n int, zq *mathx.ZqGroup, g0, h mathx.GqElement, st SVPStatement, cbi mathx.GroupVector[mathx.GqElement]) (mathx.GqElement, error) {
	switch {
	case i == 0:
		return scalarPedersen(g0, h, zq.OneElement(), zq.ZeroElement())
	case i == n:
		return scalarPedersen(g0, h, st.B, zq.ZeroElement())
	default:
		return cbi.Get(i - 1)
	}
}

// GetSingleValueProductArgument proves prod_i a_i = B by chaining n
// product-triple Sigma proofs over the prefix-product sequence, each
// proving b_i = a_i*b_{i-1} for committed (or, at the boundary,
// public) a_i, b_{i-1}, b_i.
func GetSingleValueProductArgument(h hashing.Hash, st SVPStatement, wit SVPWitness, rnd randomness.Provider) (SVPArgument, error) {
	n := wit.A.Len()
	if n == 0 {
		return SVPArgument{}, ccerrors.New(ccerrors.InvalidInput, "single-value-product argument requires n >= 1, got %d", n)
	}
	if n != st.CK.Nu() {
		return SVPArgument{}, ccerrors.New(ccerrors.ShapeError, "witness length %d must match commitment key size %d", n, st.CK.Nu())
	}
	zq := st.CK.Group().ToZqGroup()
	hBase := st.CK.H()
	g0, _ := st.CK.Gs().Get(0)

	bVals := make([]mathx.ZqElement, n)
	a0, _ := wit.A.Get(0)
	bVals[0] = a0
	for i := 1; i < n; i++ {
		ai, _ := wit.A.Get(i)
		prod, err := bVals[i-1].Multiply(ai)
		if err != nil {
			return SVPArgument{}, err
		}
		bVals[i] = prod
	}
	if !bVals[n-1].Equal(st.B) {
		return SVPArgument{}, ccerrors.New(ccerrors.WitnessInconsistent, "single-value-product witness does not multiply to the claimed value")
	}

	tRand := make([]mathx.ZqElement, n)
	cAi := make([]mathx.GqElement, n)
	uAcc := wit.R
	for i := 0; i < n; i++ {
		ti, err := randomness.GenZqElement(rnd, zq)
		if err != nil {
			return SVPArgument{}, err
		}
		tRand[i] = ti
		gi, _ := st.CK.Gs().Get(i)
		ai, _ := wit.A.Get(i)
		c, err := scalarPedersen(gi, hBase, ai, ti)
		if err != nil {
			return SVPArgument{}, err
		}
		cAi[i] = c
		uAcc, err = uAcc.Subtract(ti)
		if err != nil {
			return SVPArgument{}, err
		}
	}
	cAiVec, err := mathx.NewGroupVector(cAi)
	if err != nil {
		return SVPArgument{}, err
	}

	sRand := make([]mathx.ZqElement, 0, n-1)
	cBi := make([]mathx.GqElement, 0, n-1)
	for i := 1; i < n; i++ {
		si, err := randomness.GenZqElement(rnd, zq)
		if err != nil {
			return SVPArgument{}, err
		}
		c, err := scalarPedersen(g0, hBase, bVals[i-1], si)
		if err != nil {
			return SVPArgument{}, err
		}
		sRand = append(sRand, si)
		cBi = append(cBi, c)
	}
	cBiVec, err := mathx.NewGroupVector(cBi)
	if err != nil {
		return SVPArgument{}, err
	}

	kA := make([]mathx.ZqElement, n)
	kT := make([]mathx.ZqElement, n)
	kB := make([]mathx.ZqElement, n)
	kS := make([]mathx.ZqElement, n)
	kD := make([]mathx.ZqElement, n)
	t1 := make([]mathx.GqElement, n)
	t2 := make([]mathx.GqElement, n)
	t3 := make([]mathx.GqElement, n)
	for idx := 0; idx < n; idx++ {
		i := idx + 1
		ks, err := randomness.GenZqVector(rnd, zq, 5)
		if err != nil {
			return SVPArgument{}, err
		}
		kA[idx], _ = ks.Get(0)
		kT[idx], _ = ks.Get(1)
		kB[idx], _ = ks.Get(2)
		kS[idx], _ = ks.Get(3)
		kD[idx], _ = ks.Get(4)
		gi, _ := st.CK.Gs().Get(idx)
		t1v, err := scalarPedersen(gi, hBase, kA[idx], kT[idx])
		if err != nil {
			return SVPArgument{}, err
		}
		t1[idx] = t1v
		t2v, err := scalarPedersen(g0, hBase, kB[idx], kS[idx])
		if err != nil {
			return SVPArgument{}, err
		}
		t2[idx] = t2v
		_, _, cbPrev, err := boundaryB(i-1, n, zq, g0, hBase, st, bVals, sRand, cBiVec)
		if err != nil {
			return SVPArgument{}, err
		}
		left, err := cbPrev.Exponentiate(kA[idx])
		if err != nil {
			return SVPArgument{}, err
		}
		right, err := hBase.Exponentiate(kD[idx])
		if err != nil {
			return SVPArgument{}, err
		}
		t3v, err := left.Multiply(right)
		if err != nil {
			return SVPArgument{}, err
		}
		t3[idx] = t3v
	}
	t1Vec, err := mathx.NewGroupVector(t1)
	if err != nil {
		return SVPArgument{}, err
	}
	t2Vec, err := mathx.NewGroupVector(t2)
	if err != nil {
		return SVPArgument{}, err
	}
	t3Vec, err := mathx.NewGroupVector(t3)
	if err != nil {
		return SVPArgument{}, err
	}

	partial := SVPArgument{CAi: cAiVec, U: uAcc, CBi: cBiVec, T1: t1Vec, T2: t2Vec, T3: t3Vec}
	e, err := hashing.ChallengeZq(h, zq, svpTranscript(st, partial))
	if err != nil {
		return SVPArgument{}, err
	}
	logDebug("single-value-product", map[string]interface{}{"stage": "challenge-derived", "side": "prover", "n": n})

	zA := make([]mathx.ZqElement, n)
	zT := make([]mathx.ZqElement, n)
	zB := make([]mathx.ZqElement, n)
	zS := make([]mathx.ZqElement, n)
	zD := make([]mathx.ZqElement, n)
	for idx := 0; idx < n; idx++ {
		i := idx + 1
		ai, _ := wit.A.Get(idx)
		ea, err := e.Multiply(ai)
		if err != nil {
			return SVPArgument{}, err
		}
		zA[idx], err = kA[idx].Add(ea)
		if err != nil {
			return SVPArgument{}, err
		}
		et, err := e.Multiply(tRand[idx])
		if err != nil {
			return SVPArgument{}, err
		}
		zT[idx], err = kT[idx].Add(et)
		if err != nil {
			return SVPArgument{}, err
		}

		bPrevVal, bPrevRand, _, err := boundaryB(i-1, n, zq, g0, hBase, st, bVals, sRand, cBiVec)
		if err != nil {
			return SVPArgument{}, err
		}
		eb, err := e.Multiply(bPrevVal)
		if err != nil {
			return SVPArgument{}, err
		}
		zB[idx], err = kB[idx].Add(eb)
		if err != nil {
			return SVPArgument{}, err
		}
		es, err := e.Multiply(bPrevRand)
		if err != nil {
			return SVPArgument{}, err
		}
		zS[idx], err = kS[idx].Add(es)
		if err != nil {
			return SVPArgument{}, err
		}

		_, cRand, _, err := boundaryB(i, n, zq, g0, hBase, st, bVals, sRand, cBiVec)
		if err != nil {
			return SVPArgument{}, err
		}
		cross, err := bPrevRand.Multiply(ai)
		if err != nil {
			return SVPArgument{}, err
		}
		inner, err := cRand.Subtract(cross)
		if err != nil {
			return SVPArgument{}, err
		}
		einner, err := e.Multiply(inner)
		if err != nil {
			return SVPArgument{}, err
		}
		zD[idx], err = kD[idx].Add(einner)
		if err != nil {
			return SVPArgument{}, err
		}
	}
	zAVec, err := mathx.NewGroupVector(zA)
	if err != nil {
		return SVPArgument{}, err
	}
	zTVec, err := mathx.NewGroupVector(zT)
	if err != nil {
		return SVPArgument{}, err
	}
	zBVec, err := mathx.NewGroupVector(zB)
	if err != nil {
		return SVPArgument{}, err
	}
	zSVec, err := mathx.NewGroupVector(zS)
	if err != nil {
		return SVPArgument{}, err
	}
	zDVec, err := mathx.NewGroupVector(zD)
	if err != nil {
		return SVPArgument{}, err
	}

	partial.ZA, partial.ZT, partial.ZB, partial.ZS, partial.ZD = zAVec, zTVec, zBVec, zSVec, zDVec
	return partial, nil
}

// VerifySingleValueProductArgument recomputes the challenge and checks
// the Ca-linking equation plus each step's three Sigma equations,
// accumulating every failure without short-circuiting.
func VerifySingleValueProductArgument(h hashing.Hash, st SVPStatement, arg SVPArgument) (*verification.Result, error) {
	n := st.CK.Nu()
	if arg.CAi.Len() != n || arg.CBi.Len() != n-1 {
		return nil, ccerrors.New(ccerrors.ShapeError, "single-value-product argument has inconsistent vector lengths for n=%d", n)
	}
	zq := st.CK.Group().ToZqGroup()
	hBase := st.CK.H()
	g0, _ := st.CK.Gs().Get(0)
	result := verification.New()

	e, err := hashing.ChallengeZq(h, zq, svpTranscript(st, arg))
	if err != nil {
		return nil, err
	}
	logDebug("single-value-product", map[string]interface{}{"stage": "challenge-derived", "side": "verifier", "n": n})

	prodCAi := st.CK.Group().Identity()
	for i := 0; i < n; i++ {
		c, _ := arg.CAi.Get(i)
		prodCAi, err = prodCAi.Multiply(c)
		if err != nil {
			return nil, err
		}
	}
	hU, err := hBase.Exponentiate(arg.U)
	if err != nil {
		return nil, err
	}
	linkRight, err := prodCAi.Multiply(hU)
	if err != nil {
		return nil, err
	}
	if !st.Ca.Equal(linkRight) {
		result.Fail("single-value-product argument: Ca is not consistent with the per-index scalar commitments")
	}

	for idx := 0; idx < n; idx++ {
		i := idx + 1
		gi, _ := st.CK.Gs().Get(idx)
		za, _ := arg.ZA.Get(idx)
		zt, _ := arg.ZT.Get(idx)
		zb, _ := arg.ZB.Get(idx)
		zs, _ := arg.ZS.Get(idx)
		zd, _ := arg.ZD.Get(idx)
		t1, _ := arg.T1.Get(idx)
		t2, _ := arg.T2.Get(idx)
		t3, _ := arg.T3.Get(idx)
		cAi, _ := arg.CAi.Get(idx)

		left1, err := scalarPedersen(gi, hBase, za, zt)
		if err != nil {
			return nil, err
		}
		right1Term, err := cAi.Exponentiate(e)
		if err != nil {
			return nil, err
		}
		right1, err := t1.Multiply(right1Term)
		if err != nil {
			return nil, err
		}
		if !left1.Equal(right1) {
			result.Failf("single-value-product argument: step %d opening of a_i is inconsistent", i)
		}

		cbPrev, err := boundaryCommitment(i-1, n, zq, g0, hBase, st, arg.CBi)
		if err != nil {
			return nil, err
		}
		left2, err := scalarPedersen(g0, hBase, zb, zs)
		if err != nil {
			return nil, err
		}
		right2Term, err := cbPrev.Exponentiate(e)
		if err != nil {
			return nil, err
		}
		right2, err := t2.Multiply(right2Term)
		if err != nil {
			return nil, err
		}
		if !left2.Equal(right2) {
			result.Failf("single-value-product argument: step %d opening of b_(i-1) is inconsistent", i)
		}

		cbCur, err := boundaryCommitment(i, n, zq, g0, hBase, st, arg.CBi)
		if err != nil {
			return nil, err
		}
		left3a, err := cbPrev.Exponentiate(za)
		if err != nil {
			return nil, err
		}
		left3b, err := hBase.Exponentiate(zd)
		if err != nil {
			return nil, err
		}
		left3, err := left3a.Multiply(left3b)
		if err != nil {
			return nil, err
		}
		right3Term, err := cbCur.Exponentiate(e)
		if err != nil {
			return nil, err
		}
		right3, err := t3.Multiply(right3Term)
		if err != nil {
			return nil, err
		}
		if !left3.Equal(right3) {
			result.Failf("single-value-product argument: step %d product relation is inconsistent", i)
		}
	}
	return result, nil
}
