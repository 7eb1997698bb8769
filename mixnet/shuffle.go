package mixnet

import (
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/permutation"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/verification"
)

// ShuffleStatement claims that CPrime is a permutation and
// re-encryption of C under PK: there is a bijection sigma on [0,N)
// and re-encryption exponents rho such that CPrime[i] =
// ReEncrypt(C[sigma(i)], rho[i], PK) for every i (spec §4.6.6).
type ShuffleStatement struct {
	C      mathx.GroupVector[elgamal.Ciphertext]
	CPrime mathx.GroupVector[elgamal.Ciphertext]
	PK     elgamal.PublicKey
	CK     commitment.Key
}

// ShuffleWitness supplies the permutation (sigma(i) is the input index
// feeding output position i) and its per-output re-encryption exponents.
type ShuffleWitness struct {
	Sigma permutation.Permutation
	Rho   mathx.GroupVector[mathx.ZqElement]
}

// ShuffleArgument commits once to the permutation, encoded as the
// vector A[i] = sigma(i)+1, and reuses that single commitment for two
// purposes: a Product argument proving A's entries are exactly a
// permutation of {1..N} (the Schwartz-Zippel multiset check sum/prod
// trick, spec §4.6.6), and a Multi-exponentiation argument proving the
// re-encrypted combination of C' under A equals a fixed public
// combination of C under the weights {1..N} — the same committed A
// doing double duty is what lets a single round of challenges bind
// the whole relation.
type ShuffleArgument struct {
	CA       mathx.GroupVector[mathx.GqElement]
	Product  ProductArgument
	MultiExp MultiExponentiationArgument
}

func shuffleTranscript(st ShuffleStatement, ca mathx.GroupVector[mathx.GqElement]) hashing.Hashable {
	values := []hashing.Hashable{hashing.Bytes(st.CK.H().Bytes())}
	for i := 0; i < st.PK.Len(); i++ {
		k, _ := st.PK.Get(i)
		values = append(values, hashing.Bytes(k.Bytes()))
	}
	for i := 0; i < st.C.Len(); i++ {
		c, _ := st.C.Get(i)
		values = append(values, hashing.Bytes(c.Gamma().Bytes()))
		for j := 0; j < c.Len(); j++ {
			p, _ := c.Phi().Get(j)
			values = append(values, hashing.Bytes(p.Bytes()))
		}
	}
	for i := 0; i < st.CPrime.Len(); i++ {
		c, _ := st.CPrime.Get(i)
		values = append(values, hashing.Bytes(c.Gamma().Bytes()))
		for j := 0; j < c.Len(); j++ {
			p, _ := c.Phi().Get(j)
			values = append(values, hashing.Bytes(p.Bytes()))
		}
	}
	for i := 0; i < ca.Len(); i++ {
		c, _ := ca.Get(i)
		values = append(values, hashing.Bytes(c.Bytes()))
	}
	return hashing.Transcript(values...)
}

// permutationMultisetTarget returns prod_{v=1}^{N} (x1 - v), the
// public polynomial value the committed permutation labels must match
// under the Schwartz-Zippel multiset argument.
func permutationMultisetTarget(zq *mathx.ZqGroup, x1 mathx.ZqElement, n int) (mathx.ZqElement, error) {
	result, err := zq.GenerateElement(big.NewInt(1))
	if err != nil {
		return mathx.ZqElement{}, err
	}
	for v := 1; v <= n; v++ {
		vElem, err := zq.GenerateElement(big.NewInt(int64(v)))
		if err != nil {
			return mathx.ZqElement{}, err
		}
		term, err := x1.Subtract(vElem)
		if err != nil {
			return mathx.ZqElement{}, err
		}
		result, err = result.Multiply(term)
		if err != nil {
			return mathx.ZqElement{}, err
		}
	}
	return result, nil
}

// derivedShiftedCommitments computes CD_j = (prod_k g_k)^{x1} * CA_j^-1
// for every column j, the public homomorphic derivation that lets the
// verifier obtain a commitment to (x1*ones - A)'s columns without any
// extra message from the prover: Commit(x1*ones-Acol, -Rcol, CK) works
// out to exactly this value (hand-verified: H^{-r} g^{x1}(prod g^{-a})
// on both sides).
func derivedShiftedCommitments(ck commitment.Key, ca mathx.GroupVector[mathx.GqElement], x1 mathx.ZqElement) (mathx.GroupVector[mathx.GqElement], error) {
	gProd, err := mathx.MultiplyAll(ck.Gs().ToSlice())
	if err != nil {
		return mathx.GroupVector[mathx.GqElement]{}, err
	}
	gProdX1, err := gProd.Exponentiate(x1)
	if err != nil {
		return mathx.GroupVector[mathx.GqElement]{}, err
	}
	out := make([]mathx.GqElement, ca.Len())
	for j := 0; j < ca.Len(); j++ {
		caj, _ := ca.Get(j)
		out[j], err = gProdX1.Multiply(caj.Invert())
		if err != nil {
			return mathx.GroupVector[mathx.GqElement]{}, err
		}
	}
	return mathx.NewGroupVector(out)
}

// weightedCombination computes prod_j cs[j]^{j+1}, the fixed public
// recombination of the original ciphertexts the multi-exponentiation
// step's target is built from.
func weightedCombination(zq *mathx.ZqGroup, cs []elgamal.Ciphertext) (elgamal.Ciphertext, error) {
	exps := make([]mathx.ZqElement, len(cs))
	for j := range cs {
		v, err := zq.GenerateElement(big.NewInt(int64(j + 1)))
		if err != nil {
			return elgamal.Ciphertext{}, err
		}
		exps[j] = v
	}
	return ciphertextCombine(cs, exps)
}

// GetShuffleArgument commits to A[i]=sigma(i)+1 (reshaped to n rows by
// m columns, one commitment per column under CK), derives x1 from that commitment, proves A is a permutation of
// {1..N} via a Product argument on the publicly-derived shifted
// commitments, and proves the re-encrypted combination relation via a
// Multi-exponentiation argument reusing the same commitment to A.
func GetShuffleArgument(h hashing.Hash, st ShuffleStatement, wit ShuffleWitness, rnd randomness.Provider) (ShuffleArgument, error) {
	n := st.CK.Nu()
	nTotal := st.C.Len()
	if nTotal == 0 || nTotal != st.CPrime.Len() || nTotal != wit.Rho.Len() || nTotal != wit.Sigma.Size() {
		return ShuffleArgument{}, ccerrors.New(ccerrors.ShapeError, "shuffle statement/witness lengths must all agree and be non-zero")
	}
	if n == 0 || nTotal%n != 0 {
		return ShuffleArgument{}, ccerrors.New(ccerrors.ShapeError, "ciphertext count %d must be a multiple of the commitment key size %d", nTotal, n)
	}
	m := nTotal / n
	zq := st.CK.Group().ToZqGroup()

	aFlat := make([]mathx.ZqElement, nTotal)
	for i := 0; i < nTotal; i++ {
		sigmaI, err := wit.Sigma.Get(i)
		if err != nil {
			return ShuffleArgument{}, err
		}
		v, err := zq.GenerateElement(big.NewInt(int64(sigmaI + 1)))
		if err != nil {
			return ShuffleArgument{}, err
		}
		aFlat[i] = v
	}
	aVec, err := mathx.NewGroupVector(aFlat)
	if err != nil {
		return ShuffleArgument{}, err
	}
	aMatrix, err := mathx.VectorToMatrix(aVec, n, m)
	if err != nil {
		return ShuffleArgument{}, err
	}
	rVec, err := randomness.GenZqVector(rnd, zq, m)
	if err != nil {
		return ShuffleArgument{}, err
	}
	cA, err := commitment.CommitMatrix(aMatrix, rVec, st.CK)
	if err != nil {
		return ShuffleArgument{}, err
	}

	x1, err := hashing.ChallengeZq(h, zq, shuffleTranscript(st, cA))
	if err != nil {
		return ShuffleArgument{}, err
	}
	logDebug("shuffle", map[string]interface{}{"stage": "challenge-derived", "side": "prover", "m": m, "n": n})

	dFlat := make([]mathx.ZqElement, nTotal)
	for i := 0; i < nTotal; i++ {
		d, err := x1.Subtract(aFlat[i])
		if err != nil {
			return ShuffleArgument{}, err
		}
		dFlat[i] = d
	}
	dVec, err := mathx.NewGroupVector(dFlat)
	if err != nil {
		return ShuffleArgument{}, err
	}
	dMatrix, err := mathx.VectorToMatrix(dVec, n, m)
	if err != nil {
		return ShuffleArgument{}, err
	}
	negRVec := negateVector(rVec)
	cD, err := derivedShiftedCommitments(st.CK, cA, x1)
	if err != nil {
		return ShuffleArgument{}, err
	}
	t1, err := permutationMultisetTarget(zq, x1, nTotal)
	if err != nil {
		return ShuffleArgument{}, err
	}
	logDebug("shuffle", map[string]interface{}{"stage": "dispatch", "to": "product", "m": m, "n": n})
	productArg, err := GetProductArgument(h, ProductStatement{CA: cD, B: t1, CK: st.CK}, ProductWitness{A: dMatrix, R: negRVec}, rnd)
	if err != nil {
		return ShuffleArgument{}, err
	}

	target, err := weightedCombination(zq, st.C.ToSlice())
	if err != nil {
		return ShuffleArgument{}, err
	}
	rhoPrime := zq.ZeroElement()
	for i := 0; i < nTotal; i++ {
		rhoI, err := wit.Rho.Get(i)
		if err != nil {
			return ShuffleArgument{}, err
		}
		term, err := rhoI.Multiply(aFlat[i])
		if err != nil {
			return ShuffleArgument{}, err
		}
		rhoPrime, err = rhoPrime.Add(term)
		if err != nil {
			return ShuffleArgument{}, err
		}
	}
	logDebug("shuffle", map[string]interface{}{"stage": "dispatch", "to": "multi-exponentiation", "m": m, "n": n})
	multiExpArg, err := GetMultiExponentiationArgument(h, MultiExponentiationStatement{
		C: st.CPrime, CA: cA, CBar: target, PK: st.PK, CK: st.CK,
	}, MultiExponentiationWitness{A: aMatrix, R: rVec, Rho: rhoPrime.Negate()}, rnd)
	if err != nil {
		return ShuffleArgument{}, err
	}

	return ShuffleArgument{CA: cA, Product: productArg, MultiExp: multiExpArg}, nil
}

// VerifyShuffleArgument recomputes x1 and the public derivations, then
// verifies the Product and Multi-exponentiation sub-arguments,
// accumulating every failure.
func VerifyShuffleArgument(h hashing.Hash, st ShuffleStatement, arg ShuffleArgument) (*verification.Result, error) {
	n := st.CK.Nu()
	nTotal := st.C.Len()
	if nTotal == 0 || nTotal != st.CPrime.Len() {
		return nil, ccerrors.New(ccerrors.ShapeError, "shuffle statement ciphertext vectors must be non-empty and equal length")
	}
	if n == 0 || nTotal%n != 0 {
		return nil, ccerrors.New(ccerrors.ShapeError, "ciphertext count %d must be a multiple of the commitment key size %d", nTotal, n)
	}
	zq := st.CK.Group().ToZqGroup()
	result := verification.New()

	x1, err := hashing.ChallengeZq(h, zq, shuffleTranscript(st, arg.CA))
	if err != nil {
		return nil, err
	}
	logDebug("shuffle", map[string]interface{}{"stage": "challenge-derived", "side": "verifier", "n": n, "nTotal": nTotal})
	cD, err := derivedShiftedCommitments(st.CK, arg.CA, x1)
	if err != nil {
		return nil, err
	}
	t1, err := permutationMultisetTarget(zq, x1, nTotal)
	if err != nil {
		return nil, err
	}
	logDebug("shuffle", map[string]interface{}{"stage": "dispatch", "to": "product", "n": n, "nTotal": nTotal})
	productResult, err := VerifyProductArgument(h, ProductStatement{CA: cD, B: t1, CK: st.CK}, arg.Product)
	if err != nil {
		return nil, err
	}
	result.Merge("shuffle argument: permutation binding", productResult)

	target, err := weightedCombination(zq, st.C.ToSlice())
	if err != nil {
		return nil, err
	}
	logDebug("shuffle", map[string]interface{}{"stage": "dispatch", "to": "multi-exponentiation", "n": n, "nTotal": nTotal})
	multiExpResult, err := VerifyMultiExponentiationArgument(h, MultiExponentiationStatement{
		C: st.CPrime, CA: arg.CA, CBar: target, PK: st.PK, CK: st.CK,
	}, arg.MultiExp)
	if err != nil {
		return nil, err
	}
	result.Merge("shuffle argument: re-encryption combination", multiExpResult)
	return result, nil
}
