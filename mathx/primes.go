package mathx

import (
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
)

// SmallPrimeGroupMembers returns the first r odd primes that are
// members of group (spec §4.1). It iterates odd candidates from 5
// upward by +2, testing primality with ProbablyPrime and membership
// with GqGroup.isMember, skipping non-members.
//
// Two independent bounds are enforced and signalled distinctly (spec
// §9 Open Question): r must be below 10000, and r must not exceed
// q-4. The generator must also be one of 2, 3, 4, matching the
// three small values the routine's skip-list below 5 assumes.
// Candidates stop at p; if fewer than r members lie below p, it fails
// with PreconditionViolated.
func SmallPrimeGroupMembers(group *GqGroup, r int) (GroupVector[GqElement], error) {
	if r < 0 {
		return GroupVector[GqElement]{}, ccerrors.New(ccerrors.InvalidInput, "r must be non-negative, got %d", r)
	}
	if r >= 10000 {
		return GroupVector[GqElement]{}, ccerrors.New(ccerrors.PreconditionViolated, "r must be < 10000, got %d", r)
	}
	qMinus4 := new(big.Int).Sub(group.q, big.NewInt(4))
	if big.NewInt(int64(r)).Cmp(qMinus4) > 0 {
		return GroupVector[GqElement]{}, ccerrors.New(ccerrors.PreconditionViolated, "r must be <= q-4, got r=%d q-4=%v", r, qMinus4)
	}
	gVal := group.g.Int64()
	if gVal != 2 && gVal != 3 && gVal != 4 {
		return GroupVector[GqElement]{}, ccerrors.New(ccerrors.PreconditionViolated, "generator must be one of 2, 3, 4, got %v", group.g)
	}

	members := make([]GqElement, 0, r)
	candidate := big.NewInt(5)
	two := big.NewInt(2)
	for len(members) < r && candidate.Cmp(group.p) < 0 {
		if candidate.ProbablyPrime(40) {
			if e, err := group.GenerateElement(candidate); err == nil {
				members = append(members, e)
			}
		}
		candidate = new(big.Int).Add(candidate, two)
	}
	if len(members) < r {
		return GroupVector[GqElement]{}, ccerrors.New(ccerrors.PreconditionViolated, "group has only %d small prime members, %d requested", len(members), r)
	}
	return NewGroupVector(members)
}
