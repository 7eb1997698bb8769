// Package commitment implements the Pedersen vector/matrix commitment
// scheme of spec §4.4, including deterministic, verifiable commitment
// key derivation from a Gq group.
package commitment

import (
	"encoding/binary"
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
	"github.com/streetU/crypto-primitives/mathx"
	"github.com/streetU/crypto-primitives/randomness"
)

// Key is a Pedersen commitment key (h, g_1..g_nu): h and every g_i
// live in the same Gq, are not the identity, and are not the group
// generator (spec §3).
type Key struct {
	h  mathx.GqElement
	gs mathx.GroupVector[mathx.GqElement]
}

// NewKey validates h and gs: shared group, non-identity, not equal to
// the generator, and nu >= 1.
func NewKey(h mathx.GqElement, gs mathx.GroupVector[mathx.GqElement]) (Key, error) {
	if gs.Len() == 0 {
		return Key{}, ccerrors.New(ccerrors.InvalidInput, "commitment key needs at least one g_i")
	}
	group := h.Group()
	gen := group.GeneratorElement()
	if h.IsIdentity() || h.Equal(gen) {
		return Key{}, ccerrors.New(ccerrors.InvalidInput, "h must not be the identity or the generator")
	}
	for i := 0; i < gs.Len(); i++ {
		g, _ := gs.Get(i)
		if !g.Group().Equal(group) {
			return Key{}, ccerrors.New(ccerrors.GroupMismatch, "g_%d is not in h's group", i)
		}
		if g.IsIdentity() || g.Equal(gen) {
			return Key{}, ccerrors.New(ccerrors.InvalidInput, "g_%d must not be the identity or the generator", i)
		}
	}
	return Key{h: h, gs: gs}, nil
}

// H returns the key's h component.
func (k Key) H() mathx.GqElement { return k.h }

// Gs returns the key's g_1..g_nu vector.
func (k Key) Gs() mathx.GroupVector[mathx.GqElement] { return k.gs }

// Nu returns the number of g components.
func (k Key) Nu() int { return k.gs.Len() }

// Group returns the shared Gq group.
func (k Key) Group() *mathx.GqGroup { return k.h.Group() }

// DeriveVerifiableKey deterministically derives a commitment key of
// size k (i.e. k+1 distinct elements h, g_1..g_k) from group via
// repeated KDF-to-Zq-then-exponentiate-the-generator draws, seeded by
// a label tied to (p, q, g) so every party reproduces the same key
// (spec §4.4). Candidates equal to the identity, the generator, or a
// value already chosen are rejected and redrawn — not "skipped
// forward" — with an 8-byte big-endian counter appended to the KDF
// info segment advancing on every attempt, including rejected ones,
// so the process is deterministic and exactly reproducible. The
// counter is wide enough that it cannot wrap back onto an
// already-rejected info value even when k approaches its q-3 bound.
func DeriveVerifiableKey(group *mathx.GqGroup, k int) (Key, error) {
	if k <= 0 {
		return Key{}, ccerrors.New(ccerrors.InvalidInput, "k must be positive, got %d", k)
	}
	if qMinus3 := new(big.Int).Sub(group.Q(), big.NewInt(3)); big.NewInt(int64(k)).Cmp(qMinus3) > 0 {
		return Key{}, ccerrors.New(ccerrors.InvalidInput, "k must be <= q-3, got k=%d", k)
	}
	seed := seedFor(group)
	gen := group.GeneratorElement()

	chosen := make(map[string]bool)
	draw := func(counter *uint64) (mathx.GqElement, error) {
		for {
			var counterBytes [8]byte
			binary.BigEndian.PutUint64(counterBytes[:], *counter)
			info := append(append([]byte{}, seed...), counterBytes[:]...)
			*counter++
			x, err := randomness.KDFToZq(seed, info, group.Q())
			if err != nil {
				return mathx.GqElement{}, err
			}
			zq := group.ToZqGroup()
			xElem, err := zq.GenerateElement(x)
			if err != nil {
				return mathx.GqElement{}, err
			}
			candidate, err := gen.Exponentiate(xElem)
			if err != nil {
				return mathx.GqElement{}, err
			}
			if candidate.IsIdentity() || candidate.Equal(gen) {
				continue
			}
			key := string(candidate.Bytes())
			if chosen[key] {
				continue
			}
			chosen[key] = true
			return candidate, nil
		}
	}

	var counter uint64
	h, err := draw(&counter)
	if err != nil {
		return Key{}, err
	}
	gs := make([]mathx.GqElement, k)
	for i := 0; i < k; i++ {
		gs[i], err = draw(&counter)
		if err != nil {
			return Key{}, err
		}
	}
	gsVec, err := mathx.NewGroupVector(gs)
	if err != nil {
		return Key{}, err
	}
	return NewKey(h, gsVec)
}

func seedFor(group *mathx.GqGroup) []byte {
	var seed []byte
	seed = append(seed, []byte("crypto-primitives/commitment-key/")...)
	seed = append(seed, group.P().Bytes()...)
	seed = append(seed, group.Q().Bytes()...)
	seed = append(seed, group.G().Bytes()...)
	return seed
}
