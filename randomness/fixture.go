package randomness

import (
	"math/big"

	"github.com/streetU/crypto-primitives/ccerrors"
)

// FixtureProvider is a deterministic Provider that replays a prefilled
// queue of outputs, for reproducing test vectors and writing unit
// tests whose expected output depends on exactly which samples were
// drawn (spec §9: "fixtures that prefill a queue of outputs... must
// preserve the exact number-of-samples contract"). Each call consumes
// exactly one queued value; calling past the end of either queue is a
// test bug, not a recoverable runtime condition, and panics.
type FixtureProvider struct {
	integers []*big.Int
	bytes    [][]byte
	intPos   int
	bytePos  int
}

// NewFixtureProvider builds a FixtureProvider that returns integers
// and byteStrings in order, independently, as GenInteger/GenBytes are
// called.
func NewFixtureProvider(integers []*big.Int, byteStrings [][]byte) *FixtureProvider {
	return &FixtureProvider{integers: integers, bytes: byteStrings}
}

// GenInteger implements Provider by popping the next queued integer.
// The value is not checked against upperExclusive: callers constructing
// a fixture are responsible for supplying in-range values, matching
// the contract that a mock must not silently reinterpret the protocol.
func (p *FixtureProvider) GenInteger(upperExclusive *big.Int) (*big.Int, error) {
	if upperExclusive == nil || upperExclusive.Sign() <= 0 {
		return nil, ccerrors.New(ccerrors.InvalidInput, "upperExclusive must be positive, got %v", upperExclusive)
	}
	if p.intPos >= len(p.integers) {
		panic("randomness: FixtureProvider integer queue exhausted")
	}
	v := p.integers[p.intPos]
	p.intPos++
	return v, nil
}

// GenBytes implements Provider by popping the next queued byte string.
func (p *FixtureProvider) GenBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ccerrors.New(ccerrors.InvalidInput, "n must be non-negative, got %d", n)
	}
	if p.bytePos >= len(p.bytes) {
		panic("randomness: FixtureProvider byte queue exhausted")
	}
	v := p.bytes[p.bytePos]
	p.bytePos++
	if len(v) != n {
		panic("randomness: FixtureProvider byte string length mismatch")
	}
	return v, nil
}
