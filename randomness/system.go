package randomness

import (
	"crypto/cipher"
	"math/big"
	"sync"

	"go.dedis.ch/kyber/v4/util/random"

	"github.com/streetU/crypto-primitives/ccerrors"
)

// SystemProvider is the production Randomness implementation. It
// draws from a crypto/rand-seeded cipher.Stream (go.dedis.ch/kyber's
// random.New(), the same construction the teacher's shuffle/shuffle.go
// and util/Util.go use to pick ElGamal exponents) and turns the
// stream's uniform bits into a uniform integer below an arbitrary
// modulus via rejection sampling, rather than via modulo reduction,
// which would introduce a bias proportional to upperExclusive's
// distance from a power of two.
//
// A cipher.Stream is not safe for concurrent use, so SystemProvider
// serialises access with a mutex (spec §5: "the randomness provider
// ... must be thread-safe if shared").
type SystemProvider struct {
	mu     sync.Mutex
	stream cipher.Stream
}

// NewSystemProvider returns a SystemProvider seeded from the OS CSPRNG.
func NewSystemProvider() *SystemProvider {
	return &SystemProvider{stream: random.New()}
}

// GenBytes implements Provider.
func (p *SystemProvider) GenBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ccerrors.New(ccerrors.InvalidInput, "n must be non-negative, got %d", n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	buf := make([]byte, n)
	p.stream.XORKeyStream(buf, buf)
	return buf, nil
}

// GenInteger implements Provider via rejection sampling: draw
// ceil(bitlen(upperExclusive)/8) bytes, mask off the excess high
// bits, and retry on out-of-range draws. Expected number of draws is
// below 2 for any modulus.
func (p *SystemProvider) GenInteger(upperExclusive *big.Int) (*big.Int, error) {
	if upperExclusive == nil || upperExclusive.Sign() <= 0 {
		return nil, ccerrors.New(ccerrors.InvalidInput, "upperExclusive must be positive, got %v", upperExclusive)
	}
	bitLen := upperExclusive.BitLen()
	byteLen := (bitLen + 7) / 8
	excessBits := byteLen*8 - bitLen
	mask := byte(0xFF >> excessBits)

	for {
		buf, err := p.GenBytes(byteLen)
		if err != nil {
			return nil, err
		}
		if byteLen > 0 {
			buf[0] &= mask
		}
		candidate := new(big.Int).SetBytes(buf)
		if candidate.Cmp(upperExclusive) < 0 {
			return candidate, nil
		}
	}
}
