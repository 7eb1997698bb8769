package randomness

import (
	"crypto/sha256"
	"encoding/binary"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"

	"github.com/streetU/crypto-primitives/ccerrors"
)

// HKDFExpand implements the KDF capability of spec §6: HKDF-Expand
// with SHA-256, producing length bytes of keying material from a
// pseudo-random key and labelled info segments.
func HKDFExpand(prk, info []byte, length int) ([]byte, error) {
	if length < 0 {
		return nil, ccerrors.New(ccerrors.InvalidInput, "length must be non-negative, got %d", length)
	}
	reader := hkdf.Expand(sha256.New, prk, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, ccerrors.New(ccerrors.InvalidInput, "HKDF-Expand failed: %v", err)
	}
	return out, nil
}

// KDFToZq derives a uniform element of Zq from prk/info via HKDF-
// Expand plus rejection sampling (spec §6: "rejection sampling to
// eliminate modulo bias"), pulling byteLen(q) bytes per attempt and
// appending an 8-byte big-endian counter to info on each retry so
// successive draws are independent. The counter is wide enough that
// it cannot wrap back onto an already-tried value within any
// practical number of rejections.
func KDFToZq(prk, info []byte, q *big.Int) (*big.Int, error) {
	if q == nil || q.Sign() <= 0 {
		return nil, ccerrors.New(ccerrors.InvalidInput, "q must be positive, got %v", q)
	}
	bitLen := q.BitLen()
	byteLen := (bitLen + 7) / 8
	excessBits := byteLen*8 - bitLen
	mask := byte(0xFF >> excessBits)

	var counterBytes [8]byte
	for counter := uint64(0); ; counter++ {
		binary.BigEndian.PutUint64(counterBytes[:], counter)
		iterInfo := append(append([]byte{}, info...), counterBytes[:]...)
		buf, err := HKDFExpand(prk, iterInfo, byteLen)
		if err != nil {
			return nil, err
		}
		if byteLen > 0 {
			buf[0] &= mask
		}
		candidate := new(big.Int).SetBytes(buf)
		if candidate.Cmp(q) < 0 {
			return candidate, nil
		}
	}
}
