package crypto

import (
	"fmt"
	"io"
	"math/big"

	"github.com/anupsv/ps-signatures/internal/common"
)

// RandomScalar samples a uniform field element in [0, Order). Callers
// needing a non-zero scalar (e.g. the PoKOfSignature blinding factors
// r, t) should reject a zero result themselves; zero occurs with
// negligible probability but the field does not exclude it by
// construction.
func RandomScalar(rng io.Reader) (*big.Int, error) {
	if rng == nil {
		return nil, fmt.Errorf("nil random source")
	}
	return ConstantTimeRandom(rng, common.Order)
}

// RandomNonZeroScalar samples a uniform scalar in [1, Order), retrying
// on the negligible chance of a zero draw.
func RandomNonZeroScalar(rng io.Reader) (*big.Int, error) {
	for {
		s, err := RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		if s.Sign() != 0 {
			return s, nil
		}
	}
}

// ConstantTimeRandom draws a uniform value in [0, max) by oversampling
// and reducing: the byte buffer carries 64 bits of entropy beyond
// max.BitLen(), so the bias introduced by the final Mod is bounded by
// 2^-64. A single draw always suffices; there is no rejection loop and
// no branch on the sampled value.
func ConstantTimeRandom(rng io.Reader, max *big.Int) (*big.Int, error) {
	byteLen := (max.BitLen() + 64 + 7) / 8

	buf := make([]byte, byteLen)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	result := new(big.Int).SetBytes(buf)
	return result.Mod(result, max), nil
}
