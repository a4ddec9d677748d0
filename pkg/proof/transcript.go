package proof

import (
	"crypto/sha256"
	"math/big"

	"github.com/anupsv/ps-signatures/internal/common"
)

// HashToChallenge hashes transcript bytes to a field element via
// SHA-256 followed by reduction modulo the scalar field order. This is
// the Fiat-Shamir step shared by PoK-VC's gen_challenge and the
// PoKOfSignature-level challenge binding multiple simultaneous proofs.
func HashToChallenge(transcript ...[]byte) *big.Int {
	h := sha256.New()
	for _, t := range transcript {
		h.Write(t)
	}
	digest := h.Sum(nil)
	c := new(big.Int).SetBytes(digest)
	return c.Mod(c, common.Order)
}
