package core

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/anupsv/ps-signatures/internal/common"
)

// Params holds the scheme's two deterministic public generators,
// derived once per domain label and shared by every key pair, signature
// and proof that uses it.
type Params struct {
	G      bls12381.G1Affine
	GTilde bls12381.G2Affine
}

// Sigkey is the PS signing key. Y is retained alongside X because
// signing needs it to compute sigma2; callers that only need to verify
// or present proofs should use the corresponding Verkey instead and
// never see Sigkey at all.
type Sigkey struct {
	X *big.Int
	Y []*big.Int
}

// Verkey is the PS verification key: X-tilde plus the per-message Y and
// Y-tilde generator sequences. len(Y) == len(YTilde) == the number of
// messages this key supports.
type Verkey struct {
	XTilde bls12381.G2Affine
	Y      []bls12381.G1Affine
	YTilde []bls12381.G2Affine
}

// Validate checks the one structural invariant a Verkey must hold:
// that its two per-message generator sequences agree in length.
func (vk *Verkey) Validate() error {
	if len(vk.Y) != len(vk.YTilde) {
		return &common.InvalidVerkeyError{Y: len(vk.Y), YTilde: len(vk.YTilde)}
	}
	return nil
}

// MessageCount returns the number of messages vk supports.
func (vk *Verkey) MessageCount() int {
	return len(vk.YTilde)
}

// Signature is a PS signature (sigma1, sigma2) on a message vector.
type Signature struct {
	Sigma1 bls12381.G1Affine
	Sigma2 bls12381.G1Affine
}
