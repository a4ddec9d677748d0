package core

import (
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/anupsv/ps-signatures/internal/common"
	"github.com/anupsv/ps-signatures/pkg/crypto"
)

// Sign produces a PS signature on messages under sk. len(messages) must
// equal len(sk.Y).
//
// h is sampled as g^u for a fresh nonzero u rather than drawn directly
// from G1; both choices are secure when u is uniform, and g^u keeps
// signing in terms of the one already-derived generator.
func Sign(sk *Sigkey, params *Params, messages []*big.Int, rng io.Reader) (*Signature, error) {
	if len(messages) != len(sk.Y) {
		return nil, &common.UnsupportedMessageCountError{Got: len(messages), Want: len(sk.Y)}
	}

	u, err := crypto.RandomNonZeroScalar(rng)
	if err != nil {
		return nil, err
	}

	var gJac, hJac bls12381.G1Jac
	gJac.FromAffine(&params.G)
	hJac.ScalarMultiplication(&gJac, u)

	exponent := new(big.Int).Set(sk.X)
	for i, m := range messages {
		term := new(big.Int).Mul(sk.Y[i], m)
		exponent.Add(exponent, term)
	}
	exponent.Mod(exponent, common.Order)

	var sigma2Jac bls12381.G1Jac
	sigma2Jac.ScalarMultiplication(&hJac, exponent)

	var sig Signature
	sig.Sigma1.FromJacobian(&hJac)
	sig.Sigma2.FromJacobian(&sigma2Jac)
	return &sig, nil
}

// Verify checks that sig is a valid PS signature on messages under vk.
// Returns (false, nil) for any cryptographic failure — including the
// sigma1-is-identity edge case — and a non-nil error only for
// structural problems (wrong message count).
func Verify(vk *Verkey, params *Params, messages []*big.Int, sig *Signature) (bool, error) {
	n := vk.MessageCount()
	if len(messages) != n {
		return false, &common.UnsupportedMessageCountError{Got: len(messages), Want: n}
	}
	if (crypto.G1Ops{}).IsIdentity(sig.Sigma1) {
		return false, nil
	}

	bases := crypto.Default.GetG2AffineSlice(1 + n)
	scalars := crypto.Default.GetBigIntSlice(1 + n)
	defer func() {
		crypto.Default.PutG2AffineSlice(bases)
		crypto.Default.PutBigIntSlice(scalars)
	}()
	bases = append(bases, vk.XTilde)
	scalars = append(scalars, big.NewInt(1))
	bases = append(bases, vk.YTilde...)
	scalars = append(scalars, messages...)

	a, err := crypto.MultiScalarMulG2(bases, scalars)
	if err != nil {
		return false, err
	}

	var negSigma2Jac bls12381.G1Jac
	negSigma2Jac.FromAffine(&sig.Sigma2)
	negSigma2Jac.Neg(&negSigma2Jac)
	var negSigma2 bls12381.G1Affine
	negSigma2.FromJacobian(&negSigma2Jac)

	result, err := bls12381.Pair(
		[]bls12381.G1Affine{sig.Sigma1, negSigma2},
		[]bls12381.G2Affine{a, params.GTilde},
	)
	if err != nil {
		return false, err
	}
	return result.IsOne(), nil
}
