package core

import (
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/anupsv/ps-signatures/internal/common"
	"github.com/anupsv/ps-signatures/pkg/crypto"
)

// Keygen samples a fresh (Sigkey, Verkey) pair supporting n messages:
// x, y_1..y_n uniform in F, X-tilde = g_tilde^x, Y_i = g^y_i,
// Y-tilde_i = g_tilde^y_i.
func Keygen(n int, params *Params, rng io.Reader) (*Sigkey, *Verkey, error) {
	if n < 1 {
		return nil, nil, common.NewGeneralError("message count must be at least 1, got %d", n)
	}

	x, err := crypto.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}

	y := make([]*big.Int, n)
	for i := range y {
		yi, err := crypto.RandomScalar(rng)
		if err != nil {
			return nil, nil, err
		}
		y[i] = yi
	}

	var xTildeJac bls12381.G2Jac
	var gTildeJac bls12381.G2Jac
	gTildeJac.FromAffine(&params.GTilde)
	xTildeJac.ScalarMultiplication(&gTildeJac, x)
	var xTilde bls12381.G2Affine
	xTilde.FromJacobian(&xTildeJac)

	yGens := make([]bls12381.G1Affine, n)
	yTildeGens := make([]bls12381.G2Affine, n)
	var gJac bls12381.G1Jac
	gJac.FromAffine(&params.G)
	for i, yi := range y {
		var yJac bls12381.G1Jac
		yJac.ScalarMultiplication(&gJac, yi)
		yGens[i].FromJacobian(&yJac)

		var yTildeJac bls12381.G2Jac
		yTildeJac.ScalarMultiplication(&gTildeJac, yi)
		yTildeGens[i].FromJacobian(&yTildeJac)
	}

	sk := &Sigkey{X: x, Y: y}
	vk := &Verkey{XTilde: xTilde, Y: yGens, YTilde: yTildeGens}
	return sk, vk, nil
}
