package crypto

import (
	"math/big"

	"github.com/anupsv/ps-signatures/internal/common"
	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// MultiScalarMulG1 computes sum(points[i] * scalars[i]) in G1 using a
// direct double-and-add accumulation. Used wherever at least one of the
// exponents is a secret (signing key, blinding factors, hidden
// messages): every term is processed regardless of whether the scalar
// or point is the identity, so the control flow taken does not depend
// on secret values.
func MultiScalarMulG1(points []bls12381.G1Affine, scalars []*big.Int) (bls12381.G1Affine, error) {
	if len(points) != len(scalars) {
		return bls12381.G1Affine{}, &common.UnequalBasesExponentsError{Bases: len(points), Exponents: len(scalars)}
	}
	var result bls12381.G1Jac
	result.X.SetOne()
	result.Y.SetOne()
	result.Z.SetZero()

	for i := range points {
		var tmp bls12381.G1Jac
		tmp.FromAffine(&points[i])
		tmp.ScalarMultiplication(&tmp, scalars[i])
		result.AddAssign(&tmp)
	}

	var out bls12381.G1Affine
	out.FromJacobian(&result)
	return out, nil
}

// MultiScalarMulG2 is the G2 counterpart of MultiScalarMulG1.
func MultiScalarMulG2(points []bls12381.G2Affine, scalars []*big.Int) (bls12381.G2Affine, error) {
	if len(points) != len(scalars) {
		return bls12381.G2Affine{}, &common.UnequalBasesExponentsError{Bases: len(points), Exponents: len(scalars)}
	}
	var result bls12381.G2Jac
	result.X.SetOne()
	result.Y.SetOne()
	result.Z.SetZero()

	for i := range points {
		var tmp bls12381.G2Jac
		tmp.FromAffine(&points[i])
		tmp.ScalarMultiplication(&tmp, scalars[i])
		result.AddAssign(&tmp)
	}

	var out bls12381.G2Affine
	out.FromJacobian(&result)
	return out, nil
}

// MultiScalarMulG1VarTime computes the same sum as MultiScalarMulG1 but
// using gnark-crypto's windowed/Pippenger multi-exponentiation. Only
// for exponents that are public (revealed messages, verifier-side
// recomputation of J_full): the algorithm's running time and memory
// access pattern depend on the scalar bit patterns.
func MultiScalarMulG1VarTime(points []bls12381.G1Affine, scalars []*big.Int) (bls12381.G1Affine, error) {
	if len(points) != len(scalars) {
		return bls12381.G1Affine{}, &common.UnequalBasesExponentsError{Bases: len(points), Exponents: len(scalars)}
	}
	if len(points) == 0 {
		return bls12381.G1Affine{}, nil
	}

	frScalars, err := toFrElements(scalars)
	if err != nil {
		return bls12381.G1Affine{}, err
	}

	var result bls12381.G1Jac
	if _, err := result.MultiExp(points, frScalars, ecc.MultiExpConfig{}); err != nil {
		return bls12381.G1Affine{}, err
	}

	var out bls12381.G1Affine
	out.FromJacobian(&result)
	return out, nil
}

// MultiScalarMulG2VarTime is the G2 counterpart of MultiScalarMulG1VarTime.
func MultiScalarMulG2VarTime(points []bls12381.G2Affine, scalars []*big.Int) (bls12381.G2Affine, error) {
	if len(points) != len(scalars) {
		return bls12381.G2Affine{}, &common.UnequalBasesExponentsError{Bases: len(points), Exponents: len(scalars)}
	}
	if len(points) == 0 {
		return bls12381.G2Affine{}, nil
	}

	frScalars, err := toFrElements(scalars)
	if err != nil {
		return bls12381.G2Affine{}, err
	}

	var result bls12381.G2Jac
	if _, err := result.MultiExp(points, frScalars, ecc.MultiExpConfig{}); err != nil {
		return bls12381.G2Affine{}, err
	}

	var out bls12381.G2Affine
	out.FromJacobian(&result)
	return out, nil
}

func toFrElements(scalars []*big.Int) ([]fr.Element, error) {
	out := make([]fr.Element, len(scalars))
	for i, s := range scalars {
		if s == nil {
			return nil, common.NewGeneralError("nil scalar at index %d", i)
		}
		out[i].SetBigInt(s)
	}
	return out, nil
}
