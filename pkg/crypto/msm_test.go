package crypto

import (
	"crypto/rand"
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

func TestMultiScalarMulG1_MatchesSingleScalarMul(t *testing.T) {
	_, _, g1Gen, _ := bls12381.Generators()

	s, err := RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}

	got, err := MultiScalarMulG1([]bls12381.G1Affine{g1Gen}, []*big.Int{s})
	if err != nil {
		t.Fatalf("MultiScalarMulG1: %v", err)
	}

	var wantJac bls12381.G1Jac
	var genJac bls12381.G1Jac
	genJac.FromAffine(&g1Gen)
	wantJac.ScalarMultiplication(&genJac, s)
	var want bls12381.G1Affine
	want.FromJacobian(&wantJac)

	if !got.Equal(&want) {
		t.Errorf("MultiScalarMulG1 disagrees with direct scalar multiplication")
	}
}

func TestMultiScalarMulG1VarTime_MatchesConstantTime(t *testing.T) {
	_, _, g1Gen, g2Gen := bls12381.Generators()
	_ = g2Gen

	points := make([]bls12381.G1Affine, 4)
	scalars := make([]*big.Int, 4)
	for i := range points {
		s, err := RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		scalars[i] = s
		var pJac bls12381.G1Jac
		var genJac bls12381.G1Jac
		genJac.FromAffine(&g1Gen)
		pJac.ScalarMultiplication(&genJac, big.NewInt(int64(i+1)))
		points[i].FromJacobian(&pJac)
	}

	ct, err := MultiScalarMulG1(points, scalars)
	if err != nil {
		t.Fatalf("MultiScalarMulG1: %v", err)
	}
	vt, err := MultiScalarMulG1VarTime(points, scalars)
	if err != nil {
		t.Fatalf("MultiScalarMulG1VarTime: %v", err)
	}
	if !ct.Equal(&vt) {
		t.Errorf("constant-time and variable-time MSM disagree")
	}
}

func TestMultiScalarMulG2_MatchesSingleScalarMul(t *testing.T) {
	_, _, _, g2Gen := bls12381.Generators()

	s, err := RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}

	got, err := MultiScalarMulG2([]bls12381.G2Affine{g2Gen}, []*big.Int{s})
	if err != nil {
		t.Fatalf("MultiScalarMulG2: %v", err)
	}

	var wantJac bls12381.G2Jac
	var genJac bls12381.G2Jac
	genJac.FromAffine(&g2Gen)
	wantJac.ScalarMultiplication(&genJac, s)
	var want bls12381.G2Affine
	want.FromJacobian(&wantJac)

	if !got.Equal(&want) {
		t.Errorf("MultiScalarMulG2 disagrees with direct scalar multiplication")
	}
}

func TestMultiScalarMul_UnequalLengthsError(t *testing.T) {
	_, _, g1Gen, _ := bls12381.Generators()
	_, err := MultiScalarMulG1([]bls12381.G1Affine{g1Gen, g1Gen}, []*big.Int{big.NewInt(1)})
	if err == nil {
		t.Fatalf("expected error for mismatched bases/exponents")
	}
}

func TestMultiScalarMulVarTime_EmptyInput(t *testing.T) {
	got, err := MultiScalarMulG1VarTime(nil, nil)
	if err != nil {
		t.Fatalf("MultiScalarMulG1VarTime: %v", err)
	}
	if !got.IsInfinity() {
		t.Errorf("expected identity for empty MSM")
	}
}
