package crypto

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// GroupOps is the capability set pkg/proof's generic Schnorr proof
// needs from a source group: scalar multiplication (constant- and
// variable-time, both folded into multi-scalar forms), addition,
// canonical encoding and an identity test. bls12381.G1Affine and
// bls12381.G2Affine are types this module does not own, so the
// constraint is expressed as a strategy value rather than a method set
// on the type parameter itself — G1Ops and G2Ops below are its two
// instantiations.
type GroupOps[P any] interface {
	// MultiScalarMul computes sum(points[i]*scalars[i]) using the
	// constant-time accumulation, for use when any scalar is secret.
	MultiScalarMul(points []P, scalars []*big.Int) (P, error)
	// MultiScalarMulVarTime is the public-value counterpart of
	// MultiScalarMul.
	MultiScalarMulVarTime(points []P, scalars []*big.Int) (P, error)
	// Add returns a+b.
	Add(a, b P) P
	// Marshal returns the canonical byte encoding of p.
	Marshal(p P) []byte
	// IsIdentity reports whether p is the group identity.
	IsIdentity(p P) bool
}

// G1Ops implements GroupOps[bls12381.G1Affine].
type G1Ops struct{}

func (G1Ops) MultiScalarMul(points []bls12381.G1Affine, scalars []*big.Int) (bls12381.G1Affine, error) {
	return MultiScalarMulG1(points, scalars)
}

func (G1Ops) MultiScalarMulVarTime(points []bls12381.G1Affine, scalars []*big.Int) (bls12381.G1Affine, error) {
	return MultiScalarMulG1VarTime(points, scalars)
}

func (G1Ops) Add(a, b bls12381.G1Affine) bls12381.G1Affine {
	var aj bls12381.G1Jac
	aj.FromAffine(&a)
	var bj bls12381.G1Jac
	bj.FromAffine(&b)
	aj.AddAssign(&bj)
	var out bls12381.G1Affine
	out.FromJacobian(&aj)
	return out
}

func (G1Ops) Marshal(p bls12381.G1Affine) []byte {
	b := p.Marshal()
	return b[:]
}

func (G1Ops) IsIdentity(p bls12381.G1Affine) bool {
	return p.IsInfinity()
}

// G2Ops implements GroupOps[bls12381.G2Affine].
type G2Ops struct{}

func (G2Ops) MultiScalarMul(points []bls12381.G2Affine, scalars []*big.Int) (bls12381.G2Affine, error) {
	return MultiScalarMulG2(points, scalars)
}

func (G2Ops) MultiScalarMulVarTime(points []bls12381.G2Affine, scalars []*big.Int) (bls12381.G2Affine, error) {
	return MultiScalarMulG2VarTime(points, scalars)
}

func (G2Ops) Add(a, b bls12381.G2Affine) bls12381.G2Affine {
	var aj bls12381.G2Jac
	aj.FromAffine(&a)
	var bj bls12381.G2Jac
	bj.FromAffine(&b)
	aj.AddAssign(&bj)
	var out bls12381.G2Affine
	out.FromJacobian(&aj)
	return out
}

func (G2Ops) Marshal(p bls12381.G2Affine) []byte {
	b := p.Marshal()
	return b[:]
}

func (G2Ops) IsIdentity(p bls12381.G2Affine) bool {
	return p.IsInfinity()
}
