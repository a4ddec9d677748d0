package crypto

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// HashToG1DST / HashToG2DST are the domain separation tags passed to
// gnark-crypto's hash-to-curve routines when deriving the scheme's two
// public generators. They identify this scheme's generator-derivation
// use of hash-to-curve, distinct from any other use of the same curve
// in a host application.
const (
	HashToG1DST = "PS-SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_"
	HashToG2DST = "PS-SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_"
)

// HashToG1 deterministically maps msg to a point in G1 using the
// standard hash-to-curve construction. Two calls with the same msg and
// dst always return the same point.
func HashToG1(msg []byte, dst []byte) (bls12381.G1Affine, error) {
	return bls12381.HashToG1(msg, dst)
}

// HashToG2 deterministically maps msg to a point in G2 using the
// standard hash-to-curve construction.
func HashToG2(msg []byte, dst []byte) (bls12381.G2Affine, error) {
	return bls12381.HashToG2(msg, dst)
}
