// Package crypto provides the arithmetic helpers shared by pkg/proof and
// pkg/core: hash-to-curve generator derivation, constant- and
// variable-time multi-scalar multiplication, and a small object pool for
// the big.Int/group-element churn of proving and verifying.
//
// Everything here is synchronous and free of I/O. Secrets never leave
// this package except as the group elements and scalars the caller
// already owns.
package crypto
