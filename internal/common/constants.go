package common

import (
	"math/big"
)

// Order is the order of the BLS12-381 scalar field Fr, i.e. the order
// of both G1 and G2. Kept as a single package-level value rather than
// read off fr.Modulus() at every call site; scalar sampling, signing,
// message and challenge hashing and the Schnorr response arithmetic all
// reduce against this.
var Order, _ = new(big.Int).SetString("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)

// Domain separation suffixes appended to a caller-supplied label when
// deriving the two public generators via hash-to-curve. The "label : g"
// / "label : g_tilde" convention is kept stable for interop: changing
// either suffix changes every derived generator.
const (
	GeneratorG1Suffix = " : g"
	GeneratorG2Suffix = " : g_tilde"
)

// DefaultLabel is used when a caller does not supply its own
// application-specific domain label to Params.
const DefaultLabel = "ps-signatures-default-params"
