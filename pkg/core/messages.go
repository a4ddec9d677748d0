package core

import (
	"crypto/sha256"
	"math/big"

	"github.com/anupsv/ps-signatures/internal/common"
)

// MessageFromBytes deterministically maps an attribute value to a
// scalar in the message field by SHA-256 hashing it and reducing
// modulo the group order. Callers that already work with field
// elements directly (e.g. numeric attributes encoded as big.Int) do
// not need this; it exists for the common case of signing strings —
// names, dates, claim values — the way a credential issuer would.
func MessageFromBytes(data []byte) *big.Int {
	h := sha256.Sum256(data)
	m := new(big.Int).SetBytes(h[:])
	return m.Mod(m, common.Order)
}

// MessageFromString is MessageFromBytes for a string attribute value.
func MessageFromString(s string) *big.Int {
	return MessageFromBytes([]byte(s))
}
