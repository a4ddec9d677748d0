package core

import (
	"github.com/anupsv/ps-signatures/internal/common"
	"github.com/anupsv/ps-signatures/pkg/crypto"
)

// NewParams derives the pair (g, g_tilde) from label via hash-to-curve.
// The derivation is pure and deterministic: the same label always
// yields the same params, so two parties agree on them without a
// handshake as long as they agree on the label.
func NewParams(label []byte) (*Params, error) {
	gLabel := append(append([]byte{}, label...), []byte(common.GeneratorG1Suffix)...)
	g, err := crypto.HashToG1(gLabel, []byte(crypto.HashToG1DST))
	if err != nil {
		return nil, err
	}
	gTildeLabel := append(append([]byte{}, label...), []byte(common.GeneratorG2Suffix)...)
	gTilde, err := crypto.HashToG2(gTildeLabel, []byte(crypto.HashToG2DST))
	if err != nil {
		return nil, err
	}
	return &Params{G: g, GTilde: gTilde}, nil
}

// DefaultParams derives params from the module's default label, for
// callers that do not need a dedicated per-application domain.
func DefaultParams() (*Params, error) {
	return NewParams([]byte(common.DefaultLabel))
}
