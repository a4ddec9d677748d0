package core

import (
	"github.com/anupsv/ps-signatures/internal/common"
)

// Aliases for the module's error taxonomy. The concrete types live in
// an internal package; these aliases are what external callers match
// against with errors.As / errors.Is.
type (
	InvalidVerkeyError           = common.InvalidVerkeyError
	UnsupportedMessageCountError = common.UnsupportedMessageCountError
	UnequalBasesExponentsError   = common.UnequalBasesExponentsError
	GeneralError                 = common.GeneralError
)

var (
	ErrInvalidSignature = common.ErrInvalidSignature
	ErrInvalidProof     = common.ErrInvalidProof
)
