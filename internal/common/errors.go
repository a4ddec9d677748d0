package common

import (
	"errors"
	"fmt"
)

// InvalidVerkeyError reports a verification key whose Y and YTilde
// generator slices disagree in length.
type InvalidVerkeyError struct {
	Y      int
	YTilde int
}

func (e *InvalidVerkeyError) Error() string {
	return fmt.Sprintf("invalid verkey: len(Y)=%d len(YTilde)=%d", e.Y, e.YTilde)
}

// UnsupportedMessageCountError reports a message vector whose length
// does not match the key's supported count.
type UnsupportedMessageCountError struct {
	Got  int
	Want int
}

func (e *UnsupportedMessageCountError) Error() string {
	return fmt.Sprintf("unsupported number of messages: got %d, key supports %d", e.Got, e.Want)
}

// UnequalBasesExponentsError reports a PoK-VC call where the base list
// and the exponent (secret or response) list disagree in length.
type UnequalBasesExponentsError struct {
	Bases     int
	Exponents int
}

func (e *UnequalBasesExponentsError) Error() string {
	return fmt.Sprintf("unequal number of bases (%d) and exponents (%d)", e.Bases, e.Exponents)
}

// GeneralError carries a human-readable precondition failure that does
// not warrant its own type: an out-of-range index, a blinding pinned at
// a revealed index, or similar.
type GeneralError struct {
	Msg string
}

func (e *GeneralError) Error() string {
	return e.Msg
}

// NewGeneralError builds a GeneralError from a format string, mirroring
// fmt.Errorf without wrapping (there is nothing underneath to wrap at
// this boundary).
func NewGeneralError(format string, args ...interface{}) error {
	return &GeneralError{Msg: fmt.Sprintf(format, args...)}
}

// Sentinel errors for cryptographic verification failures. Verification
// functions report these outcomes as booleans and reserve error returns
// for structural problems; the sentinels exist for the few call sites
// that want an error value instead of a bool.
var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidProof     = errors.New("invalid proof")
)
