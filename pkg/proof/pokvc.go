package proof

import (
	"bytes"
	"io"
	"math/big"

	"github.com/anupsv/ps-signatures/internal/common"
	"github.com/anupsv/ps-signatures/pkg/crypto"
)

// ProverCommitting accumulates an ordered list of (base, blinding)
// pairs before the commitment T = prod(base_j^blinding_j) is fixed.
// Ordering of Commit calls is significant and preserved in Bases.
type ProverCommitting[P any] struct {
	ops       crypto.GroupOps[P]
	bases     []P
	blindings []*big.Int
}

// NewProverCommitting starts a fresh commit phase for group P.
func NewProverCommitting[P any](ops crypto.GroupOps[P]) *ProverCommitting[P] {
	return &ProverCommitting[P]{ops: ops}
}

// Commit appends a base to the list. If blinding is nil a fresh random
// blinding is sampled from rng.
func (pc *ProverCommitting[P]) Commit(base P, blinding *big.Int, rng io.Reader) error {
	if blinding == nil {
		b, err := crypto.RandomScalar(rng)
		if err != nil {
			return err
		}
		blinding = b
	}
	pc.bases = append(pc.bases, base)
	pc.blindings = append(pc.blindings, blinding)
	return nil
}

// Finish computes T via constant-time multi-scalar multiplication
// (every blinding here is secret) and returns the committed state.
func (pc *ProverCommitting[P]) Finish() (*ProverCommitted[P], error) {
	t, err := pc.ops.MultiScalarMul(pc.bases, pc.blindings)
	if err != nil {
		return nil, err
	}
	return &ProverCommitted[P]{
		ops:       pc.ops,
		Bases:     pc.bases,
		Blindings: pc.blindings,
		T:         t,
	}, nil
}

// ProverCommitted is the finished commit phase: the base list, its
// blindings, and the commitment T. A single-use value consumed by
// GenProof.
type ProverCommitted[P any] struct {
	ops       crypto.GroupOps[P]
	Bases     []P
	Blindings []*big.Int
	T         P
}

// ToBytes concatenates the canonical encodings of each base followed
// by T — the transcript bytes the Fiat-Shamir challenge is derived
// from, before any caller-supplied extra bytes are mixed in.
func (pc *ProverCommitted[P]) ToBytes() []byte {
	var buf bytes.Buffer
	for _, b := range pc.Bases {
		buf.Write(pc.ops.Marshal(b))
	}
	buf.Write(pc.ops.Marshal(pc.T))
	return buf.Bytes()
}

// GenChallenge returns H(ToBytes() || extra) reduced modulo the field
// order. extra lets a caller bind additional public values (e.g. the
// randomized signature and J) into the same challenge.
func (pc *ProverCommitted[P]) GenChallenge(extra []byte) *big.Int {
	return HashToChallenge(pc.ToBytes(), extra)
}

// GenProof produces responses s_j = blinding_j + c*secret_j for a
// caller-supplied challenge, consuming the committed state. len(secrets)
// must equal len(Blindings).
func (pc *ProverCommitted[P]) GenProof(challenge *big.Int, secrets []*big.Int) (*Proof[P], error) {
	if len(secrets) != len(pc.Blindings) {
		return nil, &common.UnequalBasesExponentsError{Bases: len(pc.Blindings), Exponents: len(secrets)}
	}
	responses := make([]*big.Int, len(secrets))
	for j, w := range secrets {
		s := new(big.Int).Mul(challenge, w)
		s.Add(s, pc.Blindings[j])
		s.Mod(s, common.Order)
		responses[j] = s
	}
	return &Proof[P]{T: pc.T, Responses: responses}, nil
}

// Proof is the non-interactive PoK-VC proof: the commitment T and the
// response vector.
type Proof[P any] struct {
	T         P
	Responses []*big.Int
}

// VerifyPoKVC checks prod(bases_j^responses_j) == T + commitment^challenge,
// where commitment is the value the prover claims to know an opening
// of. Every input here is public, so the multi-scalar multiplications
// are evaluated in variable time.
func VerifyPoKVC[P any](ops crypto.GroupOps[P], proof *Proof[P], bases []P, commitment P, challenge *big.Int) (bool, error) {
	if len(bases) != len(proof.Responses) {
		return false, &common.UnequalBasesExponentsError{Bases: len(bases), Exponents: len(proof.Responses)}
	}
	lhs, err := ops.MultiScalarMulVarTime(bases, proof.Responses)
	if err != nil {
		return false, err
	}
	cCommitment, err := ops.MultiScalarMulVarTime([]P{commitment}, []*big.Int{challenge})
	if err != nil {
		return false, err
	}
	rhs := ops.Add(proof.T, cCommitment)
	return bytes.Equal(ops.Marshal(lhs), ops.Marshal(rhs)), nil
}
