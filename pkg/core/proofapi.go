package core

import (
	"io"
	"math/big"

	"github.com/anupsv/ps-signatures/pkg/proof"
)

// Presentation is a selective-disclosure proof over a signature: which
// messages are revealed (and their values), and the compiled
// Fiat-Shamir proof of knowledge of the rest plus the signature's
// validity.
type Presentation struct {
	Proof    *proof.PoKOfSignatureProof
	Revealed map[int]*big.Int
}

func verkeyView(vk *Verkey, params *Params) proof.VerkeyView {
	return proof.VerkeyView{GTilde: params.GTilde, XTilde: vk.XTilde, YTilde: vk.YTilde}
}

func revealedMap(messages []*big.Int, revealedIndices []int) map[int]*big.Int {
	revealed := make(map[int]*big.Int, len(revealedIndices))
	for _, i := range revealedIndices {
		revealed[i] = messages[i]
	}
	return revealed
}

// BeginPresentation starts a proving session: it randomizes sig,
// builds the committed element J and the PoK-VC commit phase, but does
// not yet fix a challenge. Use this directly (instead of
// NewPresentation) when the challenge must be shared across several
// simultaneous presentations; otherwise NewPresentation is the simpler
// single-proof entry point.
func BeginPresentation(
	sig *Signature,
	vk *Verkey,
	params *Params,
	messages []*big.Int,
	revealedIndices []int,
	blindings map[int]*big.Int,
	rng io.Reader,
) (*proof.PoKOfSignature, map[int]*big.Int, error) {
	pok, err := proof.InitPoKOfSignature(sig.Sigma1, sig.Sigma2, verkeyView(vk, params), messages, revealedIndices, blindings, rng)
	if err != nil {
		return nil, nil, err
	}
	return pok, revealedMap(messages, revealedIndices), nil
}

// FinishPresentation compiles the proof for the given challenge into a
// Presentation, consuming pok's working state.
func FinishPresentation(pok *proof.PoKOfSignature, challenge *big.Int, revealed map[int]*big.Int) (*Presentation, error) {
	p, err := pok.GenProof(challenge)
	if err != nil {
		return nil, err
	}
	return &Presentation{Proof: p, Revealed: revealed}, nil
}

// NewPresentation builds a single self-contained presentation: begin,
// derive its own challenge, finish.
func NewPresentation(
	sig *Signature,
	vk *Verkey,
	params *Params,
	messages []*big.Int,
	revealedIndices []int,
	blindings map[int]*big.Int,
	rng io.Reader,
) (*Presentation, error) {
	pok, revealed, err := BeginPresentation(sig, vk, params, messages, revealedIndices, blindings, rng)
	if err != nil {
		return nil, err
	}
	return FinishPresentation(pok, pok.GenChallenge(), revealed)
}

// LinkPresentations computes a single Fiat-Shamir challenge over every
// pok's transcript bytes and compiles each into a Presentation with
// that shared challenge. Two presentations built this way, with the
// same blinding pinned for the same hidden message in both
// BeginPresentation calls, let a verifier confirm the messages are
// equal without learning them (compare Presentation.Proof's
// ResponseForMessage across the pair).
func LinkPresentations(poks []*proof.PoKOfSignature, revealedList []map[int]*big.Int) ([]*Presentation, error) {
	challenge := proof.ComputeLinkedChallenge(poks...)
	out := make([]*Presentation, len(poks))
	for i, pok := range poks {
		p, err := FinishPresentation(pok, challenge, revealedList[i])
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Verify recomputes this presentation's challenge from its own
// transcript bytes and checks it against vk and params. Use
// VerifyLinked instead when the presentation was produced by
// LinkPresentations.
func (p *Presentation) Verify(vk *Verkey, params *Params) (bool, error) {
	vv := verkeyView(vk, params)
	challenge := proof.RecomputeChallenge(p.Proof, vv, p.Revealed)
	return proof.VerifySignatureProof(p.Proof, vv, p.Revealed, challenge)
}

// VerifyLinked checks a set of presentations that share a single
// Fiat-Shamir challenge derived from all of their transcripts together.
func VerifyLinked(presentations []*Presentation, vks []*Verkey, params []*Params) (bool, error) {
	proofs := make([]*proof.PoKOfSignatureProof, len(presentations))
	vvs := make([]proof.VerkeyView, len(presentations))
	revealedList := make([]map[int]*big.Int, len(presentations))
	for i, p := range presentations {
		proofs[i] = p.Proof
		vvs[i] = verkeyView(vks[i], params[i])
		revealedList[i] = p.Revealed
	}
	challenge := proof.RecomputeLinkedChallenge(proofs, vvs, revealedList)
	for i, p := range presentations {
		ok, err := proof.VerifySignatureProof(p.Proof, vvs[i], p.Revealed, challenge)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// ResponseForMessage maps a logical message index to its slot in this
// presentation's PoK-VC response vector (the leading synthetic-message
// slot shifts everything else by one).
func (p *Presentation) ResponseForMessage(n int, i int) (*big.Int, error) {
	return p.Proof.ResponseForMessage(n, p.Revealed, i)
}
