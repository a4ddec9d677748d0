package proof

import (
	"bytes"
	"io"
	"math/big"
	"sort"

	"github.com/anupsv/ps-signatures/internal/common"
	"github.com/anupsv/ps-signatures/pkg/crypto"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// VerkeyView is the subset of a PS verification key the PoKOfSignature
// protocol needs: the shared G2 generator, X-tilde, and the per-message
// Y-tilde generators. pkg/core builds this from its own Verkey type;
// kept separate here so this package never imports pkg/core.
type VerkeyView struct {
	GTilde bls12381.G2Affine
	XTilde bls12381.G2Affine
	YTilde []bls12381.G2Affine
}

// PoKOfSignature is the prover's working state for one presentation:
// a randomized signature, the committed element J, the ordered secret
// vector (t first, then hidden messages ascending by index), and an
// in-progress PoK-VC over G2. Single-use — consumed by GenProof.
type PoKOfSignature struct {
	SigmaPrime1 bls12381.G1Affine
	SigmaPrime2 bls12381.G1Affine
	J           bls12381.G2Affine

	hiddenIndices []int
	secrets       []*big.Int
	committed     *ProverCommitted[bls12381.G2Affine]
}

// InitPoKOfSignature randomizes sigma under a fresh (r, t) pair,
// builds J over the hidden-message bases, and commits to the PoK-VC
// blindings. revealedIndices names the message indices the prover will
// disclose; blindings optionally pins the blinding factor used for a
// given hidden message index (e.g. to link it across another proof).
func InitPoKOfSignature(
	sigma1, sigma2 bls12381.G1Affine,
	vk VerkeyView,
	messages []*big.Int,
	revealedIndices []int,
	blindings map[int]*big.Int,
	rng io.Reader,
) (*PoKOfSignature, error) {
	n := len(vk.YTilde)
	if len(messages) != n {
		return nil, &common.UnsupportedMessageCountError{Got: len(messages), Want: n}
	}

	revealed := make(map[int]bool, len(revealedIndices))
	for _, i := range revealedIndices {
		if i < 0 || i >= n {
			return nil, common.NewGeneralError("revealed index %d out of range [0,%d)", i, n)
		}
		revealed[i] = true
	}
	hidden := make([]int, 0, n-len(revealed))
	for i := 0; i < n; i++ {
		if !revealed[i] {
			hidden = append(hidden, i)
		}
	}
	for i := range blindings {
		if i < 0 || i >= n {
			return nil, common.NewGeneralError("blinding index %d out of range [0,%d)", i, n)
		}
		if revealed[i] {
			return nil, common.NewGeneralError("blinding supplied for revealed index %d", i)
		}
	}

	r, err := crypto.RandomNonZeroScalar(rng)
	if err != nil {
		return nil, err
	}
	t, err := crypto.RandomNonZeroScalar(rng)
	if err != nil {
		return nil, err
	}

	var sigma1Jac bls12381.G1Jac
	sigma1Jac.FromAffine(&sigma1)

	var sigmaPrime1Jac bls12381.G1Jac
	sigmaPrime1Jac.ScalarMultiplication(&sigma1Jac, r)

	var sigma1tJac bls12381.G1Jac
	sigma1tJac.ScalarMultiplication(&sigma1Jac, t)

	var sigma2Jac bls12381.G1Jac
	sigma2Jac.FromAffine(&sigma2)
	sigma2Jac.AddAssign(&sigma1tJac)

	var sigmaPrime2Jac bls12381.G1Jac
	sigmaPrime2Jac.ScalarMultiplication(&sigma2Jac, r)

	var sigmaPrime1, sigmaPrime2 bls12381.G1Affine
	sigmaPrime1.FromJacobian(&sigmaPrime1Jac)
	sigmaPrime2.FromJacobian(&sigmaPrime2Jac)

	bases := make([]bls12381.G2Affine, 0, 1+len(hidden))
	secrets := make([]*big.Int, 0, 1+len(hidden))
	bases = append(bases, vk.GTilde)
	secrets = append(secrets, t)
	for _, h := range hidden {
		bases = append(bases, vk.YTilde[h])
		secrets = append(secrets, messages[h])
	}

	j, err := crypto.MultiScalarMulG2(bases, secrets)
	if err != nil {
		return nil, err
	}

	pc := NewProverCommitting[bls12381.G2Affine](crypto.G2Ops{})
	for k, base := range bases {
		var blinding *big.Int
		if k > 0 && blindings != nil {
			blinding = blindings[hidden[k-1]]
		}
		if err := pc.Commit(base, blinding, rng); err != nil {
			return nil, err
		}
	}
	committed, err := pc.Finish()
	if err != nil {
		return nil, err
	}

	return &PoKOfSignature{
		SigmaPrime1:   sigmaPrime1,
		SigmaPrime2:   sigmaPrime2,
		J:             j,
		hiddenIndices: hidden,
		secrets:       secrets,
		committed:     committed,
	}, nil
}

// ToBytes is the public transcript bytes this presentation binds into
// its Fiat-Shamir challenge: sigma' || J || the PoK-VC commitment bytes.
func (p *PoKOfSignature) ToBytes() []byte {
	var buf bytes.Buffer
	sp1 := p.SigmaPrime1.Marshal()
	sp2 := p.SigmaPrime2.Marshal()
	j := p.J.Marshal()
	buf.Write(sp1[:])
	buf.Write(sp2[:])
	buf.Write(j[:])
	buf.Write(p.committed.ToBytes())
	return buf.Bytes()
}

// GenChallenge derives this presentation's own challenge, for the
// single-proof case. Use ComputeLinkedChallenge to share a challenge
// across several simultaneous presentations.
func (p *PoKOfSignature) GenChallenge() *big.Int {
	return HashToChallenge(p.ToBytes())
}

// ComputeLinkedChallenge hashes the transcript bytes of several
// presentations together, producing the shared challenge two or more
// PoKOfSignature instances must use to let a verifier check equality of
// a hidden message across them.
func ComputeLinkedChallenge(poks ...*PoKOfSignature) *big.Int {
	buf := crypto.Default.GetTranscriptBuffer(1024)
	defer crypto.Default.PutTranscriptBuffer(buf)
	for _, p := range poks {
		buf = append(buf, p.ToBytes()...)
	}
	return HashToChallenge(buf)
}

// GenProof compiles the Fiat-Shamir proof for the given challenge,
// consuming the working state.
func (p *PoKOfSignature) GenProof(challenge *big.Int) (*PoKOfSignatureProof, error) {
	proofVC, err := p.committed.GenProof(challenge, p.secrets)
	if err != nil {
		return nil, err
	}
	return &PoKOfSignatureProof{
		SigmaPrime1: p.SigmaPrime1,
		SigmaPrime2: p.SigmaPrime2,
		J:           p.J,
		ProofVC:     proofVC,
	}, nil
}

// PoKOfSignatureProof is the wire-format non-interactive proof.
type PoKOfSignatureProof struct {
	SigmaPrime1 bls12381.G1Affine
	SigmaPrime2 bls12381.G1Affine
	J           bls12381.G2Affine
	ProofVC     *Proof[bls12381.G2Affine]
}

// hiddenIndicesFor reconstructs H = [0,n) \ dom(revealed) in ascending
// order — the same derivation the prover used, redone from the public
// revealed set so the wire format never needs to carry it.
func hiddenIndicesFor(n int, revealed map[int]*big.Int) []int {
	hidden := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if _, ok := revealed[i]; !ok {
			hidden = append(hidden, i)
		}
	}
	return hidden
}

// basesHiddenFor rebuilds the (g_tilde, y_tilde_h...) base list for a
// given vk and revealed set, in the same ascending order InitPoKOfSignature
// used to build it.
func basesHiddenFor(vk VerkeyView, hidden []int) []bls12381.G2Affine {
	bases := make([]bls12381.G2Affine, 0, 1+len(hidden))
	bases = append(bases, vk.GTilde)
	for _, h := range hidden {
		bases = append(bases, vk.YTilde[h])
	}
	return bases
}

// TranscriptBytes reconstructs the same byte layout PoKOfSignature.ToBytes
// produced, from the wire-format proof and the hidden base list the
// verifier derives independently. Used to recompute (or, when linking
// several proofs, feed into a shared) Fiat-Shamir challenge without the
// prover's working state.
func TranscriptBytes(p *PoKOfSignatureProof, basesHidden []bls12381.G2Affine) []byte {
	ops := crypto.G2Ops{}
	var buf bytes.Buffer
	sp1 := p.SigmaPrime1.Marshal()
	sp2 := p.SigmaPrime2.Marshal()
	j := p.J.Marshal()
	buf.Write(sp1[:])
	buf.Write(sp2[:])
	buf.Write(j[:])
	for _, b := range basesHidden {
		buf.Write(ops.Marshal(b))
	}
	buf.Write(ops.Marshal(p.ProofVC.T))
	return buf.Bytes()
}

// RecomputeChallenge derives the challenge a verifier should check this
// proof against, for the single-proof case.
func RecomputeChallenge(p *PoKOfSignatureProof, vk VerkeyView, revealed map[int]*big.Int) *big.Int {
	hidden := hiddenIndicesFor(len(vk.YTilde), revealed)
	return HashToChallenge(TranscriptBytes(p, basesHiddenFor(vk, hidden)))
}

// RecomputeLinkedChallenge is the multi-proof counterpart of
// RecomputeChallenge: it hashes the transcript bytes of every proof
// together, in the same order the prover fed them to
// ComputeLinkedChallenge.
func RecomputeLinkedChallenge(proofs []*PoKOfSignatureProof, vks []VerkeyView, revealedList []map[int]*big.Int) *big.Int {
	buf := crypto.Default.GetTranscriptBuffer(1024)
	defer crypto.Default.PutTranscriptBuffer(buf)
	for i, p := range proofs {
		hidden := hiddenIndicesFor(len(vks[i].YTilde), revealedList[i])
		buf = append(buf, TranscriptBytes(p, basesHiddenFor(vks[i], hidden))...)
	}
	return HashToChallenge(buf)
}

// ResponseForMessage maps a logical message index i (which must not be
// among the revealed indices) to its slot in ProofVC.Responses,
// accounting for the leading t slot at index 0. Call sites that compare
// responses across linked proofs should use this instead of doing the
// "+1" slot arithmetic themselves.
func (p *PoKOfSignatureProof) ResponseForMessage(n int, revealed map[int]*big.Int, i int) (*big.Int, error) {
	if _, ok := revealed[i]; ok {
		return nil, common.NewGeneralError("message index %d is revealed, has no hidden response slot", i)
	}
	if i < 0 || i >= n {
		return nil, common.NewGeneralError("message index %d out of range [0,%d)", i, n)
	}
	hidden := hiddenIndicesFor(n, revealed)
	pos := sort.SearchInts(hidden, i)
	if pos == len(hidden) || hidden[pos] != i {
		return nil, common.NewGeneralError("message index %d not found among hidden indices", i)
	}
	return p.ProofVC.Responses[1+pos], nil
}

// VerifySignatureProof checks the proof against vk, the revealed
// message mapping and a challenge (already agreed between prover and
// verifier, whether derived from a single proof or a linked
// multi-proof transcript).
func VerifySignatureProof(proof *PoKOfSignatureProof, vk VerkeyView, revealed map[int]*big.Int, challenge *big.Int) (bool, error) {
	g1Ops := crypto.G1Ops{}
	g2Ops := crypto.G2Ops{}

	if g1Ops.IsIdentity(proof.SigmaPrime1) || g1Ops.IsIdentity(proof.SigmaPrime2) {
		return false, nil
	}

	n := len(vk.YTilde)
	for i := range revealed {
		if i < 0 || i >= n {
			return false, common.NewGeneralError("revealed index %d out of range [0,%d)", i, n)
		}
	}
	hidden := hiddenIndicesFor(n, revealed)
	basesHidden := basesHiddenFor(vk, hidden)

	ok, err := VerifyPoKVC(g2Ops, proof.ProofVC, basesHidden, proof.J, challenge)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	revealedIdx := make([]int, 0, len(revealed))
	for i := range revealed {
		revealedIdx = append(revealedIdx, i)
	}
	sort.Ints(revealedIdx)
	revBases := crypto.Default.GetG2AffineSlice(len(revealedIdx))
	revScalars := crypto.Default.GetBigIntSlice(len(revealedIdx))
	defer func() {
		crypto.Default.PutG2AffineSlice(revBases)
		crypto.Default.PutBigIntSlice(revScalars)
	}()
	for _, i := range revealedIdx {
		revBases = append(revBases, vk.YTilde[i])
		revScalars = append(revScalars, revealed[i])
	}
	revSum, err := crypto.MultiScalarMulG2VarTime(revBases, revScalars)
	if err != nil {
		return false, err
	}
	jFull := g2Ops.Add(proof.J, revSum)

	combined := g2Ops.Add(jFull, vk.XTilde)

	var sigmaPrime2Jac bls12381.G1Jac
	sigmaPrime2Jac.FromAffine(&proof.SigmaPrime2)
	sigmaPrime2Jac.Neg(&sigmaPrime2Jac)
	var negSigmaPrime2 bls12381.G1Affine
	negSigmaPrime2.FromJacobian(&sigmaPrime2Jac)

	pairingResult, err := bls12381.Pair(
		[]bls12381.G1Affine{proof.SigmaPrime1, negSigmaPrime2},
		[]bls12381.G2Affine{combined, vk.GTilde},
	)
	if err != nil {
		return false, err
	}
	return pairingResult.IsOne(), nil
}
