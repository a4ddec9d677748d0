package core

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/big"
	"sort"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/anupsv/ps-signatures/pkg/proof"
)

// marshalSignatureProof encodes the PoKOfSignatureProof half of a Presentation
// as [SigmaPrime1][SigmaPrime2][J][ProofVC.T][nResponses][responses,
// each length-prefixed] — the same fixed-size-group-element-then-
// length-prefixed-scalar convention Sigkey/Verkey/Signature use.
func marshalSignatureProof(buf *bytes.Buffer, p *proof.PoKOfSignatureProof) error {
	buf.Write(p.SigmaPrime1.Marshal())
	buf.Write(p.SigmaPrime2.Marshal())
	j := p.J.Marshal()
	buf.Write(j[:])
	t := p.ProofVC.T.Marshal()
	buf.Write(t[:])
	if err := writeUint32(buf, uint32(len(p.ProofVC.Responses))); err != nil {
		return err
	}
	for _, s := range p.ProofVC.Responses {
		if err := writeScalar(buf, s); err != nil {
			return err
		}
	}
	return nil
}

// readSignatureProof is the inverse of marshalSignatureProof, reading
// from the same *bytes.Reader a Presentation's UnmarshalBinary uses for
// the trailing revealed-message map, so the two halves split cleanly
// without a top-level length prefix between them.
func readSignatureProof(r *bytes.Reader) (*proof.PoKOfSignatureProof, error) {
	const g1Size = 96
	const g2Size = 192

	readFixed := func(n int) ([]byte, error) {
		b := make([]byte, n)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	sp1Bytes, err := readFixed(g1Size)
	if err != nil {
		return nil, err
	}
	sp2Bytes, err := readFixed(g1Size)
	if err != nil {
		return nil, err
	}
	jBytes, err := readFixed(g2Size)
	if err != nil {
		return nil, err
	}
	tBytes, err := readFixed(g2Size)
	if err != nil {
		return nil, err
	}

	var sp1, sp2 bls12381.G1Affine
	if err := sp1.Unmarshal(sp1Bytes); err != nil {
		return nil, err
	}
	if err := sp2.Unmarshal(sp2Bytes); err != nil {
		return nil, err
	}
	var j, t bls12381.G2Affine
	if err := j.Unmarshal(jBytes); err != nil {
		return nil, err
	}
	if err := t.Unmarshal(tBytes); err != nil {
		return nil, err
	}

	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	responses := make([]*big.Int, n)
	for i := range responses {
		s, err := readScalar(r)
		if err != nil {
			return nil, err
		}
		responses[i] = s
	}

	return &proof.PoKOfSignatureProof{
		SigmaPrime1: sp1,
		SigmaPrime2: sp2,
		J:           j,
		ProofVC:     &proof.Proof[bls12381.G2Affine]{T: t, Responses: responses},
	}, nil
}

// MarshalBinary encodes p as the signature proof bytes followed by its
// revealed-message map, sorted by index for a canonical encoding:
// [proofBytes][nRevealed][index(4)+scalar]*.
func (p *Presentation) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := marshalSignatureProof(buf, p.Proof); err != nil {
		return nil, err
	}

	indices := make([]int, 0, len(p.Revealed))
	for i := range p.Revealed {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	if err := writeUint32(buf, uint32(len(indices))); err != nil {
		return nil, err
	}
	for _, i := range indices {
		if err := binary.Write(buf, binary.BigEndian, uint32(i)); err != nil {
			return nil, err
		}
		if err := writeScalar(buf, p.Revealed[i]); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a Presentation from the MarshalBinary format.
func (p *Presentation) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	sigProof, err := readSignatureProof(r)
	if err != nil {
		return err
	}

	nRevealed, err := readUint32(r)
	if err != nil {
		return err
	}
	revealed := make(map[int]*big.Int, nRevealed)
	for i := uint32(0); i < nRevealed; i++ {
		var idx uint32
		if err := binary.Read(r, binary.BigEndian, &idx); err != nil {
			return err
		}
		v, err := readScalar(r)
		if err != nil {
			return err
		}
		revealed[int(idx)] = v
	}

	p.Proof = sigProof
	p.Revealed = revealed
	return nil
}
