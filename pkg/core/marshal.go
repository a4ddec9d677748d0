package core

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// Canonical encoding: a big-endian uint32 length prefix before every
// variable-length field (scalar bytes, sequences), then the field's raw
// bytes. Group elements use gnark-crypto's own fixed-size Marshal
// output and need no length prefix of their own.

func writeUint32(buf *bytes.Buffer, v uint32) error {
	return binary.Write(buf, binary.BigEndian, v)
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.BigEndian, &v)
	return v, err
}

func writeScalar(buf *bytes.Buffer, s *big.Int) error {
	b := s.Bytes()
	if err := writeUint32(buf, uint32(len(b))); err != nil {
		return err
	}
	_, err := buf.Write(b)
	return err
}

func readScalar(r *bytes.Reader) (*big.Int, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// MarshalBinary encodes params as [G][GTilde], both fixed-size points.
func (p *Params) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(p.G.Marshal())
	buf.Write(p.GTilde.Marshal())
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes params from the MarshalBinary format.
func (p *Params) UnmarshalBinary(data []byte) error {
	const g1Size = 96
	const g2Size = 192
	if len(data) != g1Size+g2Size {
		return &unmarshalError{"params: unexpected length"}
	}
	var g bls12381.G1Affine
	if err := g.Unmarshal(data[:g1Size]); err != nil {
		return err
	}
	var gTilde bls12381.G2Affine
	if err := gTilde.Unmarshal(data[g1Size:]); err != nil {
		return err
	}
	p.G = g
	p.GTilde = gTilde
	return nil
}

// MarshalBinary encodes sk as [xLen][x][nMessages][y_0..y_n-1, each length-prefixed].
func (sk *Sigkey) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := writeScalar(buf, sk.X); err != nil {
		return nil, err
	}
	if err := writeUint32(buf, uint32(len(sk.Y))); err != nil {
		return nil, err
	}
	for _, y := range sk.Y {
		if err := writeScalar(buf, y); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes sk from the MarshalBinary format.
func (sk *Sigkey) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	x, err := readScalar(r)
	if err != nil {
		return err
	}
	n, err := readUint32(r)
	if err != nil {
		return err
	}
	y := make([]*big.Int, n)
	for i := range y {
		yi, err := readScalar(r)
		if err != nil {
			return err
		}
		y[i] = yi
	}
	sk.X = x
	sk.Y = y
	return nil
}

// MarshalBinary encodes vk as [XTilde][n][Y_0..Y_n-1][YTilde_0..YTilde_n-1].
func (vk *Verkey) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	xt := vk.XTilde.Marshal()
	buf.Write(xt)
	if err := writeUint32(buf, uint32(len(vk.Y))); err != nil {
		return nil, err
	}
	for _, y := range vk.Y {
		buf.Write(y.Marshal())
	}
	for _, yt := range vk.YTilde {
		buf.Write(yt.Marshal())
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes vk from the MarshalBinary format.
func (vk *Verkey) UnmarshalBinary(data []byte) error {
	const g1Size = 96
	const g2Size = 192

	if len(data) < g2Size+4 {
		return &unmarshalError{"verkey: truncated header"}
	}
	offset := 0
	var xTilde bls12381.G2Affine
	if err := xTilde.Unmarshal(data[offset : offset+g2Size]); err != nil {
		return err
	}
	offset += g2Size

	n := binary.BigEndian.Uint32(data[offset : offset+4])
	offset += 4

	y := make([]bls12381.G1Affine, n)
	for i := range y {
		if offset+g1Size > len(data) {
			return &unmarshalError{"verkey: truncated Y"}
		}
		if err := y[i].Unmarshal(data[offset : offset+g1Size]); err != nil {
			return err
		}
		offset += g1Size
	}

	yTilde := make([]bls12381.G2Affine, n)
	for i := range yTilde {
		if offset+g2Size > len(data) {
			return &unmarshalError{"verkey: truncated YTilde"}
		}
		if err := yTilde[i].Unmarshal(data[offset : offset+g2Size]); err != nil {
			return err
		}
		offset += g2Size
	}

	vk.XTilde = xTilde
	vk.Y = y
	vk.YTilde = yTilde
	return nil
}

// MarshalBinary encodes sig as [Sigma1][Sigma2], both fixed-size G1 points.
func (sig *Signature) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(sig.Sigma1.Marshal())
	buf.Write(sig.Sigma2.Marshal())
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes sig from the MarshalBinary format.
func (sig *Signature) UnmarshalBinary(data []byte) error {
	const g1Size = 96
	if len(data) != 2*g1Size {
		return &unmarshalError{"signature: unexpected length"}
	}
	if err := sig.Sigma1.Unmarshal(data[:g1Size]); err != nil {
		return err
	}
	return sig.Sigma2.Unmarshal(data[g1Size:])
}

type unmarshalError struct{ msg string }

func (e *unmarshalError) Error() string { return e.msg }
