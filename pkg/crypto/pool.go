package crypto

import (
	"math/big"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// Pool recycles the slices and buffers that churn through proving and
// verifying: base/scalar slices sized by message count and
// byte buffers for Fiat-Shamir transcripts. Every Get call returns a
// zero-length slice/buffer with at least the requested capacity; it is
// the caller's responsibility to Put it back once done.
type Pool struct {
	bigIntSlicePool   sync.Pool
	g2AffineSlicePool sync.Pool
	transcriptPool    sync.Pool
}

// NewPool constructs an independent Pool. Most callers should use the
// package-level Default pool instead.
func NewPool() *Pool {
	return &Pool{
		bigIntSlicePool: sync.Pool{
			New: func() interface{} { return make([]*big.Int, 0, 8) },
		},
		g2AffineSlicePool: sync.Pool{
			New: func() interface{} { return make([]bls12381.G2Affine, 0, 8) },
		},
		transcriptPool: sync.Pool{
			New: func() interface{} { return make([]byte, 0, 1024) },
		},
	}
}

// Default is the package-wide Pool instance used by pkg/proof and
// pkg/core unless a caller constructs its own.
var Default = NewPool()

func (p *Pool) GetBigIntSlice(capacity int) []*big.Int {
	s := p.bigIntSlicePool.Get().([]*big.Int)
	if cap(s) < capacity {
		return make([]*big.Int, 0, capacity)
	}
	return s[:0]
}

func (p *Pool) PutBigIntSlice(s []*big.Int) {
	if s != nil {
		p.bigIntSlicePool.Put(s)
	}
}

func (p *Pool) GetG2AffineSlice(capacity int) []bls12381.G2Affine {
	s := p.g2AffineSlicePool.Get().([]bls12381.G2Affine)
	if cap(s) < capacity {
		return make([]bls12381.G2Affine, 0, capacity)
	}
	return s[:0]
}

func (p *Pool) PutG2AffineSlice(s []bls12381.G2Affine) {
	if s != nil {
		p.g2AffineSlicePool.Put(s)
	}
}

func (p *Pool) GetTranscriptBuffer(capacity int) []byte {
	b := p.transcriptPool.Get().([]byte)
	if cap(b) < capacity {
		return make([]byte, 0, capacity)
	}
	return b[:0]
}

func (p *Pool) PutTranscriptBuffer(b []byte) {
	if b != nil {
		p.transcriptPool.Put(b)
	}
}
