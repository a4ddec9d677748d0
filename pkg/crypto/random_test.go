package crypto

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/anupsv/ps-signatures/internal/common"
)

func TestConstantTimeRandom_InRange(t *testing.T) {
	for i := 0; i < 256; i++ {
		s, err := ConstantTimeRandom(rand.Reader, common.Order)
		if err != nil {
			t.Fatalf("ConstantTimeRandom: %v", err)
		}
		if s.Sign() < 0 || s.Cmp(common.Order) >= 0 {
			t.Fatalf("draw %d out of range [0, Order): %v", i, s)
		}
	}
}

func TestConstantTimeRandom_SmallMax(t *testing.T) {
	// max = 1 has a single residue; every draw must be 0.
	for i := 0; i < 16; i++ {
		s, err := ConstantTimeRandom(rand.Reader, big.NewInt(1))
		if err != nil {
			t.Fatalf("ConstantTimeRandom: %v", err)
		}
		if s.Sign() != 0 {
			t.Fatalf("expected 0 for max=1, got %v", s)
		}
	}
}

func TestConstantTimeRandom_CoversResidues(t *testing.T) {
	// With max=4 and 1024 draws, a residue missing from the sample
	// indicates the reduction is not spreading over [0, max).
	max := big.NewInt(4)
	seen := make(map[int64]bool)
	for i := 0; i < 1024; i++ {
		s, err := ConstantTimeRandom(rand.Reader, max)
		if err != nil {
			t.Fatalf("ConstantTimeRandom: %v", err)
		}
		seen[s.Int64()] = true
	}
	for r := int64(0); r < 4; r++ {
		if !seen[r] {
			t.Errorf("residue %d never drawn in 1024 samples", r)
		}
	}
}

func TestRandomScalar_Distinct(t *testing.T) {
	a, err := RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	b, err := RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	if a.Cmp(b) == 0 {
		t.Errorf("two independent scalar draws collided: %v", a)
	}
}

func TestRandomScalar_NilSource(t *testing.T) {
	if _, err := RandomScalar(nil); err == nil {
		t.Fatalf("expected error for nil random source")
	}
}

func TestRandomNonZeroScalar_NonZero(t *testing.T) {
	for i := 0; i < 64; i++ {
		s, err := RandomNonZeroScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomNonZeroScalar: %v", err)
		}
		if s.Sign() == 0 {
			t.Fatalf("RandomNonZeroScalar returned zero")
		}
	}
}
