package proof

import (
	"crypto/rand"
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/anupsv/ps-signatures/internal/common"
	"github.com/anupsv/ps-signatures/pkg/crypto"
)

// newTestParams/testKeygen/testSign reimplement the minimal PS key
// generation and signing steps inline, since pkg/core (which owns the
// public Keygen/Sign API) imports this package and a test-only import
// back would cycle.

func newTestParams(t *testing.T) (bls12381.G1Affine, bls12381.G2Affine) {
	t.Helper()
	g, err := crypto.HashToG1([]byte("pokofsignature-test : g"), []byte(crypto.HashToG1DST))
	if err != nil {
		t.Fatalf("HashToG1: %v", err)
	}
	gTilde, err := crypto.HashToG2([]byte("pokofsignature-test : g_tilde"), []byte(crypto.HashToG2DST))
	if err != nil {
		t.Fatalf("HashToG2: %v", err)
	}
	return g, gTilde
}

type testKeys struct {
	x      *big.Int
	y      []*big.Int
	xTilde bls12381.G2Affine
	yTilde []bls12381.G2Affine
}

func testKeygen(t *testing.T, g bls12381.G1Affine, gTilde bls12381.G2Affine, n int) *testKeys {
	t.Helper()
	x, err := crypto.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	y := make([]*big.Int, n)
	yTilde := make([]bls12381.G2Affine, n)
	var gTildeJac bls12381.G2Jac
	gTildeJac.FromAffine(&gTilde)
	for i := range y {
		yi, err := crypto.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		y[i] = yi
		var yTildeJac bls12381.G2Jac
		yTildeJac.ScalarMultiplication(&gTildeJac, yi)
		yTilde[i].FromJacobian(&yTildeJac)
	}
	var xTildeJac bls12381.G2Jac
	xTildeJac.ScalarMultiplication(&gTildeJac, x)
	var xTilde bls12381.G2Affine
	xTilde.FromJacobian(&xTildeJac)

	return &testKeys{x: x, y: y, xTilde: xTilde, yTilde: yTilde}
}

func testSign(t *testing.T, g bls12381.G1Affine, keys *testKeys, messages []*big.Int) (bls12381.G1Affine, bls12381.G1Affine) {
	t.Helper()
	u, err := crypto.RandomNonZeroScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomNonZeroScalar: %v", err)
	}
	var gJac, hJac bls12381.G1Jac
	gJac.FromAffine(&g)
	hJac.ScalarMultiplication(&gJac, u)

	exponent := new(big.Int).Set(keys.x)
	for i, m := range messages {
		term := new(big.Int).Mul(keys.y[i], m)
		exponent.Add(exponent, term)
	}
	exponent.Mod(exponent, common.Order)

	var sigma2Jac bls12381.G1Jac
	sigma2Jac.ScalarMultiplication(&hJac, exponent)

	var sigma1, sigma2 bls12381.G1Affine
	sigma1.FromJacobian(&hJac)
	sigma2.FromJacobian(&sigma2Jac)
	return sigma1, sigma2
}

func testMessages(t *testing.T, n int) []*big.Int {
	t.Helper()
	messages := make([]*big.Int, n)
	for i := range messages {
		m, err := crypto.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		messages[i] = m
	}
	return messages
}

func TestPoKOfSignature_CompletenessNoReveal(t *testing.T) {
	g, gTilde := newTestParams(t)
	keys := testKeygen(t, g, gTilde, 5)
	messages := testMessages(t, 5)
	sigma1, sigma2 := testSign(t, g, keys, messages)

	vk := VerkeyView{GTilde: gTilde, XTilde: keys.xTilde, YTilde: keys.yTilde}
	pok, err := InitPoKOfSignature(sigma1, sigma2, vk, messages, nil, nil, rand.Reader)
	if err != nil {
		t.Fatalf("InitPoKOfSignature: %v", err)
	}
	challenge := pok.GenChallenge()
	proof, err := pok.GenProof(challenge)
	if err != nil {
		t.Fatalf("GenProof: %v", err)
	}

	recomputed := RecomputeChallenge(proof, vk, map[int]*big.Int{})
	if recomputed.Cmp(challenge) != 0 {
		t.Fatalf("verifier-recomputed challenge does not match prover's")
	}
	ok, err := VerifySignatureProof(proof, vk, map[int]*big.Int{}, recomputed)
	if err != nil {
		t.Fatalf("VerifySignatureProof: %v", err)
	}
	if !ok {
		t.Errorf("honest no-reveal proof failed to verify")
	}
}

func TestPoKOfSignature_CompletenessWithReveal(t *testing.T) {
	g, gTilde := newTestParams(t)
	keys := testKeygen(t, g, gTilde, 10)
	messages := testMessages(t, 10)
	sigma1, sigma2 := testSign(t, g, keys, messages)

	vk := VerkeyView{GTilde: gTilde, XTilde: keys.xTilde, YTilde: keys.yTilde}
	revealedIdx := []int{2, 4, 9}
	pok, err := InitPoKOfSignature(sigma1, sigma2, vk, messages, revealedIdx, nil, rand.Reader)
	if err != nil {
		t.Fatalf("InitPoKOfSignature: %v", err)
	}
	challenge := pok.GenChallenge()
	proof, err := pok.GenProof(challenge)
	if err != nil {
		t.Fatalf("GenProof: %v", err)
	}

	revealed := map[int]*big.Int{2: messages[2], 4: messages[4], 9: messages[9]}
	ok, err := VerifySignatureProof(proof, vk, revealed, challenge)
	if err != nil {
		t.Fatalf("VerifySignatureProof: %v", err)
	}
	if !ok {
		t.Errorf("honest reveal proof failed to verify")
	}

	tampered := map[int]*big.Int{2: new(big.Int).Add(messages[2], big.NewInt(1)), 4: messages[4], 9: messages[9]}
	ok, err = VerifySignatureProof(proof, vk, tampered, challenge)
	if err != nil {
		t.Fatalf("VerifySignatureProof: %v", err)
	}
	if ok {
		t.Errorf("proof verified against a tampered revealed message")
	}
}

func TestPoKOfSignature_IdentityRejection(t *testing.T) {
	g, gTilde := newTestParams(t)
	keys := testKeygen(t, g, gTilde, 3)
	messages := testMessages(t, 3)
	sigma1, sigma2 := testSign(t, g, keys, messages)

	vk := VerkeyView{GTilde: gTilde, XTilde: keys.xTilde, YTilde: keys.yTilde}
	pok, err := InitPoKOfSignature(sigma1, sigma2, vk, messages, nil, nil, rand.Reader)
	if err != nil {
		t.Fatalf("InitPoKOfSignature: %v", err)
	}
	challenge := pok.GenChallenge()
	proof, err := pok.GenProof(challenge)
	if err != nil {
		t.Fatalf("GenProof: %v", err)
	}

	proof.SigmaPrime1 = bls12381.G1Affine{}
	ok, err := VerifySignatureProof(proof, vk, map[int]*big.Int{}, challenge)
	if err != nil {
		t.Fatalf("VerifySignatureProof: %v", err)
	}
	if ok {
		t.Errorf("proof with identity SigmaPrime1 verified")
	}
}

func TestPoKOfSignature_Unlinkability(t *testing.T) {
	g, gTilde := newTestParams(t)
	keys := testKeygen(t, g, gTilde, 4)
	messages := testMessages(t, 4)
	sigma1, sigma2 := testSign(t, g, keys, messages)
	vk := VerkeyView{GTilde: gTilde, XTilde: keys.xTilde, YTilde: keys.yTilde}

	pok1, err := InitPoKOfSignature(sigma1, sigma2, vk, messages, nil, nil, rand.Reader)
	if err != nil {
		t.Fatalf("InitPoKOfSignature: %v", err)
	}
	pok2, err := InitPoKOfSignature(sigma1, sigma2, vk, messages, nil, nil, rand.Reader)
	if err != nil {
		t.Fatalf("InitPoKOfSignature: %v", err)
	}

	if pok1.SigmaPrime1.Equal(&pok2.SigmaPrime1) {
		t.Errorf("two randomizations of the same signature produced equal SigmaPrime1")
	}
	if pok1.J.Equal(&pok2.J) {
		t.Errorf("two randomizations of the same signature produced equal J")
	}
}

func TestPoKOfSignature_LinkedSharedBlinding(t *testing.T) {
	g, gTilde := newTestParams(t)
	keys1 := testKeygen(t, g, gTilde, 5)
	keys2 := testKeygen(t, g, gTilde, 5)

	messages1 := testMessages(t, 5)
	messages2 := testMessages(t, 5)
	shared, err := crypto.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	messages1[1] = shared
	messages2[4] = shared

	sigma1a, sigma2a := testSign(t, g, keys1, messages1)
	sigma1b, sigma2b := testSign(t, g, keys2, messages2)

	vk1 := VerkeyView{GTilde: gTilde, XTilde: keys1.xTilde, YTilde: keys1.yTilde}
	vk2 := VerkeyView{GTilde: gTilde, XTilde: keys2.xTilde, YTilde: keys2.yTilde}

	sharedBlinding, err := crypto.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	blindings1 := map[int]*big.Int{1: sharedBlinding}
	blindings2 := map[int]*big.Int{4: sharedBlinding}

	pok1, err := InitPoKOfSignature(sigma1a, sigma2a, vk1, messages1, nil, blindings1, rand.Reader)
	if err != nil {
		t.Fatalf("InitPoKOfSignature(1): %v", err)
	}
	pok2, err := InitPoKOfSignature(sigma1b, sigma2b, vk2, messages2, nil, blindings2, rand.Reader)
	if err != nil {
		t.Fatalf("InitPoKOfSignature(2): %v", err)
	}

	challenge := ComputeLinkedChallenge(pok1, pok2)
	proof1, err := pok1.GenProof(challenge)
	if err != nil {
		t.Fatalf("GenProof(1): %v", err)
	}
	proof2, err := pok2.GenProof(challenge)
	if err != nil {
		t.Fatalf("GenProof(2): %v", err)
	}

	revealed := map[int]*big.Int{}
	ok1, err := VerifySignatureProof(proof1, vk1, revealed, challenge)
	if err != nil || !ok1 {
		t.Fatalf("proof1 failed to verify: ok=%v err=%v", ok1, err)
	}
	ok2, err := VerifySignatureProof(proof2, vk2, revealed, challenge)
	if err != nil || !ok2 {
		t.Fatalf("proof2 failed to verify: ok=%v err=%v", ok2, err)
	}

	r1, err := proof1.ResponseForMessage(5, revealed, 1)
	if err != nil {
		t.Fatalf("ResponseForMessage(1): %v", err)
	}
	r2, err := proof2.ResponseForMessage(5, revealed, 4)
	if err != nil {
		t.Fatalf("ResponseForMessage(2): %v", err)
	}
	if r1.Cmp(r2) != 0 {
		t.Errorf("responses for the shared message disagree: %v != %v", r1, r2)
	}
}

func TestPoKOfSignature_BlindingForRevealedIndex(t *testing.T) {
	g, gTilde := newTestParams(t)
	keys := testKeygen(t, g, gTilde, 5)
	messages := testMessages(t, 5)
	sigma1, sigma2 := testSign(t, g, keys, messages)
	vk := VerkeyView{GTilde: gTilde, XTilde: keys.xTilde, YTilde: keys.yTilde}

	blinding, err := crypto.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	_, err = InitPoKOfSignature(sigma1, sigma2, vk, messages, []int{2}, map[int]*big.Int{2: blinding}, rand.Reader)
	if err == nil {
		t.Fatalf("expected error for blinding pinned at a revealed index")
	}
	if _, ok := err.(*common.GeneralError); !ok {
		t.Errorf("expected *common.GeneralError, got %T", err)
	}
}

func TestPoKOfSignature_WrongMessageCount(t *testing.T) {
	g, gTilde := newTestParams(t)
	keys := testKeygen(t, g, gTilde, 5)
	vk := VerkeyView{GTilde: gTilde, XTilde: keys.xTilde, YTilde: keys.yTilde}

	_, err := InitPoKOfSignature(bls12381.G1Affine{}, bls12381.G1Affine{}, vk, testMessages(t, 3), nil, nil, rand.Reader)
	if err == nil {
		t.Fatalf("expected UnsupportedMessageCountError")
	}
	if _, ok := err.(*common.UnsupportedMessageCountError); !ok {
		t.Errorf("expected *common.UnsupportedMessageCountError, got %T", err)
	}
}
