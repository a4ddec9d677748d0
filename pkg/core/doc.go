// Package core is the public facade over this module: Pointcheval-
// Sanders short randomizable signatures and their selective-disclosure
// proof of knowledge, built on pkg/crypto and pkg/proof.
//
// Basic usage:
//
//	params, err := core.NewParams([]byte("acme-corp-credentials"))
//	sk, vk, err := core.Keygen(5, params, rand.Reader)
//	sig, err := core.Sign(sk, params, messages, rand.Reader)
//	ok, err := core.Verify(vk, params, messages, sig)
//
//	presentation, err := core.NewPresentation(sig, vk, params, messages, []int{0, 2}, nil, rand.Reader)
//	ok, err = presentation.Verify(vk, params)
//
// Linking two presentations on a shared hidden message goes through
// BeginPresentation, LinkPresentations and VerifyLinked. Applications
// that need the lower-level Σ-protocol primitives directly should use
// pkg/proof instead.
package core
