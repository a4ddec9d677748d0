// Package proof implements the generic multi-base Schnorr
// proof-of-knowledge-of-a-vector-commitment-opening (PoK-VC) and the
// PoKOfSignature protocol built on top of it: randomizing a PS
// signature, committing to its hidden messages, and compiling a
// Fiat-Shamir non-interactive proof that supports selective disclosure.
//
// Nothing here performs I/O or retains state across calls beyond what a
// single proving session needs; ProverCommitted and PoKOfSignature are
// single-use working values consumed by the call that finishes them.
package proof
