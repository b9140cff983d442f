// Package fhe defines the boundary between the cipher core's F_p keystream
// and a fully homomorphic transciphering backend. The core itself never
// imports this package: generate_keystream returns plain field elements, and
// it is the caller's choice whether to treat them as plaintext or wrap them
// as ciphertexts. This package exists only to give that choice a concrete,
// testable shape, backed by the BGV and BFV schemes from
// github.com/tuneinsight/lattigo/v6, which operate natively over the same
// kind of prime-modulus plaintext space the cipher core produces.
package fhe

import "github.com/aurorp1g/qpsc/field"

// Ciphertext is an opaque handle to an encrypted vector of field elements.
// Concrete backends wrap their native ciphertext type (rlwe.Ciphertext for
// both BGV and BFV); callers must not assume anything about its internal
// representation beyond what Backend exposes.
type Ciphertext interface {
	// Level reports the backend-specific remaining homomorphic depth, for
	// callers that want to decide when to bootstrap or stop multiplying.
	Level() int
}

// Backend is the consumer interface a transciphering pipeline expects of an
// FHE scheme: encrypt a vector of field elements, decrypt back, and perform
// the two homomorphic operations a quadratic S-box layer needs --
// relinearizing multiplication and addition. Kind reports which lattice
// scheme backs this instance, for diagnostics and logging.
type Backend interface {
	Kind() string
	Encrypt(values []*field.Element) (Ciphertext, error)
	Decrypt(ct Ciphertext) ([]*field.Element, error)
	MulRelin(a, b Ciphertext) (Ciphertext, error)
	Add(a, b Ciphertext) (Ciphertext, error)
}
