// Package xof binds the extendable-output function used by the QPSC round
// schedule. SHAKE128 is provided by golang.org/x/crypto/sha3, the same
// package the cipher's donor codebase uses to drive deterministic sampling
// in its post-quantum signature schemes (Falcon, ML-DSA) from a SHAKE-256
// stream; QPSC needs the narrower Shake128 security margin per spec.
package xof

import (
	"golang.org/x/crypto/sha3"
)

// Shake128 computes SHAKE128(input, outLen) and returns outLen bytes of
// output. The function is stateless per call: no digest context is shared
// across invocations, matching the concurrency model's requirement that the
// XOF have no suspension points or shared mutable state.
func Shake128(input []byte, outLen int) []byte {
	h := sha3.NewShake128()
	h.Write(input)
	out := make([]byte, outLen)
	h.Read(out)
	return out
}
