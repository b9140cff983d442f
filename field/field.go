// Package field implements modular arithmetic over F_p for the QPSC cipher
// core. Elements are represented as *uint256.Int: the cipher's useful
// domain is 17-64 bit primes, but the representation itself stays
// width-agnostic up to 256 bits, matching spec's "contract is
// width-agnostic" requirement without resorting to math/big's
// arbitrary-precision arithmetic in the hot path.
package field

import (
	"github.com/holiman/uint256"
)

// Element is a field element, always held in canonical [0, p) form between
// operations.
type Element = uint256.Int

// Zero returns the additive identity.
func Zero() *Element {
	return new(Element)
}

// One returns the multiplicative identity.
func One() *Element {
	return new(Element).SetOne()
}

// FromUint64 builds an element from a machine word, reduced mod p.
func FromUint64(v uint64, p *Element) *Element {
	e := new(Element).SetUint64(v)
	return e.Mod(e, p)
}

// Add returns (x + y) mod p.
func Add(x, y, p *Element) *Element {
	z := new(Element)
	return z.AddMod(x, y, p)
}

// Sub returns (x - y) mod p.
func Sub(x, y, p *Element) *Element {
	return Add(x, Neg(y, p), p)
}

// Neg returns (-x) mod p, canonicalized to a non-negative residue.
func Neg(x, p *Element) *Element {
	if x.IsZero() {
		return Zero()
	}
	z := new(Element)
	return z.Sub(p, new(Element).Mod(x, p))
}

// Mul returns (x * y) mod p.
func Mul(x, y, p *Element) *Element {
	z := new(Element)
	return z.MulMod(x, y, p)
}

// Canonicalize reduces x into [0, p).
func Canonicalize(x, p *Element) *Element {
	return new(Element).Mod(x, p)
}

// FromBytesBE interprets b as a big-endian, most-significant-byte-first
// unsigned integer and returns it as an element (not reduced mod p; callers
// that need a canonical residue should follow with Canonicalize).
func FromBytesBE(b []byte) *Element {
	return new(Element).SetBytes(b)
}

// ToBytesBE renders x as a big-endian byte slice of exactly width bytes,
// left-padded with zeros. width must be large enough to hold x; the cipher
// only ever calls this with width=8 (elements fit a 64-bit word) or
// width=32 (the full uint256 representation).
func ToBytesBE(x *Element, width int) []byte {
	full := x.Bytes32()
	if width >= 32 {
		out := make([]byte, width)
		copy(out[width-32:], full[:])
		return out
	}
	return append([]byte(nil), full[32-width:]...)
}

// Equal reports whether x and y denote the same residue mod p. Both
// arguments are expected to already be in [0, p).
func Equal(x, y *Element) bool {
	return x.Eq(y)
}
