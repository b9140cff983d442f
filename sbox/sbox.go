// Package sbox implements the cubic quadratic permutation F_p^3 -> F_p^3
// that forms the confusion layer of the QPSC cipher core. The map has
// multiplicative depth one: exactly one layer of field multiplications
// separates inputs from outputs, which is the property that makes it cheap
// to evaluate under FHE.
package sbox

import (
	"errors"
	"math/big"

	"github.com/aurorp1g/qpsc/field"
	"github.com/holiman/uint256"
)

// ErrInvalidModulus is returned when constructing an SBox over a modulus
// that fails the cipher's prime-validity predicate.
var ErrInvalidModulus = errors.New("sbox: invalid modulus")

// SBox evaluates the permutation over a fixed prime field F_p.
type SBox struct {
	p *field.Element
}

// New constructs an SBox over p. p must already be known prime and
// p mod 3 == 2 (the bijectivity condition for x -> x^3); New re-checks the
// congruence as a cheap sanity gate but does not re-run primality testing,
// which is the caller's responsibility per spec.
func New(p *field.Element) (*SBox, error) {
	if p == nil || p.IsZero() {
		return nil, ErrInvalidModulus
	}
	three := uint256.NewInt(3)
	mod3 := new(uint256.Int).Mod(p, three)
	if mod3.Uint64() != 2 {
		return nil, ErrInvalidModulus
	}
	return &SBox{p: new(field.Element).Set(p)}, nil
}

// Apply evaluates the permutation on (x0, x1, x2):
//
//	y0 = x0
//	y1 = x0*x2 + x1
//	y2 = -x0*x1 + x0*x2 + x2
//
// Total cost: 3 multiplications, 2 additions, 1 subtraction, 1 negation --
// one multiplicative level.
func (s *SBox) Apply(x0, x1, x2 *field.Element) (y0, y1, y2 *field.Element) {
	p := s.p

	x0x2 := field.Mul(x0, x2, p)
	x0x1 := field.Mul(x0, x1, p)

	y0 = field.Canonicalize(x0, p)
	y1 = field.Add(x0x2, x1, p)
	y2 = field.Add(field.Add(field.Neg(x0x1, p), x0x2, p), x2, p)
	return
}

// IsPermutation reports whether the S-box is a bijection on F_p^3.
//
// For p > 1000, the construction is a bijection iff (1 + p + p^2) mod p != 0.
// That reduces algebraically to 1 mod p != 0, which holds for every p > 1
// (the condition can never fail once New has validated p); the branch is
// kept because spec calls for it as a documented, explicit check rather
// than an assumed tautology.
//
// For p <= 1000 the image set is constructed exhaustively as a
// self-consistency test: it never disagrees with the algebraic branch for a
// valid modulus, and exists to catch a broken Apply implementation rather
// than a broken modulus.
func (s *SBox) IsPermutation() bool {
	p := s.p
	if p.Cmp(uint256.NewInt(1000)) > 0 {
		one := field.One()
		pPlusOne := field.Add(one, p, p) // (1 + p) mod p == 1, kept explicit per contract
		pSquared := field.Mul(p, p, p)   // (p^2) mod p == 0
		sum := field.Add(pPlusOne, pSquared, p)
		return !sum.IsZero()
	}
	return s.isPermutationExhaustive()
}

// isPermutationExhaustive builds the image of Apply over the whole of
// F_p^3 and checks it has exactly p^3 distinct elements.
func (s *SBox) isPermutationExhaustive() bool {
	pBig := new(big.Int).SetBytes(field.ToBytesBE(s.p, 32))
	pWord := pBig.Uint64()

	seen := make(map[[3]uint64]struct{}, pWord*pWord*pWord)
	for a := uint64(0); a < pWord; a++ {
		for b := uint64(0); b < pWord; b++ {
			for c := uint64(0); c < pWord; c++ {
				x0 := field.FromUint64(a, s.p)
				x1 := field.FromUint64(b, s.p)
				x2 := field.FromUint64(c, s.p)
				y0, y1, y2 := s.Apply(x0, x1, x2)
				key := [3]uint64{y0.Uint64(), y1.Uint64(), y2.Uint64()}
				if _, ok := seen[key]; ok {
					return false
				}
				seen[key] = struct{}{}
			}
		}
	}
	return uint64(len(seen)) == pWord*pWord*pWord
}

// DifferentialUniformity returns p^2 as a field element: a documented
// property of the construction (every non-zero input difference admits at
// most p^2 output-difference preimages), reported rather than computed by
// brute force.
func (s *SBox) DifferentialUniformity() *field.Element {
	return new(field.Element).Mul(s.p, s.p)
}

// Modulus returns the field modulus the S-box was constructed over.
func (s *SBox) Modulus() *field.Element {
	return new(field.Element).Set(s.p)
}
