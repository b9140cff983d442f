package qpsc

import (
	"github.com/aurorp1g/qpsc/field"
	"github.com/aurorp1g/qpsc/linear"
	"github.com/holiman/uint256"
)

// SecurityLevel selects the number of full rounds R.
type SecurityLevel int

const (
	// SEC80 runs 5 full rounds.
	SEC80 SecurityLevel = iota
	// SEC128 runs 6 full rounds.
	SEC128
)

// Rounds returns R, the number of full rounds for this security level.
func (l SecurityLevel) Rounds() int {
	switch l {
	case SEC80:
		return 5
	case SEC128:
		return 6
	default:
		return 0
	}
}

// String names the security level.
func (l SecurityLevel) String() string {
	switch l {
	case SEC80:
		return "SEC80"
	case SEC128:
		return "SEC128"
	default:
		return "SecurityLevel(invalid)"
	}
}

// minPrime is 2^16, the spec's floor on the modulus.
var minPrime = new(uint256.Int).Lsh(uint256.NewInt(1), 16)

// three is used for the p mod 3 == 2 congruence check.
var three = uint256.NewInt(3)

// ParametersLiteral is the user-facing, unvalidated configuration for a
// Cipher: a prime modulus, a security level, and a truncation width. It
// mirrors the "literal struct validated by a constructor" idiom used for
// scheme parameters in the lattice-based homomorphic-encryption libraries
// this cipher is designed to feed (see fhe package): build the literal,
// then call NewParametersFromLiteral to get a validated, immutable
// Parameters.
type ParametersLiteral struct {
	// Prime is p: must satisfy p mod 3 == 2 and p > 2^16. Primality itself
	// is NOT re-verified here -- it is the caller's responsibility, per
	// spec's "prime predicate deferred to caller."
	Prime *field.Element

	// Level selects SEC80 (R=5) or SEC128 (R=6).
	Level SecurityLevel

	// TruncationWidth (m) is the number of leading state elements discarded
	// from each output block; must be in [0, 36].
	TruncationWidth int
}

// Parameters is the validated, immutable configuration produced by
// NewParametersFromLiteral.
type Parameters struct {
	prime           *field.Element
	level           SecurityLevel
	truncationWidth int
}

// NewParametersFromLiteral validates lit and returns an immutable
// Parameters. It checks p mod 3 == 2, p > 2^16 (strictly; spec phrases this
// as "p >= 2^16" for the constructor bound for validity, but the cipher's
// data model additionally requires p > 2^16, so the stricter check is
// applied here), and m <= 36. It does not check primality.
func NewParametersFromLiteral(lit ParametersLiteral) (Parameters, error) {
	if lit.Prime == nil {
		return Parameters{}, newError(InvalidPrime, "prime is nil")
	}
	mod3 := new(uint256.Int).Mod(lit.Prime, three)
	if mod3.Uint64() != 2 {
		return Parameters{}, newError(InvalidPrime, "p mod 3 must equal 2")
	}
	if lit.Prime.Cmp(minPrime) <= 0 {
		return Parameters{}, newError(InvalidPrime, "p must be greater than 2^16")
	}
	if lit.TruncationWidth < 0 || lit.TruncationWidth > 36 {
		return Parameters{}, newError(InvalidTruncation, "truncation width must be in [0, 36]")
	}
	return Parameters{
		prime:           new(field.Element).Set(lit.Prime),
		level:           lit.Level,
		truncationWidth: lit.TruncationWidth,
	}, nil
}

// Prime returns the field modulus.
func (p Parameters) Prime() *field.Element {
	return new(field.Element).Set(p.prime)
}

// Level returns the configured security level.
func (p Parameters) Level() SecurityLevel {
	return p.level
}

// TruncationWidth returns m.
func (p Parameters) TruncationWidth() int {
	return p.truncationWidth
}

// OutputWidth returns 36 - m, the number of field elements emitted per
// block.
func (p Parameters) OutputWidth() int {
	return linear.Size - p.truncationWidth
}
