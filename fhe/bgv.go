package fhe

import (
	"github.com/aurorp1g/qpsc/field"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
)

// bgvCiphertext wraps the native rlwe.Ciphertext produced by the BGV scheme.
type bgvCiphertext struct {
	ct *rlwe.Ciphertext
}

func (c *bgvCiphertext) Level() int { return c.ct.Level() }

// BGVBackend implements Backend over the BGV scheme, whose plaintext space
// Z_t is the natural home for the cipher core's F_p keystream elements when
// t is chosen equal to p: encryption and decryption then round-trip field
// elements exactly, with no scale management of the kind CKKS requires.
type BGVBackend struct {
	params bgv.Parameters
	prime  *field.Element

	encoder   *bgv.Encoder
	encryptor *rlwe.Encryptor
	decryptor *rlwe.Decryptor
	evaluator *bgv.Evaluator
}

// NewBGVBackend builds a BGV instance at the given ring degree (logN) and
// modulus chain (logQ, logP), with plaintext modulus t set to p so that
// encoded slots match the cipher core's field exactly. It generates a fresh
// secret/public/relinearization key set internally: this backend is meant
// for single-party transciphering, not key management across parties.
func NewBGVBackend(logN int, logQ, logP []int, p *field.Element) (*BGVBackend, error) {
	lit := bgv.ParametersLiteral{
		LogN:             logN,
		LogQ:             logQ,
		LogP:             logP,
		PlaintextModulus: p.Uint64(),
	}
	params, err := bgv.NewParametersFromLiteral(lit)
	if err != nil {
		return nil, err
	}

	kgen := rlwe.NewKeyGenerator(params)
	sk := kgen.GenSecretKeyNew()
	pk := kgen.GenPublicKeyNew(sk)
	rlk := kgen.GenRelinearizationKeyNew(sk)
	evk := rlwe.NewMemEvaluationKeySet(rlk)

	return &BGVBackend{
		params:    params,
		prime:     new(field.Element).Set(p),
		encoder:   bgv.NewEncoder(params),
		encryptor: rlwe.NewEncryptor(params, pk),
		decryptor: rlwe.NewDecryptor(params, sk),
		evaluator: bgv.NewEvaluator(params, evk),
	}, nil
}

// Kind returns "bgv".
func (b *BGVBackend) Kind() string { return "bgv" }

// Encrypt packs values into the slots of a single BGV ciphertext.
func (b *BGVBackend) Encrypt(values []*field.Element) (Ciphertext, error) {
	pt := bgv.NewPlaintext(b.params, b.params.MaxLevel())
	ints := toInt64Slots(values)
	if err := b.encoder.Encode(ints, pt); err != nil {
		return nil, err
	}
	ct, err := b.encryptor.EncryptNew(pt)
	if err != nil {
		return nil, err
	}
	return &bgvCiphertext{ct: ct}, nil
}

// Decrypt recovers the plaintext slot vector from ct and reduces each slot
// back into F_p.
func (b *BGVBackend) Decrypt(ct Ciphertext) ([]*field.Element, error) {
	native, ok := ct.(*bgvCiphertext)
	if !ok {
		return nil, errWrongBackend("bgv", ct)
	}
	pt := b.decryptor.DecryptNew(native.ct)
	ints := make([]int64, b.params.MaxSlots())
	if err := b.encoder.Decode(pt, ints); err != nil {
		return nil, err
	}
	return fromInt64Slots(ints, b.prime), nil
}

// MulRelin multiplies two BGV ciphertexts and relinearizes the result back
// down to a degree-one ciphertext, mirroring the S-box layer's one
// multiplicative-depth product terms (x0*x1, x0*x2) under encryption.
func (b *BGVBackend) MulRelin(a, bb Ciphertext) (Ciphertext, error) {
	na, ok := a.(*bgvCiphertext)
	if !ok {
		return nil, errWrongBackend("bgv", a)
	}
	nb, ok := bb.(*bgvCiphertext)
	if !ok {
		return nil, errWrongBackend("bgv", bb)
	}
	res, err := b.evaluator.MulRelinNew(na.ct, nb.ct)
	if err != nil {
		return nil, err
	}
	return &bgvCiphertext{ct: res}, nil
}

// Add adds two BGV ciphertexts.
func (b *BGVBackend) Add(a, bb Ciphertext) (Ciphertext, error) {
	na, ok := a.(*bgvCiphertext)
	if !ok {
		return nil, errWrongBackend("bgv", a)
	}
	nb, ok := bb.(*bgvCiphertext)
	if !ok {
		return nil, errWrongBackend("bgv", bb)
	}
	res, err := b.evaluator.AddNew(na.ct, nb.ct)
	if err != nil {
		return nil, err
	}
	return &bgvCiphertext{ct: res}, nil
}

// toInt64Slots converts field elements into the int64 slot representation
// the BGV encoder expects. Values are assumed already canonicalized into
// [0, p).
func toInt64Slots(values []*field.Element) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(v.Uint64())
	}
	return out
}

// fromInt64Slots reduces decoded BGV slots (which may be negative
// representatives in (-t/2, t/2]) back into canonical F_p elements.
func fromInt64Slots(ints []int64, p *field.Element) []*field.Element {
	out := make([]*field.Element, len(ints))
	for i, v := range ints {
		if v < 0 {
			out[i] = field.Sub(field.Zero(), field.FromUint64(uint64(-v), p), p)
		} else {
			out[i] = field.FromUint64(uint64(v), p)
		}
	}
	return out
}

func errWrongBackend(want string, got Ciphertext) error {
	return &backendMismatchError{want: want, got: got}
}

type backendMismatchError struct {
	want string
	got  Ciphertext
}

func (e *backendMismatchError) Error() string {
	return "fhe: ciphertext was not produced by the " + e.want + " backend"
}
