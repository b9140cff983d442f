package fhe

import (
	"github.com/aurorp1g/qpsc/field"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bfv"
)

// bfvCiphertext wraps the native rlwe.Ciphertext produced by the BFV scheme.
type bfvCiphertext struct {
	ct *rlwe.Ciphertext
}

func (c *bfvCiphertext) Level() int { return c.ct.Level() }

// BFVBackend implements Backend over the BFV scheme. Where BGV defers
// modulus-switching to the evaluator and keeps ciphertexts at a fixed scale
// by construction, BFV rounds and scales on every multiplication; both are
// offered so a transciphering pipeline can pick whichever noise-growth
// profile suits its round budget.
type BFVBackend struct {
	params bfv.Parameters
	prime  *field.Element

	encoder   *bfv.Encoder
	encryptor *rlwe.Encryptor
	decryptor *rlwe.Decryptor
	evaluator *bfv.Evaluator
}

// NewBFVBackend builds a BFV instance at the given ring degree and modulus
// chain, with plaintext modulus t set to p.
func NewBFVBackend(logN int, logQ, logP []int, p *field.Element) (*BFVBackend, error) {
	lit := bfv.ParametersLiteral{
		LogN:             logN,
		LogQ:             logQ,
		LogP:             logP,
		PlaintextModulus: p.Uint64(),
	}
	params, err := bfv.NewParametersFromLiteral(lit)
	if err != nil {
		return nil, err
	}

	kgen := rlwe.NewKeyGenerator(params)
	sk := kgen.GenSecretKeyNew()
	pk := kgen.GenPublicKeyNew(sk)
	rlk := kgen.GenRelinearizationKeyNew(sk)
	evk := rlwe.NewMemEvaluationKeySet(rlk)

	return &BFVBackend{
		params:    params,
		prime:     new(field.Element).Set(p),
		encoder:   bfv.NewEncoder(params),
		encryptor: rlwe.NewEncryptor(params, pk),
		decryptor: rlwe.NewDecryptor(params, sk),
		evaluator: bfv.NewEvaluator(params, evk),
	}, nil
}

// Kind returns "bfv".
func (b *BFVBackend) Kind() string { return "bfv" }

// Encrypt packs values into the slots of a single BFV ciphertext.
func (b *BFVBackend) Encrypt(values []*field.Element) (Ciphertext, error) {
	pt := bfv.NewPlaintext(b.params, b.params.MaxLevel())
	ints := toInt64Slots(values)
	if err := b.encoder.Encode(ints, pt); err != nil {
		return nil, err
	}
	ct, err := b.encryptor.EncryptNew(pt)
	if err != nil {
		return nil, err
	}
	return &bfvCiphertext{ct: ct}, nil
}

// Decrypt recovers the plaintext slot vector from ct and reduces each slot
// back into F_p.
func (b *BFVBackend) Decrypt(ct Ciphertext) ([]*field.Element, error) {
	native, ok := ct.(*bfvCiphertext)
	if !ok {
		return nil, errWrongBackend("bfv", ct)
	}
	pt := b.decryptor.DecryptNew(native.ct)
	ints := make([]int64, b.params.MaxSlots())
	if err := b.encoder.Decode(pt, ints); err != nil {
		return nil, err
	}
	return fromInt64Slots(ints, b.prime), nil
}

// MulRelin multiplies two BFV ciphertexts and relinearizes.
func (b *BFVBackend) MulRelin(a, bb Ciphertext) (Ciphertext, error) {
	na, ok := a.(*bfvCiphertext)
	if !ok {
		return nil, errWrongBackend("bfv", a)
	}
	nb, ok := bb.(*bfvCiphertext)
	if !ok {
		return nil, errWrongBackend("bfv", bb)
	}
	res, err := b.evaluator.MulRelinNew(na.ct, nb.ct)
	if err != nil {
		return nil, err
	}
	return &bfvCiphertext{ct: res}, nil
}

// Add adds two BFV ciphertexts.
func (b *BFVBackend) Add(a, bb Ciphertext) (Ciphertext, error) {
	na, ok := a.(*bfvCiphertext)
	if !ok {
		return nil, errWrongBackend("bfv", a)
	}
	nb, ok := bb.(*bfvCiphertext)
	if !ok {
		return nil, errWrongBackend("bfv", bb)
	}
	res, err := b.evaluator.AddNew(na.ct, nb.ct)
	if err != nil {
		return nil, err
	}
	return &bfvCiphertext{ct: res}, nil
}
