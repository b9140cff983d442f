// Package schedule derives QPSC's per-round constants and round keys from
// the nonce and the XOF, and implements the add-round-key step shared by
// whitening and every full round.
package schedule

import (
	"encoding/binary"
	"errors"

	"github.com/aurorp1g/qpsc/field"
	"github.com/aurorp1g/qpsc/xof"
)

// Size is the width of the state, round-constant, and round-key vectors.
const Size = 36

// elementWidth is the byte width the XOF stream is chunked into per
// generated field element, per spec's 8-byte-per-element encoding.
const elementWidth = 8

// outputLen is the total SHAKE128 output length: Size elements of
// elementWidth bytes each.
const outputLen = Size * elementWidth

// ErrInvalidShape is returned when a round-key or add-round-key operand does
// not have exactly Size elements.
var ErrInvalidShape = errors.New("schedule: vector must have exactly 36 elements")

// RoundConstants derives rc^(r,j): 36 field elements from
// SHAKE128(nonce || j_LE32 || r_LE32), each guaranteed non-zero.
//
// Input = nonce || j (4-byte little-endian) || r (4-byte little-endian).
// Output = 288 bytes, consumed as 36 consecutive 8-byte big-endian unsigned
// integers, each reduced mod p and remapped to 1 if the reduction is 0.
func RoundConstants(nonce []byte, j, r uint32, p *field.Element) [Size]*field.Element {
	input := make([]byte, 0, len(nonce)+8)
	input = append(input, nonce...)

	var jBuf, rBuf [4]byte
	binary.LittleEndian.PutUint32(jBuf[:], j)
	binary.LittleEndian.PutUint32(rBuf[:], r)
	input = append(input, jBuf[:]...)
	input = append(input, rBuf[:]...)

	out := xof.Shake128(input, outputLen)

	var rc [Size]*field.Element
	one := field.One()
	for k := 0; k < Size; k++ {
		chunk := out[k*elementWidth : (k+1)*elementWidth]
		v := binary.BigEndian.Uint64(chunk)
		e := field.FromUint64(v, p)
		if e.IsZero() {
			e = one
		}
		rc[k] = e
	}
	return rc
}

// RoundKeys computes rk_i = (K_i * rc_i) mod p. key and rc must each have
// exactly Size elements.
func RoundKeys(key, rc []*field.Element, p *field.Element) ([Size]*field.Element, error) {
	var rk [Size]*field.Element
	if len(key) != Size || len(rc) != Size {
		return rk, ErrInvalidShape
	}
	for i := 0; i < Size; i++ {
		rk[i] = field.Mul(key[i], rc[i], p)
	}
	return rk, nil
}

// AddRoundKey computes state' = state + rk (element-wise, mod p). state and
// rk must each have exactly Size elements.
func AddRoundKey(state, rk []*field.Element, p *field.Element) ([Size]*field.Element, error) {
	var out [Size]*field.Element
	if len(state) != Size || len(rk) != Size {
		return out, ErrInvalidShape
	}
	for i := 0; i < Size; i++ {
		out[i] = field.Add(state[i], rk[i], p)
	}
	return out, nil
}
