package linear

import (
	"testing"

	"github.com/aurorp1g/qpsc/field"
	"github.com/holiman/uint256"
)

func testPrime() *field.Element {
	return uint256.NewInt(65579)
}

func sequentialState(p *field.Element) []*field.Element {
	state := make([]*field.Element, Size)
	for i := 0; i < Size; i++ {
		state[i] = field.FromUint64(uint64(i+1), p)
	}
	return state
}

func TestApplyRejectsWrongShape(t *testing.T) {
	l := New()
	p := testPrime()
	_, err := l.Apply(make([]*field.Element, 10), p)
	if err != ErrInvalidShape {
		t.Fatalf("Apply with bad shape: err = %v, want ErrInvalidShape", err)
	}
}

func TestApplyOutputShapeAndRange(t *testing.T) {
	l := New()
	p := testPrime()
	state := sequentialState(p)

	out, err := l.Apply(state, p)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != Size {
		t.Fatalf("len(out) = %d, want %d", len(out), Size)
	}
	for i, v := range out {
		if v.Cmp(p) >= 0 {
			t.Fatalf("out[%d] = %s out of range for p=%s", i, v, p)
		}
	}
}

func TestApplyMatchesNaive(t *testing.T) {
	l := New()
	p := testPrime()

	vectors := [][]uint64{
		seqVector(1),
		seqVector(0),
		constVector(65578),
		mixedVector(),
	}

	for vi, vec := range vectors {
		state := make([]*field.Element, Size)
		for i, v := range vec {
			state[i] = field.FromUint64(v, p)
		}

		fast, err := l.Apply(state, p)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		naive, err := l.ApplyNaive(state, p)
		if err != nil {
			t.Fatalf("ApplyNaive: %v", err)
		}
		for i := range fast {
			if !field.Equal(fast[i], naive[i]) {
				t.Fatalf("vector %d: Apply and ApplyNaive disagree at row %d: %s != %s", vi, i, fast[i], naive[i])
			}
		}
	}
}

func TestBranchNumberConstants(t *testing.T) {
	if LinearBranchNumber != 6 {
		t.Errorf("LinearBranchNumber = %d, want 6", LinearBranchNumber)
	}
	if DifferentialBranchNumber != 10 {
		t.Errorf("DifferentialBranchNumber = %d, want 10", DifferentialBranchNumber)
	}
}

func seqVector(start uint64) []uint64 {
	v := make([]uint64, Size)
	for i := range v {
		v[i] = start + uint64(i)
	}
	return v
}

func constVector(c uint64) []uint64 {
	v := make([]uint64, Size)
	for i := range v {
		v[i] = c
	}
	return v
}

func mixedVector() []uint64 {
	v := make([]uint64, Size)
	for i := range v {
		if i%2 == 0 {
			v[i] = uint64(i) * 97
		} else {
			v[i] = 65579 - uint64(i)
		}
	}
	return v
}
