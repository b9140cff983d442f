package field

import (
	"testing"

	"github.com/holiman/uint256"
)

func p65579() *Element {
	// 65579 is prime and 65579 mod 3 == 2.
	return uint256.NewInt(65579)
}

func TestAddSubRoundTrip(t *testing.T) {
	p := p65579()
	x := uint256.NewInt(40000)
	y := uint256.NewInt(30000)

	sum := Add(x, y, p)
	back := Sub(sum, y, p)
	if !Equal(back, Canonicalize(x, p)) {
		t.Fatalf("Sub(Add(x,y),y) = %s, want %s", back, x)
	}
}

func TestAddWraps(t *testing.T) {
	p := p65579()
	x := uint256.NewInt(65578)
	y := uint256.NewInt(2)

	got := Add(x, y, p)
	want := uint256.NewInt(1) // (65578+2) mod 65579 = 1
	if !Equal(got, want) {
		t.Fatalf("Add wrap = %s, want %s", got, want)
	}
}

func TestNegZeroIsZero(t *testing.T) {
	p := p65579()
	z := Neg(Zero(), p)
	if !z.IsZero() {
		t.Fatalf("Neg(0) = %s, want 0", z)
	}
}

func TestNegInverts(t *testing.T) {
	p := p65579()
	x := uint256.NewInt(123)
	sum := Add(x, Neg(x, p), p)
	if !sum.IsZero() {
		t.Fatalf("x + (-x) = %s, want 0", sum)
	}
}

func TestMulInRange(t *testing.T) {
	p := p65579()
	x := uint256.NewInt(65000)
	y := uint256.NewInt(65000)
	got := Mul(x, y, p)
	if got.Cmp(p) >= 0 {
		t.Fatalf("Mul result %s not reduced mod p=%s", got, p)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	p := p65579()
	x := uint256.NewInt(4242)
	b := ToBytesBE(x, 8)
	if len(b) != 8 {
		t.Fatalf("ToBytesBE width = %d, want 8", len(b))
	}
	back := Canonicalize(FromBytesBE(b), p)
	if !Equal(back, x) {
		t.Fatalf("round trip = %s, want %s", back, x)
	}
}

func TestToBytesBEBigEndian(t *testing.T) {
	x := uint256.NewInt(1)
	b := ToBytesBE(x, 8)
	want := []byte{0, 0, 0, 0, 0, 0, 0, 1}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("ToBytesBE(1,8) = %v, want %v", b, want)
		}
	}
}
