package numeric

import "testing"

// TestMulKnownValue checks the spec.md §8 worked example (1+2j)*(3-4j) == (11+2j).
func TestMulKnownValue(t *testing.T) {
	a := Complex{Real: 1, Imag: 2}
	b := Complex{Real: 3, Imag: -4}
	got := a.Mul(b)
	want := Complex{Real: 11, Imag: 2}
	if !got.Eq(want) {
		t.Fatalf("(1+2j)*(3-4j): got %s, want %s", got, want)
	}
}

// TestIdentityMultiplication checks spec.md §8's z*(1+0i) == z.
func TestIdentityMultiplication(t *testing.T) {
	z := Complex{Real: 3.5, Imag: -7.25}
	one := Complex{Real: 1, Imag: 0}
	if got := z.Mul(one); !got.Eq(z) {
		t.Fatalf("z*(1+0i): got %s, want %s", got, z)
	}
}

// TestDivSelfIsOne checks spec.md §8's z/z == 1+0i for z != 0.
func TestDivSelfIsOne(t *testing.T) {
	z := Complex{Real: 3, Imag: -4}
	got, err := z.Div(z)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Complex{Real: 1, Imag: 0}
	if !got.Eq(want) {
		t.Fatalf("z/z: got %s, want %s", got, want)
	}
}

func TestDivByZeroIsAnError(t *testing.T) {
	z := Complex{Real: 1, Imag: 1}
	if _, err := z.Div(Complex{}); err != ErrZeroDivision {
		t.Fatalf("expected ErrZeroDivision, got %v", err)
	}
}

func TestDivLargeImaginaryDenominatorBranch(t *testing.T) {
	// |d| > |c| exercises the second branch of the CPython division algorithm.
	z := Complex{Real: 1, Imag: 0}
	got, err := z.Div(Complex{Real: 1, Imag: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1/(1+1000i) = (1-1000i)/(1+1000000) -- both components should be tiny
	// and the imaginary part negative.
	if got.Real <= 0 || got.Imag >= 0 {
		t.Fatalf("unexpected result for large-imaginary division: %s", got)
	}
}

func TestPowZeroBaseZeroExponentIsOne(t *testing.T) {
	got, err := (Complex{}).Pow(Complex{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Eq(Complex{Real: 1}) {
		t.Fatalf("0**0: got %s, want (1+0j)", got)
	}
}

func TestPowZeroBaseNegativeExponentIsAnError(t *testing.T) {
	if _, err := (Complex{}).Pow(Complex{Real: -1}); err != ErrZeroDivision {
		t.Fatalf("expected ErrZeroDivision for 0**-1, got %v", err)
	}
}

func TestPowZeroBaseComplexExponentIsAnError(t *testing.T) {
	if _, err := (Complex{}).Pow(Complex{Real: 1, Imag: 1}); err != ErrZeroDivision {
		t.Fatalf("expected ErrZeroDivision for 0**(1+1j), got %v", err)
	}
}

func TestPowZeroBasePositiveRealExponentIsZero(t *testing.T) {
	got, err := (Complex{}).Pow(Complex{Real: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Eq(Complex{}) {
		t.Fatalf("0**2: got %s, want (0+0j)", got)
	}
}

func TestPowSquareMatchesMul(t *testing.T) {
	z := Complex{Real: 2, Imag: 3}
	got, err := z.Pow(Complex{Real: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := z.Mul(z)
	if diff := got.Real - want.Real; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("z**2 real part: got %v, want %v", got.Real, want.Real)
	}
	if diff := got.Imag - want.Imag; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("z**2 imag part: got %v, want %v", got.Imag, want.Imag)
	}
}

func TestIsZero(t *testing.T) {
	if !(Complex{}).IsZero() {
		t.Fatal("zero-valued Complex should report IsZero")
	}
	if (Complex{Real: 1}).IsZero() {
		t.Fatal("(1+0j) should not report IsZero")
	}
}

func TestStringFormatsBareImaginaryWhenRealIsZero(t *testing.T) {
	got := Complex{Real: 0, Imag: 2}.String()
	if got != "2j" {
		t.Fatalf("got %q, want %q", got, "2j")
	}
}

func TestStringFormatsParenthesizedPair(t *testing.T) {
	// Unlike a bare Float, a whole-number complex component never forces a
	// trailing ".0" — matches CPython's complex repr (spec.md §8's
	// `(1+2j)*(3-4j)` -> `(11+2j)`).
	if got := (Complex{Real: 1, Imag: 2}).String(); got != "(1+2j)" {
		t.Fatalf("got %q, want %q", got, "(1+2j)")
	}
	if got := (Complex{Real: 1, Imag: -2}).String(); got != "(1-2j)" {
		t.Fatalf("got %q, want %q", got, "(1-2j)")
	}
	if got := (Complex{Real: 1.5, Imag: 2}).String(); got != "(1.5+2j)" {
		t.Fatalf("got %q, want %q", got, "(1.5+2j)")
	}
}
