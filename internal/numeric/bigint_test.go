package numeric

import "testing"

func TestParseBigIntBases(t *testing.T) {
	tests := []struct {
		lexeme string
		want   int64
	}{
		{"42", 42},
		{"0x2a", 42},
		{"0X2A", 42},
		{"0o52", 42},
		{"0b101010", 42},
		{"1_000_000", 1000000},
	}
	for _, tt := range tests {
		got, err := ParseBigInt(tt.lexeme)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.lexeme, err)
		}
		if got.Cmp(NewBigIntFromInt64(tt.want)) != 0 {
			t.Errorf("%q: got %s, want %d", tt.lexeme, got, tt.want)
		}
	}
}

func TestParseBigIntRejectsGarbage(t *testing.T) {
	if _, err := ParseBigInt("0xzz"); err == nil {
		t.Fatal("expected an error for an invalid hex literal")
	}
}

// TestAddSubRoundTrip checks spec.md §8's invariant (a+b)-b == a.
func TestAddSubRoundTrip(t *testing.T) {
	a := NewBigIntFromInt64(123456789)
	b := NewBigIntFromInt64(-987)
	got := a.Add(b).Sub(b)
	if got.Cmp(a) != 0 {
		t.Fatalf("(a+b)-b != a: got %s, want %s", got, a)
	}
}

// TestFloorDivModIdentity checks spec.md §8's a == (a//b)*b + (a%b) identity
// and that the remainder's sign matches the divisor's, across sign
// combinations.
func TestFloorDivModIdentity(t *testing.T) {
	pairs := [][2]int64{{10, 3}, {10, -3}, {-10, 3}, {-10, -3}, {7, 7}, {0, 5}}
	for _, p := range pairs {
		a := NewBigIntFromInt64(p[0])
		b := NewBigIntFromInt64(p[1])
		q, r := a.FloorDivMod(b)
		reconstructed := q.Mul(b).Add(r)
		if reconstructed.Cmp(a) != 0 {
			t.Errorf("%d // %d: identity violated, got q=%s r=%s reconstructed=%s", p[0], p[1], q, r, reconstructed)
		}
		if !r.IsZero() && r.Sign() != b.Sign() {
			t.Errorf("%d %% %d: remainder sign %d does not match divisor sign %d", p[0], p[1], r.Sign(), b.Sign())
		}
	}
}

func TestFloorDivModKnownValues(t *testing.T) {
	q, r := NewBigIntFromInt64(10).FloorDivMod(NewBigIntFromInt64(-3))
	if q.Cmp(NewBigIntFromInt64(-4)) != 0 {
		t.Errorf("10 // -3: got %s, want -4", q)
	}
	if r.Cmp(NewBigIntFromInt64(-2)) != 0 {
		t.Errorf("10 %% -3: got %s, want -2", r)
	}
}

func TestFloorDivModByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected FloorDivMod to panic on a zero divisor")
		}
	}()
	NewBigIntFromInt64(1).FloorDivMod(NewBigIntFromInt64(0))
}

func TestPowNonNegativeExponent(t *testing.T) {
	got, err := NewBigIntFromInt64(2).Pow(NewBigIntFromInt64(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cmp(NewBigIntFromInt64(1024)) != 0 {
		t.Fatalf("2**10: got %s, want 1024", got)
	}
}

func TestPowNegativeExponentIsAnError(t *testing.T) {
	if _, err := NewBigIntFromInt64(2).Pow(NewBigIntFromInt64(-1)); err == nil {
		t.Fatal("expected an error for a negative exponent")
	}
}

func TestFitsSafeInteger(t *testing.T) {
	if !NewBigIntFromInt64(1 << 52).FitsSafeInteger() {
		t.Error("2^52 should fit the safe-integer bound")
	}
	huge, _ := ParseBigInt("99999999999999999999999999999999")
	if huge.FitsSafeInteger() {
		t.Error("a 32-digit integer should not fit the safe-integer bound")
	}
}

// TestCompareBigIntFloatSafeIntegerFastPath checks spec.md §4.4's cross-type
// comparison law at |n| <= 2^53: BigInt(n) == Float(n.0).
func TestCompareBigIntFloatSafeIntegerFastPath(t *testing.T) {
	tests := []struct {
		i    int64
		f    float64
		want int
	}{
		{5, 5.0, 0},
		{5, 5.5, -1},
		{6, 5.5, 1},
		{-5, -5.0, 0},
		{-5, 5.0, -1},
		{0, 0.0, 0},
	}
	for _, tt := range tests {
		got := CompareBigIntFloat(NewBigIntFromInt64(tt.i), tt.f)
		if got != tt.want {
			t.Errorf("CompareBigIntFloat(%d, %v) = %d, want %d", tt.i, tt.f, got, tt.want)
		}
	}
}

func TestCompareBigIntFloatInfinities(t *testing.T) {
	big, _ := ParseBigInt("99999999999999999999999999999999")
	if CompareBigIntFloat(big, posInf()) != -1 {
		t.Error("any BigInt should compare less than +Inf")
	}
	if CompareBigIntFloat(big, negInf()) != 1 {
		t.Error("any BigInt should compare greater than -Inf")
	}
}

func TestCompareBigIntFloatDigitCountFallback(t *testing.T) {
	huge, _ := ParseBigInt("100000000000000000") // 18 digits, beyond 2^53
	// A float with fewer integer digits should compare smaller.
	smaller := 1e10
	if CompareBigIntFloat(huge, smaller) != 1 {
		t.Errorf("expected huge BigInt to compare greater than a much smaller float")
	}
}

func posInf() float64 { return 1.0 / zero() }
func negInf() float64 { return -1.0 / zero() }
func zero() float64   { return 0.0 }
