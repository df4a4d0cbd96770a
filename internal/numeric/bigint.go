// Package numeric implements pycse's numeric tower: arbitrary-precision
// integers, IEEE-754 floats, and Python-faithful complex arithmetic and
// cross-type comparison (spec.md §4.4).
//
// No third-party bignum or complex library appears anywhere in the
// retrieved corpus — go-dws models its integer value on a machine int64 and
// yaegi relies on Go's built-in complex128 — so this package is built on
// math/big and plain float64 pairs; see DESIGN.md for the full
// standard-library justification.
package numeric

import (
	"fmt"
	"math/big"
	"strings"
)

// BigInt is an arbitrary-precision integer.
type BigInt struct {
	V *big.Int
}

// NewBigIntFromInt64 wraps a machine integer.
func NewBigIntFromInt64(v int64) *BigInt {
	return &BigInt{V: big.NewInt(v)}
}

// ParseBigInt parses a BIGINT token lexeme: decimal, or 0x/0o/0b prefixed,
// with underscores permitted between digits (spec.md §4.1, §4.5).
func ParseBigInt(lexeme string) (*BigInt, error) {
	clean := strings.ReplaceAll(lexeme, "_", "")
	base := 10
	switch {
	case strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X"):
		base = 16
		clean = clean[2:]
	case strings.HasPrefix(clean, "0o") || strings.HasPrefix(clean, "0O"):
		base = 8
		clean = clean[2:]
	case strings.HasPrefix(clean, "0b") || strings.HasPrefix(clean, "0B"):
		base = 2
		clean = clean[2:]
	}
	v, ok := new(big.Int).SetString(clean, base)
	if !ok {
		return nil, fmt.Errorf("invalid integer literal %q", lexeme)
	}
	return &BigInt{V: v}, nil
}

func (b *BigInt) String() string { return b.V.String() }

// Add, Sub, Mul are plain arbitrary-precision arithmetic.
func (b *BigInt) Add(o *BigInt) *BigInt { return &BigInt{V: new(big.Int).Add(b.V, o.V)} }
func (b *BigInt) Sub(o *BigInt) *BigInt { return &BigInt{V: new(big.Int).Sub(b.V, o.V)} }
func (b *BigInt) Mul(o *BigInt) *BigInt { return &BigInt{V: new(big.Int).Mul(b.V, o.V)} }
func (b *BigInt) Neg() *BigInt          { return &BigInt{V: new(big.Int).Neg(b.V)} }
func (b *BigInt) Sign() int             { return b.V.Sign() }
func (b *BigInt) Cmp(o *BigInt) int     { return b.V.Cmp(o.V) }
func (b *BigInt) IsZero() bool          { return b.V.Sign() == 0 }

// Float64 converts to the nearest float64; used when a comparison or an
// arithmetic mix promotes to Float.
func (b *BigInt) Float64() float64 {
	f, _ := new(big.Float).SetInt(b.V).Float64()
	return f
}

// FitsSafeInteger reports whether |b| <= 2^53, the threshold spec.md §4.4
// uses to decide whether a direct float64 cast is exact enough for
// cross-type comparison.
func (b *BigInt) FitsSafeInteger() bool {
	return new(big.Int).Abs(b.V).Cmp(safeIntegerBound) <= 0
}

var safeIntegerBound = new(big.Int).Lsh(big.NewInt(1), 53)

// FloorDivMod implements Python's floor division and modulo: the quotient
// rounds toward negative infinity and the remainder's sign matches the
// divisor's (spec.md §4.4, §8). Division by zero is the caller's concern —
// it must check IsZero itself and raise ZeroDivisionError (this function
// panics on a zero divisor so a caller bug surfaces immediately rather than
// silently corrupting results).
func (b *BigInt) FloorDivMod(divisor *BigInt) (quotient, remainder *BigInt) {
	if divisor.IsZero() {
		panic("numeric: FloorDivMod by zero")
	}
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(b.V, divisor.V, r) // truncated division: r has the sign of the dividend
	if r.Sign() != 0 && (r.Sign() < 0) != (divisor.V.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
		r.Add(r, divisor.V)
	}
	return &BigInt{V: q}, &BigInt{V: r}
}

// Pow raises b to a non-negative integer exponent. Negative exponents are
// the caller's responsibility to promote to Float first (spec.md §4.5).
func (b *BigInt) Pow(exp *BigInt) (*BigInt, error) {
	if exp.Sign() < 0 {
		return nil, fmt.Errorf("numeric: BigInt.Pow requires a non-negative exponent")
	}
	return &BigInt{V: new(big.Int).Exp(b.V, exp.V, nil)}, nil
}

// CompareBigIntFloat implements spec.md §4.4's cross-type comparison law:
// returns -1, 0, or 1 for i <, ==, > f.
func CompareBigIntFloat(i *BigInt, f float64) int {
	if isInf(f, 1) {
		return -1
	}
	if isInf(f, -1) {
		return 1
	}
	signI := i.Sign()
	signF := floatSign(f)
	if signI != signF {
		if signI < signF {
			return -1
		}
		return 1
	}
	if signI == 0 {
		return 0 // both zero
	}
	if i.FitsSafeInteger() {
		iv := i.Float64()
		switch {
		case iv < f:
			return -1
		case iv > f:
			return 1
		default:
			return 0
		}
	}

	digits := len(strings.TrimLeft(new(big.Int).Abs(i.V).String(), "-"))
	floatDigits := magnitudeDigitCount(absFloat(f))
	if digits != floatDigits {
		cmp := 1
		if digits < floatDigits {
			cmp = -1
		}
		if signI < 0 {
			cmp = -cmp
		}
		return cmp
	}

	iStr := strings.TrimLeft(new(big.Int).Abs(i.V).String(), "-")
	fStr := approximateBigIntString(absFloat(f), 30)
	cmp := strings.Compare(padRight(iStr, len(fStr)), padRight(fStr, len(iStr)))
	if signI < 0 {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return -1
	case cmp > 0:
		return 1
	default:
		return 0
	}
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat("0", n-len(s))
}

// approximateBigIntString renders |f| (f >= 0) as a decimal integer string
// with at most `precision` significant digits, for lexicographic comparison
// against a BigInt's exact digit string when digit counts tie.
func approximateBigIntString(f float64, precision int) string {
	bf := new(big.Float).SetPrec(256).SetFloat64(f)
	s := bf.Text('f', 0)
	if len(s) <= precision {
		return s
	}
	// Keep the leading `precision` significant digits, zero-fill the rest —
	// the trailing digits of a float64's decimal expansion beyond its ~17
	// significant digits carry no real information anyway.
	return padRight(s[:precision], len(s))
}
