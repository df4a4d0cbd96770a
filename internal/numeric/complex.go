package numeric

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroDivision is returned by Complex.Div/Pow when the operation is
// undefined, mirroring Python's ZeroDivisionError (spec.md §4.4).
var ErrZeroDivision = errors.New("division by zero")

// Complex is a Python-faithful complex number: two float64 components with
// CPython's arithmetic laws, not Go's built-in complex128 (kept separate so
// every operation can raise pycse's own ZeroDivisionError rather than
// silently producing NaN, as Go's native complex division would).
type Complex struct {
	Real, Imag float64
}

func (c Complex) Add(o Complex) Complex { return Complex{c.Real + o.Real, c.Imag + o.Imag} }
func (c Complex) Sub(o Complex) Complex { return Complex{c.Real - o.Real, c.Imag - o.Imag} }

// Mul implements (ac-bd) + (bc+ad)i.
func (c Complex) Mul(o Complex) Complex {
	return Complex{
		Real: c.Real*o.Real - c.Imag*o.Imag,
		Imag: c.Imag*o.Real + c.Real*o.Imag,
	}
}

// Div implements CPython's branched division algorithm (spec.md §4.4),
// chosen over the textbook "multiply by the conjugate" formula because it
// avoids overflow when one component is much larger than the other.
func (c Complex) Div(o Complex) (Complex, error) {
	a, b, cc, d := c.Real, c.Imag, o.Real, o.Imag
	if cc == 0 && d == 0 {
		return Complex{}, ErrZeroDivision
	}
	if math.Abs(d) < math.Abs(cc) {
		ratio := d / cc
		denom := cc + d*ratio
		return Complex{
			Real: (a + b*ratio) / denom,
			Imag: (b - a*ratio) / denom,
		}, nil
	}
	ratio := cc / d
	denom := d + cc*ratio
	return Complex{
		Real: (b + a*ratio) / denom,
		Imag: (b*ratio - a) / denom,
	}, nil
}

// Pow implements z^w for w = o, using the general exp(w * ln z) identity,
// with the zero-base edge case from spec.md §4.4 handled explicitly.
func (c Complex) Pow(o Complex) (Complex, error) {
	r := math.Hypot(c.Real, c.Imag)
	if r == 0 {
		if o.Real < 0 || o.Imag != 0 {
			return Complex{}, ErrZeroDivision
		}
		if o.Real == 0 {
			return Complex{Real: 1}, nil
		}
		return Complex{}, nil
	}
	lnr := math.Log(r)
	theta := math.Atan2(c.Imag, c.Real)
	a, b := o.Real, o.Imag

	mag := math.Exp(a*lnr - b*theta)
	angle := b*lnr + a*theta
	return Complex{
		Real: mag * math.Cos(angle),
		Imag: mag * math.Sin(angle),
	}, nil
}

func (c Complex) Neg() Complex { return Complex{-c.Real, -c.Imag} }

// Eq is component-wise exact equality (spec.md §4.4).
func (c Complex) Eq(o Complex) bool { return c.Real == o.Real && c.Imag == o.Imag }

// IsZero reports whether c is 0+0i, pycse's truthiness test for Complex
// (spec.md §4.5).
func (c Complex) IsZero() bool { return c.Real == 0 && c.Imag == 0 }

// String formats c the way CPython's complex repr does: scientific
// notation per-component outside [1e-4, 1e16), a bare "Bj" when the real
// part is exactly zero, and "(A+Bj)"/"(A-Bj)" otherwise (spec.md §4.4).
func (c Complex) String() string {
	imagStr := formatComplexComponent(c.Imag) + "j"
	if c.Real == 0 {
		return imagStr
	}
	sign := "+"
	imagMag := c.Imag
	if c.Imag < 0 || math.Signbit(c.Imag) {
		sign = "-"
		imagMag = -c.Imag
	}
	return fmt.Sprintf("(%s%s%sj)", formatComplexComponent(c.Real), sign, formatComplexComponent(imagMag))
}
