package ecc

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// MaxModulus bounds the field size so that every intermediate product of
// the arithmetic fits in an int64.
const MaxModulus = 1 << 20

// Curve holds the parameters of y^2 = x^3 + ax + b (mod p). The coefficients
// are kept as given and reduced on use.
type Curve struct {
	P int64 `json:"p"`
	A int64 `json:"a"`
	B int64 `json:"b"`
}

// TestConstraints reports whether (4a^3 + 27b^2) mod p != 0, that is, whether
// the curve is non-singular.
func TestConstraints(p, a, b int64) bool {
	if p <= 0 {
		return false
	}
	am, bm := Mod(a, p), Mod(b, p)
	a3 := Mod(Mod(am*am, p)*am, p)
	b2 := Mod(bm*bm, p)
	return Mod(4*a3+27*b2, p) != 0
}

// Validate checks the preconditions the arithmetic relies on: an odd prime
// modulus no larger than MaxModulus and a non-singular curve.
func (c Curve) Validate() error {
	switch {
	case c.P < 3 || c.P > MaxModulus:
		return errors.Wrapf(ErrInvalidParameter, "modulus %d out of range [3, %d]", c.P, MaxModulus)
	case !IsPrime(c.P):
		return errors.Wrapf(ErrInvalidParameter, "modulus %d is not prime", c.P)
	case !TestConstraints(c.P, c.A, c.B):
		return errors.Wrapf(ErrInvalidParameter, "curve %s is singular", c)
	}
	return nil
}

// String returns a human readable representation of the curve equation.
func (c Curve) String() string {
	return fmt.Sprintf("y^2 = x^3 + %dx + %d mod %d", c.A, c.B, c.P)
}

// rhs evaluates x^3 + ax + b mod p.
func (c Curve) rhs(x int64) int64 {
	x = Mod(x, c.P)
	x3 := Mod(Mod(x*x, c.P)*x, c.P)
	return Mod(x3+Mod(c.A, c.P)*x+Mod(c.B, c.P), c.P)
}

// Reduce returns p with its coordinates reduced to [0, p). Non affine points
// are returned unchanged.
func (c Curve) Reduce(p Point) Point {
	if p.kind != kindAffine {
		return p
	}
	return NewPoint(Mod(p.X, c.P), Mod(p.Y, c.P))
}

// IsOnCurve reports whether p satisfies the curve equation with coordinates
// in [0, p). The point at infinity is always on the curve.
func (c Curve) IsOnCurve(p Point) bool {
	switch p.kind {
	case kindInfinity:
		return true
	case kindAffine:
		if p.X < 0 || p.X >= c.P || p.Y < 0 || p.Y >= c.P {
			return false
		}
		return Mod(p.Y*p.Y, c.P) == c.rhs(p.X)
	default:
		return false
	}
}

// Add computes p + q with the chord and tangent rule. The point at infinity
// is absorbed and a point plus its inverse is the point at infinity.
// ErrNoInverse is returned when the slope does not exist mod p, which only
// happens for points that are not on the curve or a non-prime modulus.
func (c Curve) Add(p, q Point) (Point, error) {
	if !IsRealPoint(p) || !IsRealPoint(q) {
		return Invalid(), errors.Wrap(ErrInvalidPoint, "cannot add unset points")
	}
	if p.IsInfinity() {
		return q, nil
	}
	if q.IsInfinity() {
		return p, nil
	}
	p, q = c.Reduce(p), c.Reduce(q)
	if p.X == q.X && Mod(p.Y+q.Y, c.P) == 0 {
		return Infinity(), nil
	}
	var (
		lambda int64
		err    error
	)
	if p.Equal(q) {
		num := Mod(3*Mod(p.X*p.X, c.P)+Mod(c.A, c.P), c.P)
		lambda, err = ModDivide(num, Mod(2*p.Y, c.P), c.P)
	} else {
		lambda, err = ModDivide(Mod(q.Y-p.Y, c.P), Mod(q.X-p.X, c.P), c.P)
	}
	if err != nil {
		return Invalid(), errors.Wrapf(err, "adding %s and %s", p, q)
	}
	x := Mod(lambda*lambda-p.X-q.X, c.P)
	y := Mod(lambda*Mod(p.X-x, c.P)-p.Y, c.P)
	return NewPoint(x, y), nil
}

// Sub computes p - q as p + (-q).
func (c Curve) Sub(p, q Point) (Point, error) {
	return c.Add(p, c.Reduce(Negative(q)))
}

// Mult computes k*p by adding p to itself k-1 times. The running time is
// linear in k, which is fine for the field sizes this package handles.
func (c Curve) Mult(p Point, k int64) (Point, error) {
	if k <= 0 {
		return Invalid(), errors.Wrapf(ErrInvalidParameter, "scalar %d must be positive", k)
	}
	if !IsRealPoint(p) {
		return Invalid(), errors.Wrap(ErrInvalidPoint, "cannot multiply an unset point")
	}
	out := p
	for i := int64(1); i < k; i++ {
		var err error
		if out, err = c.Add(out, p); err != nil {
			return Invalid(), err
		}
	}
	return out, nil
}
