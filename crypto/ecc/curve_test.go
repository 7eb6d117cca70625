package ecc

import (
	"testing"

	"github.com/cockroachdb/errors"
	qt "github.com/frankban/quicktest"
)

var (
	curve23  = Curve{P: 23, A: 1, B: 1}
	curve751 = Curve{P: 751, A: -1, B: 188}
)

func TestTestConstraints(t *testing.T) {
	c := qt.New(t)
	// 4 + 27 = 31 = 8 mod 23
	c.Assert(TestConstraints(23, 1, 1), qt.IsTrue)
	c.Assert(TestConstraints(751, -1, 188), qt.IsTrue)
	// y^2 = x^3 is singular
	c.Assert(TestConstraints(23, 0, 0), qt.IsFalse)
	// 4*(-3)^3 + 27*2^2 = -108 + 108 = 0
	c.Assert(TestConstraints(23, -3, 2), qt.IsFalse)
	c.Assert(TestConstraints(0, 1, 1), qt.IsFalse)
}

func TestCurveValidate(t *testing.T) {
	c := qt.New(t)
	c.Assert(curve23.Validate(), qt.IsNil)
	c.Assert(curve751.Validate(), qt.IsNil)

	for _, bad := range []Curve{
		{P: 2, A: 1, B: 1},
		{P: 21, A: 1, B: 1},
		{P: 23, A: -3, B: 2},
		{P: MaxModulus + 1, A: 1, B: 1},
	} {
		err := bad.Validate()
		c.Assert(errors.Is(err, ErrInvalidParameter), qt.IsTrue, qt.Commentf("%v", bad))
	}
}

func TestIsOnCurve(t *testing.T) {
	c := qt.New(t)
	c.Assert(curve23.IsOnCurve(NewPoint(3, 10)), qt.IsTrue)
	c.Assert(curve23.IsOnCurve(NewPoint(4, 0)), qt.IsTrue)
	c.Assert(curve23.IsOnCurve(NewPoint(3, 11)), qt.IsFalse)
	c.Assert(curve23.IsOnCurve(NewPoint(3, 33)), qt.IsFalse)
	c.Assert(curve23.IsOnCurve(Infinity()), qt.IsTrue)
	c.Assert(curve23.IsOnCurve(Invalid()), qt.IsFalse)
	c.Assert(curve751.IsOnCurve(NewPoint(0, 376)), qt.IsTrue)
}

func TestAdd(t *testing.T) {
	c := qt.New(t)

	r, err := curve23.Add(NewPoint(3, 10), NewPoint(9, 7))
	c.Assert(err, qt.IsNil)
	c.Assert(r, qt.Equals, NewPoint(17, 20))

	// doubling
	r, err = curve23.Add(NewPoint(3, 10), NewPoint(3, 10))
	c.Assert(err, qt.IsNil)
	c.Assert(r, qt.Equals, NewPoint(7, 12))

	// identity absorption
	r, err = curve23.Add(Infinity(), NewPoint(3, 10))
	c.Assert(err, qt.IsNil)
	c.Assert(r, qt.Equals, NewPoint(3, 10))
	r, err = curve23.Add(NewPoint(3, 10), Infinity())
	c.Assert(err, qt.IsNil)
	c.Assert(r, qt.Equals, NewPoint(3, 10))
	r, err = curve23.Add(Infinity(), Infinity())
	c.Assert(err, qt.IsNil)
	c.Assert(r.IsInfinity(), qt.IsTrue)

	// inverse pair, reduced and unreduced
	r, err = curve23.Add(NewPoint(3, 10), NewPoint(3, 13))
	c.Assert(err, qt.IsNil)
	c.Assert(r.IsInfinity(), qt.IsTrue)
	r, err = curve23.Add(NewPoint(3, 10), Negative(NewPoint(3, 10)))
	c.Assert(err, qt.IsNil)
	c.Assert(r.IsInfinity(), qt.IsTrue)

	// a point with y = 0 is its own inverse
	r, err = curve23.Add(NewPoint(4, 0), NewPoint(4, 0))
	c.Assert(err, qt.IsNil)
	c.Assert(r.IsInfinity(), qt.IsTrue)

	_, err = curve23.Add(Invalid(), NewPoint(3, 10))
	c.Assert(errors.Is(err, ErrInvalidPoint), qt.IsTrue)
	_, err = curve23.Add(NewPoint(3, 10), Invalid())
	c.Assert(errors.Is(err, ErrInvalidPoint), qt.IsTrue)
}

func TestAddNoInverse(t *testing.T) {
	c := qt.New(t)
	// 2 is not invertible mod 8, so the slope 3/2 has no solution
	composite := Curve{P: 8, A: 1, B: 1}
	_, err := composite.Add(NewPoint(0, 1), NewPoint(2, 4))
	c.Assert(errors.Is(err, ErrNoInverse), qt.IsTrue)
}

func TestSub(t *testing.T) {
	c := qt.New(t)
	sum, err := curve23.Add(NewPoint(3, 10), NewPoint(9, 7))
	c.Assert(err, qt.IsNil)
	r, err := curve23.Sub(sum, NewPoint(9, 7))
	c.Assert(err, qt.IsNil)
	c.Assert(r, qt.Equals, NewPoint(3, 10))

	r, err = curve23.Sub(NewPoint(3, 10), NewPoint(3, 10))
	c.Assert(err, qt.IsNil)
	c.Assert(r.IsInfinity(), qt.IsTrue)

	r, err = curve23.Sub(NewPoint(3, 10), Infinity())
	c.Assert(err, qt.IsNil)
	c.Assert(r, qt.Equals, NewPoint(3, 10))
}

func TestMult(t *testing.T) {
	c := qt.New(t)

	r, err := curve23.Mult(NewPoint(3, 10), 1)
	c.Assert(err, qt.IsNil)
	c.Assert(r, qt.Equals, NewPoint(3, 10))

	r, err = curve23.Mult(NewPoint(3, 10), 2)
	c.Assert(err, qt.IsNil)
	c.Assert(r, qt.Equals, NewPoint(7, 12))

	r, err = curve23.Mult(NewPoint(0, 1), 28)
	c.Assert(err, qt.IsNil)
	c.Assert(r.IsInfinity(), qt.IsTrue)

	r, err = curve23.Mult(Infinity(), 5)
	c.Assert(err, qt.IsNil)
	c.Assert(r.IsInfinity(), qt.IsTrue)

	_, err = curve23.Mult(NewPoint(3, 10), 0)
	c.Assert(errors.Is(err, ErrInvalidParameter), qt.IsTrue)
	_, err = curve23.Mult(NewPoint(3, 10), -3)
	c.Assert(errors.Is(err, ErrInvalidParameter), qt.IsTrue)
	_, err = curve23.Mult(Invalid(), 3)
	c.Assert(errors.Is(err, ErrInvalidPoint), qt.IsTrue)
}

func TestTextbookKeyAgreement(t *testing.T) {
	c := qt.New(t)
	g := NewPoint(0, 376)

	pubA, err := curve751.Mult(g, 85)
	c.Assert(err, qt.IsNil)
	c.Assert(pubA, qt.Equals, NewPoint(671, 558))

	pubB, err := curve751.Mult(g, 113)
	c.Assert(err, qt.IsNil)
	c.Assert(pubB, qt.Equals, NewPoint(34, 633))

	sharedA, err := curve751.Mult(pubA, 113)
	c.Assert(err, qt.IsNil)
	sharedB, err := curve751.Mult(pubB, 85)
	c.Assert(err, qt.IsNil)
	c.Assert(sharedA, qt.Equals, NewPoint(47, 416))
	c.Assert(sharedB, qt.Equals, sharedA)
}
