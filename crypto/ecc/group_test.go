package ecc

import (
	"testing"

	"github.com/cockroachdb/errors"
	qt "github.com/frankban/quicktest"
)

func TestNewGroup23(t *testing.T) {
	c := qt.New(t)
	g, err := NewGroup(curve23)
	c.Assert(err, qt.IsNil)

	c.Assert(g.Curve(), qt.Equals, curve23)
	c.Assert(g.Residues(), qt.DeepEquals, []int64{1, 2, 3, 4, 6, 8, 9, 12, 13, 16, 18})
	c.Assert(g.Points(), qt.HasLen, 27)
	c.Assert(g.Size(), qt.Equals, int64(28))
	c.Assert(g.Points()[:7], qt.DeepEquals, []Point{
		NewPoint(0, 1), NewPoint(0, 22), NewPoint(1, 7), NewPoint(1, 16),
		NewPoint(3, 10), NewPoint(3, 13), NewPoint(4, 0),
	})
	for _, p := range g.Points() {
		c.Assert(curve23.IsOnCurve(p), qt.IsTrue)
	}

	// 12 candidates of order 28, none prime: the middle one is picked
	c.Assert(g.Generator(), qt.Equals, NewPoint(9, 7))
	c.Assert(g.Order(), qt.Equals, int64(28))
	c.Assert(g.HasGenerator(), qt.IsTrue)
}

func TestNewGroupSelection(t *testing.T) {
	c := qt.New(t)

	// all candidates have prime order 13: the first one wins
	g, err := NewGroup(Curve{P: 7, A: 0, B: 3})
	c.Assert(err, qt.IsNil)
	c.Assert(g.Points(), qt.HasLen, 12)
	c.Assert(g.Generator(), qt.Equals, NewPoint(1, 2))
	c.Assert(g.Order(), qt.Equals, int64(13))

	// candidates (7,3) (7,8) (8,5) (8,6) of order 12
	g, err = NewGroup(Curve{P: 11, A: 1, B: 0})
	c.Assert(err, qt.IsNil)
	c.Assert(g.Generator(), qt.Equals, NewPoint(8, 5))
	c.Assert(g.Order(), qt.Equals, int64(12))
}

func TestNewGroupWithoutGenerator(t *testing.T) {
	c := qt.New(t)
	// the group of y^2 = x^3 + 1 over F_7 is not cyclic
	g, err := NewGroup(Curve{P: 7, A: 0, B: 1})
	c.Assert(err, qt.IsNil)
	c.Assert(g.Points(), qt.HasLen, 11)
	c.Assert(g.Generator().IsInfinity(), qt.IsTrue)
	c.Assert(g.Order(), qt.Equals, int64(0))
	c.Assert(g.HasGenerator(), qt.IsFalse)
}

func TestNewGroupInvalid(t *testing.T) {
	c := qt.New(t)
	_, err := NewGroup(Curve{P: 23, A: 0, B: 0})
	c.Assert(errors.Is(err, ErrInvalidParameter), qt.IsTrue)
	_, err = NewGroup(Curve{P: 25, A: 1, B: 1})
	c.Assert(errors.Is(err, ErrInvalidParameter), qt.IsTrue)
}

func TestNewGroup751(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping generator search on F_751 in short mode")
	}
	c := qt.New(t)
	g, err := NewGroup(curve751)
	c.Assert(err, qt.IsNil)
	c.Assert(g.Points(), qt.HasLen, 726)
	// the group has prime order 727, every point generates it and the first
	// enumerated one is chosen
	c.Assert(g.Generator(), qt.Equals, NewPoint(0, 375))
	c.Assert(g.Order(), qt.Equals, int64(727))
}

func TestNewGroupWithGenerator(t *testing.T) {
	c := qt.New(t)
	g, err := NewGroupWithGenerator(curve751, NewPoint(0, 376))
	c.Assert(err, qt.IsNil)
	c.Assert(g.Generator(), qt.Equals, NewPoint(0, 376))
	c.Assert(g.Order(), qt.Equals, int64(727))
	c.Assert(g.Points(), qt.HasLen, 726)

	_, err = NewGroupWithGenerator(curve751, NewPoint(0, 1))
	c.Assert(errors.Is(err, ErrInvalidPoint), qt.IsTrue)

	// (4, 0) has order 2
	_, err = NewGroupWithGenerator(curve23, NewPoint(4, 0))
	c.Assert(errors.Is(err, ErrInvalidParameter), qt.IsTrue)
}

func TestRestoreGroup(t *testing.T) {
	c := qt.New(t)
	g, err := NewGroup(curve23)
	c.Assert(err, qt.IsNil)

	r, err := RestoreGroup(g.Curve(), g.Points(), g.Generator(), g.Order())
	c.Assert(err, qt.IsNil)
	c.Assert(r.Points(), qt.DeepEquals, g.Points())
	c.Assert(r.Generator(), qt.Equals, g.Generator())
	c.Assert(r.Order(), qt.Equals, g.Order())
	c.Assert(r.Residues(), qt.DeepEquals, g.Residues())

	_, err = RestoreGroup(curve23, []Point{NewPoint(3, 11)}, Infinity(), 0)
	c.Assert(errors.Is(err, ErrInvalidPoint), qt.IsTrue)
	_, err = RestoreGroup(curve23, g.Points(), NewPoint(3, 11), 28)
	c.Assert(errors.Is(err, ErrInvalidPoint), qt.IsTrue)
	_, err = RestoreGroup(curve23, g.Points(), g.Generator(), 100)
	c.Assert(errors.Is(err, ErrInvalidParameter), qt.IsTrue)
}

func TestGroupLaws(t *testing.T) {
	c := qt.New(t)
	g, err := NewGroup(curve23)
	c.Assert(err, qt.IsNil)
	elements := append(g.Points(), Infinity())

	for _, p := range elements {
		// identity
		r, err := g.Add(p, Infinity())
		c.Assert(err, qt.IsNil)
		c.Assert(r, qt.Equals, p)

		// inverse
		r, err = g.Add(p, curve23.Reduce(Negative(p)))
		c.Assert(err, qt.IsNil)
		c.Assert(r.IsInfinity(), qt.IsTrue, qt.Commentf("%s", p))

		for _, q := range elements {
			// closure and commutativity
			pq, err := g.Add(p, q)
			c.Assert(err, qt.IsNil)
			c.Assert(g.Contains(pq), qt.IsTrue, qt.Commentf("%s + %s = %s", p, q, pq))
			qp, err := g.Add(q, p)
			c.Assert(err, qt.IsNil)
			c.Assert(qp, qt.Equals, pq)
		}
	}

	// associativity on a sample of triples
	for i := 0; i < len(elements); i += 3 {
		for j := 1; j < len(elements); j += 4 {
			for k := 2; k < len(elements); k += 5 {
				p, q, r := elements[i], elements[j], elements[k]
				pq, err := g.Add(p, q)
				c.Assert(err, qt.IsNil)
				left, err := g.Add(pq, r)
				c.Assert(err, qt.IsNil)
				qr, err := g.Add(q, r)
				c.Assert(err, qt.IsNil)
				right, err := g.Add(p, qr)
				c.Assert(err, qt.IsNil)
				c.Assert(left, qt.Equals, right, qt.Commentf("(%s + %s) + %s", p, q, r))
			}
		}
	}
}

func TestGeneratorOrder(t *testing.T) {
	c := qt.New(t)
	g, err := NewGroup(curve23)
	c.Assert(err, qt.IsNil)
	gen, n := g.Generator(), g.Order()

	seen := map[Point]bool{}
	for i := int64(1); i < n; i++ {
		r, err := g.Mult(gen, i)
		c.Assert(err, qt.IsNil)
		c.Assert(r.IsInfinity(), qt.IsFalse, qt.Commentf("%d*%s", i, gen))
		c.Assert(seen[r], qt.IsFalse)
		seen[r] = true
	}
	c.Assert(seen, qt.HasLen, len(g.Points()))

	r, err := g.Mult(gen, n)
	c.Assert(err, qt.IsNil)
	c.Assert(r.IsInfinity(), qt.IsTrue)
}

func TestOrderOf(t *testing.T) {
	c := qt.New(t)
	g, err := NewGroup(curve23)
	c.Assert(err, qt.IsNil)

	n, err := g.OrderOf(NewPoint(4, 0))
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, int64(2))

	n, err = g.OrderOf(Infinity())
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, int64(1))

	for _, p := range g.Points() {
		n, err := g.OrderOf(p)
		c.Assert(err, qt.IsNil)
		c.Assert(g.Size()%n, qt.Equals, int64(0))
	}

	_, err = g.OrderOf(Invalid())
	c.Assert(errors.Is(err, ErrInvalidPoint), qt.IsTrue)

	// (0, 2) is off the curve and its multiples never reach the identity
	_, err = g.OrderOf(NewPoint(0, 2))
	c.Assert(errors.Is(err, ErrOrderNotFound), qt.IsTrue)
}

func TestGroupContains(t *testing.T) {
	c := qt.New(t)
	g, err := NewGroup(curve23)
	c.Assert(err, qt.IsNil)
	c.Assert(g.Contains(NewPoint(3, 10)), qt.IsTrue)
	c.Assert(g.Contains(Infinity()), qt.IsTrue)
	c.Assert(g.Contains(NewPoint(3, 11)), qt.IsFalse)
	c.Assert(g.Contains(Invalid()), qt.IsFalse)
}
