package ecc

import (
	"cmp"
	"slices"

	"github.com/cockroachdb/errors"
)

// Group is the group of points of a small curve together with a generator
// and its order. The point at infinity is part of the group but it is not
// stored in the enumerated points. A Group is immutable once built and can
// be shared between goroutines.
type Group struct {
	curve     Curve
	residues  ResidueSet
	points    []Point
	index     map[Point]struct{}
	generator Point
	order     int64
}

type generatorCandidate struct {
	point Point
	order int64
}

// NewGroup validates the curve, enumerates all of its affine points and
// picks a generator. Every point whose multiples 1..n (n being the number of
// affine points) stay inside the group is a candidate. Candidates are sorted
// by descending order; if any order is prime the first one is chosen,
// otherwise the one in the middle of the list. If no point generates the
// group, the generator is the point at infinity and the order is zero.
func NewGroup(c Curve) (*Group, error) {
	g, err := enumerate(c)
	if err != nil {
		return nil, err
	}
	var candidates []generatorCandidate
	for _, p := range g.points {
		ok, err := g.generates(p)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		n, err := g.OrderOf(p)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, generatorCandidate{point: p, order: n})
	}
	g.generator, g.order = selectGenerator(candidates)
	return g, nil
}

// NewGroupWithGenerator enumerates the points of the curve like NewGroup but
// uses the given point as generator instead of searching for one. The point
// must belong to the group and generate all of it.
func NewGroupWithGenerator(c Curve, generator Point) (*Group, error) {
	g, err := enumerate(c)
	if err != nil {
		return nil, err
	}
	generator = c.Reduce(generator)
	if _, ok := g.index[generator]; !ok {
		return nil, errors.Wrapf(ErrInvalidPoint, "generator %s is not on %s", generator, c)
	}
	ok, err := g.generates(generator)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrInvalidParameter, "%s does not generate the group", generator)
	}
	if g.order, err = g.OrderOf(generator); err != nil {
		return nil, err
	}
	g.generator = generator
	return g, nil
}

// RestoreGroup rebuilds a group from previously computed points, generator
// and order without repeating the search. The points are checked to lie on
// the curve and the generator to be one of them.
func RestoreGroup(c Curve, points []Point, generator Point, order int64) (*Group, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	g := &Group{
		curve:    c,
		residues: Residues(c.P),
		points:   make([]Point, 0, len(points)),
		index:    make(map[Point]struct{}, len(points)),
	}
	for _, p := range points {
		if p.IsInfinity() || !c.IsOnCurve(p) {
			return nil, errors.Wrapf(ErrInvalidPoint, "%s is not on %s", p, c)
		}
		g.add(p)
	}
	if !generator.IsInfinity() {
		if _, ok := g.index[generator]; !ok {
			return nil, errors.Wrapf(ErrInvalidPoint, "generator %s is not in the group", generator)
		}
	}
	if order < 0 || order > int64(len(points))+1 {
		return nil, errors.Wrapf(ErrInvalidParameter, "order %d out of range", order)
	}
	g.generator, g.order = generator, order
	return g, nil
}

// enumerate builds a group with all the affine points of the curve and no
// generator.
func enumerate(c Curve) (*Group, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	g := &Group{
		curve:     c,
		residues:  Residues(c.P),
		index:     make(map[Point]struct{}),
		generator: Infinity(),
	}
	for x := int64(0); x < c.P; x++ {
		y2 := c.rhs(x)
		switch {
		case y2 == 0:
			g.add(NewPoint(x, 0))
		case g.residues.Contains(y2):
			y0, y1, err := ModSqrt(y2, c.P)
			if err != nil {
				return nil, errors.Wrapf(err, "residue %d at x=%d", y2, x)
			}
			g.add(NewPoint(x, y0))
			g.add(NewPoint(x, y1))
		}
	}
	return g, nil
}

func (g *Group) add(p Point) {
	if _, ok := g.index[p]; ok {
		return
	}
	g.index[p] = struct{}{}
	g.points = append(g.points, p)
}

// generates reports whether i*p is one of the enumerated points for every i
// in 1..n. The multiples are accumulated one addition at a time, which
// yields the same sequence as computing each i*p from scratch. A failed
// slope means p cannot generate the group.
func (g *Group) generates(p Point) (bool, error) {
	running := Infinity()
	for range g.points {
		var err error
		running, err = g.curve.Add(running, p)
		if errors.Is(err, ErrNoInverse) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if _, ok := g.index[running]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// selectGenerator sorts the candidates by descending order, keeping the
// enumeration order on ties, and applies the selection rule described in
// NewGroup.
func selectGenerator(candidates []generatorCandidate) (Point, int64) {
	if len(candidates) == 0 {
		return Infinity(), 0
	}
	slices.SortStableFunc(candidates, func(a, b generatorCandidate) int {
		return cmp.Compare(b.order, a.order)
	})
	chosen := candidates[0]
	if !slices.ContainsFunc(candidates, func(c generatorCandidate) bool { return IsPrime(c.order) }) {
		chosen = candidates[len(candidates)/2]
	}
	return chosen.point, chosen.order
}

// OrderOf returns the smallest n > 0 such that n*p is the point at infinity.
// The search stops at the size of the group; ErrOrderNotFound is returned if
// the identity is not reached by then.
func (g *Group) OrderOf(p Point) (int64, error) {
	if !IsRealPoint(p) {
		return 0, errors.Wrap(ErrInvalidPoint, "order of an unset point")
	}
	limit := g.Size()
	running := p
	for n := int64(1); n <= limit; n++ {
		if running.IsInfinity() {
			return n, nil
		}
		var err error
		if running, err = g.curve.Add(running, p); err != nil {
			return 0, err
		}
	}
	return 0, errors.Wrapf(ErrOrderNotFound, "%s after %d additions", p, limit)
}

// Curve returns the curve parameters of the group.
func (g *Group) Curve() Curve {
	return g.curve
}

// Residues returns the quadratic residues of the field, sorted.
func (g *Group) Residues() []int64 {
	return g.residues.Sorted()
}

// Points returns a copy of the affine points of the group sorted by x and
// then y. The point at infinity is not included.
func (g *Group) Points() []Point {
	out := slices.Clone(g.points)
	slices.SortFunc(out, func(a, b Point) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	return out
}

// Generator returns the generator of the group, which is the point at
// infinity when no generator was found.
func (g *Group) Generator() Point {
	return g.generator
}

// Order returns the order of the generator.
func (g *Group) Order() int64 {
	return g.order
}

// Size returns the number of elements of the group, identity included.
func (g *Group) Size() int64 {
	return int64(len(g.points)) + 1
}

// HasGenerator reports whether the group has a real generator of order at
// least two, which is needed to build keys on it.
func (g *Group) HasGenerator() bool {
	return !g.generator.IsInfinity() && g.order >= 2
}

// Contains reports whether p is an element of the group. The point at
// infinity always is.
func (g *Group) Contains(p Point) bool {
	if p.IsInfinity() {
		return true
	}
	_, ok := g.index[p]
	return ok
}

// Add computes p + q on the curve of the group.
func (g *Group) Add(p, q Point) (Point, error) {
	return g.curve.Add(p, q)
}

// Sub computes p - q on the curve of the group.
func (g *Group) Sub(p, q Point) (Point, error) {
	return g.curve.Sub(p, q)
}

// Mult computes k*p on the curve of the group.
func (g *Group) Mult(p Point, k int64) (Point, error) {
	return g.curve.Mult(p, k)
}
