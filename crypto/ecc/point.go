package ecc

import (
	"encoding/json"
	"fmt"
)

type pointKind uint8

const (
	// the zero value is the unset point, so an empty Point means "no input"
	kindUnset pointKind = iota
	kindAffine
	kindInfinity
)

// Point is an element of a small elliptic curve group. It is either an
// affine point (X, Y), the point at infinity (the identity of the group) or
// the unset point, which marks the absence of a value and is rejected by all
// the arithmetic. The zero value of Point is the unset point.
type Point struct {
	X, Y int64
	kind pointKind
}

// NewPoint returns the affine point (x, y). Coordinates are not reduced.
func NewPoint(x, y int64) Point {
	return Point{X: x, Y: y, kind: kindAffine}
}

// Infinity returns the point at infinity.
func Infinity() Point {
	return Point{kind: kindInfinity}
}

// Invalid returns the unset point.
func Invalid() Point {
	return Point{}
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.kind == kindInfinity
}

// Equal compares two points by value.
func (p Point) Equal(q Point) bool {
	return p == q
}

// Coordinates returns the affine coordinates of p and false if p is not an
// affine point.
func (p Point) Coordinates() (int64, int64, bool) {
	if p.kind != kindAffine {
		return 0, 0, false
	}
	return p.X, p.Y, true
}

// String returns "(x, y)" for affine points, "O" for the point at infinity
// and "(unset)" for the unset point.
func (p Point) String() string {
	switch p.kind {
	case kindAffine:
		return fmt.Sprintf("(%d, %d)", p.X, p.Y)
	case kindInfinity:
		return "O"
	default:
		return "(unset)"
	}
}

// Negative returns (x, -y). The result is not reduced, callers must reduce
// it before using it in arithmetic that expects canonical coordinates. The
// point at infinity and the unset point are returned unchanged.
func Negative(p Point) Point {
	if p.kind != kindAffine {
		return p
	}
	return NewPoint(p.X, -p.Y)
}

// IsRealPoint reports whether p holds a value, that is, it is not the unset
// point. It does not tell the point at infinity apart from affine points.
func IsRealPoint(p Point) bool {
	return p.kind != kindUnset
}

type jsonPoint struct {
	X        *int64 `json:"x,omitempty"`
	Y        *int64 `json:"y,omitempty"`
	Infinity bool   `json:"infinity,omitempty"`
}

// MarshalJSON encodes affine points as {"x":..,"y":..}, the point at
// infinity as {"infinity":true} and the unset point as null.
func (p Point) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case kindAffine:
		return json.Marshal(jsonPoint{X: &p.X, Y: &p.Y})
	case kindInfinity:
		return json.Marshal(jsonPoint{Infinity: true})
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes the format produced by MarshalJSON. A point with a
// missing coordinate decodes to the unset point.
func (p *Point) UnmarshalJSON(data []byte) error {
	var jp *jsonPoint
	if err := json.Unmarshal(data, &jp); err != nil {
		return err
	}
	switch {
	case jp == nil:
		*p = Invalid()
	case jp.Infinity:
		*p = Infinity()
	case jp.X != nil && jp.Y != nil:
		*p = NewPoint(*jp.X, *jp.Y)
	default:
		*p = Invalid()
	}
	return nil
}
