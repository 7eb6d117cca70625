package ecc

import "github.com/cockroachdb/errors"

var (
	// ErrNoInverse is returned when a modular division has no solution, which
	// for curve arithmetic means the slope of the line does not exist mod p.
	ErrNoInverse = errors.New("no modular inverse")
	// ErrNoRoot is returned when the value is not a quadratic residue.
	ErrNoRoot = errors.New("no modular square root")
	// ErrInvalidParameter is returned when the inputs break a precondition of
	// the engine: non-prime or out of range modulus, singular curve,
	// non-positive scalar, or a group without a usable generator.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidPoint is returned when an unset point reaches the arithmetic,
	// or when a point is not part of the group it is used with.
	ErrInvalidPoint = errors.New("invalid point")
	// ErrOrderNotFound is returned when repeated addition of a point does not
	// reach the identity within the size of the group.
	ErrOrderNotFound = errors.New("point order not found")
)
