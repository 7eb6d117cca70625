package ecc

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Mod returns the euclidean modulus of n, always in [0, m). Unlike the %
// operator, negative values of n wrap around to the positive side.
func Mod(n, m int64) int64 {
	t := n % m
	if t < 0 {
		t += m
	}
	return t
}

// ModDivide finds x in [0, m) such that b*x = a (mod m). If a is an exact
// multiple of b the plain quotient is returned, otherwise every candidate is
// tried in order. The scan only finds a solution when b is invertible mod m,
// so m is expected to be prime and a, b already reduced.
func ModDivide(a, b, m int64) (int64, error) {
	if b == 0 {
		return 0, errors.Wrapf(ErrNoInverse, "%d / 0 mod %d", a, m)
	}
	if a%b == 0 {
		return a / b, nil
	}
	for i := int64(0); i < m; i++ {
		if Mod(i*b, m) == a {
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrNoInverse, "%d / %d mod %d", a, b, m)
}

// ModSqrt returns both square roots of v mod m, r and m-r. If v is a perfect
// square in the integers its root is used directly, otherwise the roots are
// searched for by brute force. v must be in [0, m) and a quadratic residue,
// else ErrNoRoot is returned.
func ModSqrt(v, m int64) (int64, int64, error) {
	if v < 0 || v >= m {
		return 0, 0, errors.Wrapf(ErrNoRoot, "%d out of range mod %d", v, m)
	}
	if r := isqrt(v); r*r == v {
		return r, Mod(m-r, m), nil
	}
	for i := int64(0); i < m; i++ {
		if i*i%m == v {
			return i, Mod(m-i, m), nil
		}
	}
	return 0, 0, errors.Wrapf(ErrNoRoot, "%d mod %d", v, m)
}

// IsPrime reports whether n is prime using trial division.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for i := int64(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// isqrt returns floor(sqrt(v)) for v >= 0, correcting the float estimate.
func isqrt(v int64) int64 {
	r := int64(math.Sqrt(float64(v)))
	for r*r > v {
		r--
	}
	for (r+1)*(r+1) <= v {
		r++
	}
	return r
}
