package ecc

import "slices"

// ResidueSet is the set of non-zero quadratic residues modulo a prime.
type ResidueSet map[int64]struct{}

// Residues computes { i^2 mod p : 1 <= i < p/2 }. For an odd prime p every
// non-zero residue has exactly two roots, i and p-i, so iterating over the
// first half of the field is enough to find all of them.
func Residues(p int64) ResidueSet {
	rs := make(ResidueSet)
	for i := int64(1); 2*i < p; i++ {
		rs[i*i%p] = struct{}{}
	}
	return rs
}

// Contains reports whether v belongs to the set.
func (rs ResidueSet) Contains(v int64) bool {
	_, ok := rs[v]
	return ok
}

// Sorted returns the residues in ascending order.
func (rs ResidueSet) Sorted() []int64 {
	out := make([]int64, 0, len(rs))
	for v := range rs {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
