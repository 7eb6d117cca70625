package storage

import "github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"

// pointArtifact is the storage form of an ecc.Point. The unset sentinel is
// never stored.
type pointArtifact struct {
	X        int64 `cbor:"0,keyasint"`
	Y        int64 `cbor:"1,keyasint"`
	Infinity bool  `cbor:"2,keyasint,omitempty"`
}

func newPointArtifact(p ecc.Point) pointArtifact {
	if p.IsInfinity() {
		return pointArtifact{Infinity: true}
	}
	return pointArtifact{X: p.X, Y: p.Y}
}

func (a pointArtifact) point() ecc.Point {
	if a.Infinity {
		return ecc.Infinity()
	}
	return ecc.NewPoint(a.X, a.Y)
}

// groupArtifact holds everything needed to restore a group without
// enumerating the curve again.
type groupArtifact struct {
	P         int64           `cbor:"0,keyasint"`
	A         int64           `cbor:"1,keyasint"`
	B         int64           `cbor:"2,keyasint"`
	Points    []pointArtifact `cbor:"3,keyasint"`
	Generator pointArtifact   `cbor:"4,keyasint"`
	Order     int64           `cbor:"5,keyasint"`
}

// keyPairArtifact holds an ElGamal key pair. The public key is kept so it
// does not need to be recomputed on every read.
type keyPairArtifact struct {
	Secret int64         `cbor:"0,keyasint"`
	Public pointArtifact `cbor:"1,keyasint"`
}
