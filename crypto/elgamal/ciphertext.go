package elgamal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/vocdoni/arbo"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
)

// sizes in bytes needed to serialize a Ciphertext
const (
	sizeCoord      = 8
	sizePoint      = 1 + 2*sizeCoord
	SizeCiphertext = 2 * sizePoint
)

// point kinds as written by Serialize
const (
	serialUnset byte = iota
	serialAffine
	serialInfinity
)

// Ciphertext represents an ElGamal encrypted point: C1 is the ephemeral
// commitment k*G and C2 the plaintext masked with k*publicKey.
type Ciphertext struct {
	C1 ecc.Point `json:"c1"`
	C2 ecc.Point `json:"c2"`
}

// Add adds two ciphertexts component-wise and stores the result in z, which
// is also returned. For ciphertexts of EncryptScalar this yields an
// encryption of the sum of the messages.
func (z *Ciphertext) Add(group *ecc.Group, x, y *Ciphertext) (*Ciphertext, error) {
	c1, err := group.Add(x.C1, y.C1)
	if err != nil {
		return nil, err
	}
	c2, err := group.Add(x.C2, y.C2)
	if err != nil {
		return nil, err
	}
	z.C1, z.C2 = c1, c2
	return z, nil
}

// Serialize returns a slice of SizeCiphertext bytes. Each point is written
// as a kind byte followed by its X and Y coordinates as 8 byte little-endian
// integers. Points with a negative coordinate are rejected, they must be
// reduced first.
func (z *Ciphertext) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	for _, p := range []ecc.Point{z.C1, z.C2} {
		x, y, ok := p.Coordinates()
		switch {
		case ok:
			if x < 0 || y < 0 {
				return nil, errors.Wrapf(ecc.ErrInvalidPoint, "point %s is not reduced", p)
			}
			buf.WriteByte(serialAffine)
		case p.IsInfinity():
			buf.WriteByte(serialInfinity)
		default:
			buf.WriteByte(serialUnset)
		}
		buf.Write(arbo.BigIntToBytes(sizeCoord, big.NewInt(x)))
		buf.Write(arbo.BigIntToBytes(sizeCoord, big.NewInt(y)))
	}
	return buf.Bytes(), nil
}

// Deserialize reconstructs a Ciphertext from a slice of bytes produced by
// Serialize. The input must be of len SizeCiphertext.
func (z *Ciphertext) Deserialize(data []byte) error {
	if len(data) != SizeCiphertext {
		return errors.Newf("invalid input length: got %d bytes, expected %d bytes", len(data), SizeCiphertext)
	}
	readPoint := func(offset int) (ecc.Point, error) {
		x := arbo.BytesToBigInt(data[offset+1 : offset+1+sizeCoord])
		y := arbo.BytesToBigInt(data[offset+1+sizeCoord : offset+sizePoint])
		switch data[offset] {
		case serialAffine:
			return ecc.NewPoint(x.Int64(), y.Int64()), nil
		case serialInfinity:
			return ecc.Infinity(), nil
		case serialUnset:
			return ecc.Invalid(), nil
		default:
			return ecc.Invalid(), errors.Newf("unknown point kind %d", data[offset])
		}
	}
	c1, err := readPoint(0)
	if err != nil {
		return err
	}
	c2, err := readPoint(sizePoint)
	if err != nil {
		return err
	}
	z.C1, z.C2 = c1, c2
	return nil
}

// Marshal converts Ciphertext to a byte slice.
func (z *Ciphertext) Marshal() ([]byte, error) {
	return json.Marshal(z)
}

// Unmarshal populates Ciphertext from a byte slice.
func (z *Ciphertext) Unmarshal(data []byte) error {
	return json.Unmarshal(data, z)
}

// String returns a string representation of the Ciphertext.
func (z *Ciphertext) String() string {
	if z == nil {
		return "{C1: nil, C2: nil}"
	}
	return fmt.Sprintf("{C1: %s, C2: %s}", z.C1.String(), z.C2.String())
}
