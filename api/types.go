package api

import (
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/elgamal"
	"github.com/vocdoni/ecc-elgamal-sandbox/types"
)

// CurveParams are the parameters of y^2 = x^3 + ax + b (mod p). Preset, when
// set, selects one of the named curves and the other fields are ignored.
type CurveParams struct {
	P      int64  `json:"p"`
	A      int64  `json:"a"`
	B      int64  `json:"b"`
	Preset string `json:"preset,omitempty"`
}

// Constraints is the response to a constraints check.
type Constraints struct {
	Valid bool `json:"valid"`
}

// CurveInfo describes a built curve group.
type CurveInfo struct {
	ID        types.HexBytes `json:"curveId"`
	Curve     ecc.Curve      `json:"curve"`
	Equation  string         `json:"equation"`
	Residues  []int64        `json:"residues"`
	Points    []ecc.Point    `json:"points"`
	Generator ecc.Point      `json:"generator"`
	Order     int64          `json:"order"`
	Size      int64          `json:"size"`
}

// CurveList is the list of the stored curve ids.
type CurveList struct {
	Curves []types.HexBytes `json:"curves"`
}

// NewKey is the optional request body of a key generation. Without a
// secret a random one is drawn.
type NewKey struct {
	Secret *int64 `json:"secret,omitempty"`
}

// Key is the public part of a stored key pair.
type Key struct {
	KeyID     types.HexBytes `json:"keyId"`
	PublicKey ecc.Point      `json:"publicKey"`
}

// KeyList is the list of the key ids stored for a curve.
type KeyList struct {
	Keys []types.HexBytes `json:"keys"`
}

// EncryptRequest encrypts a plaintext point either under PublicKey or under
// the public part of the stored key KeyID. K is optional, a random one is
// used when it is missing.
type EncryptRequest struct {
	PublicKey *ecc.Point     `json:"publicKey,omitempty"`
	KeyID     types.HexBytes `json:"keyId,omitempty"`
	Plaintext ecc.Point      `json:"plaintext"`
	K         *int64         `json:"k,omitempty"`
}

// EncryptResponse carries the ciphertext and the k used to produce it.
type EncryptResponse struct {
	Ciphertext *elgamal.Ciphertext `json:"ciphertext"`
	K          int64               `json:"k"`
}

// DecryptRequest decrypts a ciphertext with the stored key KeyID.
type DecryptRequest struct {
	KeyID      types.HexBytes      `json:"keyId"`
	Ciphertext *elgamal.Ciphertext `json:"ciphertext"`
}

// DecryptResponse carries the recovered plaintext point.
type DecryptResponse struct {
	Plaintext ecc.Point `json:"plaintext"`
}

// AddRequest adds two points of the curve.
type AddRequest struct {
	P ecc.Point `json:"p"`
	Q ecc.Point `json:"q"`
}

// MultRequest multiplies a point of the curve by a positive scalar.
type MultRequest struct {
	P ecc.Point `json:"p"`
	K int64     `json:"k"`
}

// PointResult is the response of the point arithmetic endpoints.
type PointResult struct {
	Result ecc.Point `json:"result"`
}
