package client

import (
	"github.com/vocdoni/ecc-elgamal-sandbox/api"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/elgamal"
	"github.com/vocdoni/ecc-elgamal-sandbox/types"
)

// TestConstraints asks the server whether the parameters define a
// non-singular curve.
func (c *HTTPclient) TestConstraints(p, a, b int64) (bool, error) {
	res := &api.Constraints{}
	if err := c.Request(HTTPPOST, &api.CurveParams{P: p, A: a, B: b}, res, api.ConstraintsEndpoint); err != nil {
		return false, err
	}
	return res.Valid, nil
}

// NewCurve builds (or fetches, if already built) the group of a curve.
func (c *HTTPclient) NewCurve(p, a, b int64) (*api.CurveInfo, error) {
	return c.newCurve(&api.CurveParams{P: p, A: a, B: b})
}

// NewPresetCurve builds the group of one of the named curves.
func (c *HTTPclient) NewPresetCurve(name string) (*api.CurveInfo, error) {
	return c.newCurve(&api.CurveParams{Preset: name})
}

func (c *HTTPclient) newCurve(params *api.CurveParams) (*api.CurveInfo, error) {
	info := &api.CurveInfo{}
	if err := c.Request(HTTPPOST, params, info, api.CurvesEndpoint); err != nil {
		return nil, err
	}
	return info, nil
}

// Curves lists the ids of the curves stored by the server.
func (c *HTTPclient) Curves() ([]types.HexBytes, error) {
	res := &api.CurveList{}
	if err := c.Request(HTTPGET, nil, res, api.CurvesEndpoint); err != nil {
		return nil, err
	}
	return res.Curves, nil
}

// Curve returns the info of a built curve.
func (c *HTTPclient) Curve(curveID types.HexBytes) (*api.CurveInfo, error) {
	info := &api.CurveInfo{}
	if err := c.Request(HTTPGET, nil, info, "curves", curveID.String()); err != nil {
		return nil, err
	}
	return info, nil
}

// NewKey generates a key pair on the server. If secret is nil the server
// draws a random one.
func (c *HTTPclient) NewKey(curveID types.HexBytes, secret *int64) (*api.Key, error) {
	key := &api.Key{}
	if err := c.Request(HTTPPOST, &api.NewKey{Secret: secret}, key, "curves", curveID.String(), "keys"); err != nil {
		return nil, err
	}
	return key, nil
}

// Key returns the public part of a stored key pair.
func (c *HTTPclient) Key(curveID, keyID types.HexBytes) (*api.Key, error) {
	key := &api.Key{}
	if err := c.Request(HTTPGET, nil, key, "curves", curveID.String(), "keys", keyID.String()); err != nil {
		return nil, err
	}
	return key, nil
}

// Encrypt encrypts msg under the stored key keyID. If k is nil the server
// draws a random one. The ciphertext and the k used are returned.
func (c *HTTPclient) Encrypt(curveID, keyID types.HexBytes, msg ecc.Point, k *int64) (*elgamal.Ciphertext, int64, error) {
	return c.encrypt(curveID, &api.EncryptRequest{KeyID: keyID, Plaintext: msg, K: k})
}

// EncryptWithPublicKey encrypts msg under an arbitrary public key.
func (c *HTTPclient) EncryptWithPublicKey(curveID types.HexBytes, publicKey, msg ecc.Point, k *int64) (*elgamal.Ciphertext, int64, error) {
	return c.encrypt(curveID, &api.EncryptRequest{PublicKey: &publicKey, Plaintext: msg, K: k})
}

func (c *HTTPclient) encrypt(curveID types.HexBytes, req *api.EncryptRequest) (*elgamal.Ciphertext, int64, error) {
	res := &api.EncryptResponse{}
	if err := c.Request(HTTPPOST, req, res, "curves", curveID.String(), "encrypt"); err != nil {
		return nil, 0, err
	}
	return res.Ciphertext, res.K, nil
}

// Decrypt decrypts a ciphertext with the stored key keyID.
func (c *HTTPclient) Decrypt(curveID, keyID types.HexBytes, ct *elgamal.Ciphertext) (ecc.Point, error) {
	res := &api.DecryptResponse{}
	if err := c.Request(HTTPPOST, &api.DecryptRequest{KeyID: keyID, Ciphertext: ct}, res, "curves", curveID.String(), "decrypt"); err != nil {
		return ecc.Invalid(), err
	}
	return res.Plaintext, nil
}

// Add computes p + q on the curve.
func (c *HTTPclient) Add(curveID types.HexBytes, p, q ecc.Point) (ecc.Point, error) {
	res := &api.PointResult{}
	if err := c.Request(HTTPPOST, &api.AddRequest{P: p, Q: q}, res, "curves", curveID.String(), "add"); err != nil {
		return ecc.Invalid(), err
	}
	return res.Result, nil
}

// Mult computes k*p on the curve.
func (c *HTTPclient) Mult(curveID types.HexBytes, p ecc.Point, k int64) (ecc.Point, error) {
	res := &api.PointResult{}
	if err := c.Request(HTTPPOST, &api.MultRequest{P: p, K: k}, res, "curves", curveID.String(), "mult"); err != nil {
		return ecc.Invalid(), err
	}
	return res.Result, nil
}
