package api

import (
	"net/http"

	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/elgamal"
	"github.com/vocdoni/ecc-elgamal-sandbox/log"
)

// encrypt encrypts a plaintext point under a public key.
// POST /curves/{curveId}/encrypt
func (a *API) encrypt(w http.ResponseWriter, r *http.Request) {
	curveID, g, ok := a.urlGroup(w, r)
	if !ok {
		return
	}
	req := &EncryptRequest{}
	if err := decodeBody(r, req, false); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if !g.HasGenerator() {
		ErrMissingGenerator.Withf("curve %s", curveID).Write(w)
		return
	}
	pub, ok := a.publicKey(w, curveID, req)
	if !ok {
		return
	}

	var (
		ct  *elgamal.Ciphertext
		k   int64
		err error
	)
	if req.K != nil {
		k = *req.K
		if k < 1 || k >= g.Order() {
			ErrInvalidParameter.Withf("k must be in [1, %d]", g.Order()-1).Write(w)
			return
		}
		ct, err = elgamal.EncryptWithK(g, pub, req.Plaintext, k)
	} else {
		ct, k, err = elgamal.Encrypt(g, pub, req.Plaintext)
	}
	if err != nil {
		engineError(err).Write(w)
		return
	}
	log.Debugw("encrypted", "curveId", curveID.String(), "ciphertext", ct.String())
	httpWriteJSON(w, &EncryptResponse{Ciphertext: ct, K: k})
}

// decrypt decrypts a ciphertext with a stored key pair.
// POST /curves/{curveId}/decrypt
func (a *API) decrypt(w http.ResponseWriter, r *http.Request) {
	curveID, g, ok := a.urlGroup(w, r)
	if !ok {
		return
	}
	req := &DecryptRequest{}
	if err := decodeBody(r, req, false); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if req.Ciphertext == nil {
		ErrMalformedBody.With("missing ciphertext").Write(w)
		return
	}
	kp, ok := a.keyPair(w, curveID, req.KeyID)
	if !ok {
		return
	}
	msg, err := elgamal.Decrypt(g, kp.Secret, req.Ciphertext)
	if err != nil {
		engineError(err).Write(w)
		return
	}
	httpWriteJSON(w, &DecryptResponse{Plaintext: msg})
}

// add adds two points of the curve.
// POST /curves/{curveId}/add
func (a *API) add(w http.ResponseWriter, r *http.Request) {
	_, g, ok := a.urlGroup(w, r)
	if !ok {
		return
	}
	req := &AddRequest{}
	if err := decodeBody(r, req, false); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	res, err := g.Add(req.P, req.Q)
	if err != nil {
		engineError(err).Write(w)
		return
	}
	httpWriteJSON(w, &PointResult{Result: res})
}

// mult multiplies a point of the curve by a positive scalar no larger than
// the group size.
// POST /curves/{curveId}/mult
func (a *API) mult(w http.ResponseWriter, r *http.Request) {
	_, g, ok := a.urlGroup(w, r)
	if !ok {
		return
	}
	req := &MultRequest{}
	if err := decodeBody(r, req, false); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if req.K > g.Size() {
		ErrInvalidParameter.Withf("scalar %d exceeds the group size %d", req.K, g.Size()).Write(w)
		return
	}
	res, err := g.Mult(req.P, req.K)
	if err != nil {
		engineError(err).Write(w)
		return
	}
	httpWriteJSON(w, &PointResult{Result: res})
}
