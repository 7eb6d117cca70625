package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/elgamal"
	"github.com/vocdoni/ecc-elgamal-sandbox/log"
	stg "github.com/vocdoni/ecc-elgamal-sandbox/storage"
	"github.com/vocdoni/ecc-elgamal-sandbox/types"
)

// newKey generates an ElGamal key pair on the curve and stores it. Only the
// public part and the key id are returned.
// POST /curves/{curveId}/keys
func (a *API) newKey(w http.ResponseWriter, r *http.Request) {
	curveID, g, ok := a.urlGroup(w, r)
	if !ok {
		return
	}
	req := &NewKey{}
	if err := decodeBody(r, req, true); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if !g.HasGenerator() {
		ErrMissingGenerator.Withf("curve %s", curveID).Write(w)
		return
	}

	var (
		kp  *elgamal.KeyPair
		err error
	)
	if req.Secret != nil {
		if *req.Secret < 1 || *req.Secret >= g.Order() {
			ErrInvalidParameter.Withf("secret must be in [1, %d]", g.Order()-1).Write(w)
			return
		}
		kp, err = elgamal.KeyFromSecret(g, *req.Secret)
	} else {
		kp, err = elgamal.GenerateKey(g)
	}
	if err != nil {
		engineError(err).Write(w)
		return
	}
	keyID, err := a.storage.SetKeyPair(curveID, kp)
	if err != nil {
		ErrGenericInternalServerError.Withf("could not store key pair: %v", err).Write(w)
		return
	}
	log.Infow("new key pair", "curveId", curveID.String(), "keyId", keyID.String(), "publicKey", kp.Public.String())
	httpWriteJSON(w, &Key{KeyID: keyID, PublicKey: kp.Public})
}

// listKeys returns the ids of the key pairs stored for the curve.
// GET /curves/{curveId}/keys
func (a *API) listKeys(w http.ResponseWriter, r *http.Request) {
	curveID, _, ok := a.urlGroup(w, r)
	if !ok {
		return
	}
	ids, err := a.storage.KeyPairs(curveID)
	if err != nil {
		ErrGenericInternalServerError.Withf("could not list keys: %v", err).Write(w)
		return
	}
	if ids == nil {
		ids = []types.HexBytes{}
	}
	httpWriteJSON(w, &KeyList{Keys: ids})
}

// key returns the public part of a stored key pair.
// GET /curves/{curveId}/keys/{keyId}
func (a *API) key(w http.ResponseWriter, r *http.Request) {
	curveID, _, ok := a.urlGroup(w, r)
	if !ok {
		return
	}
	keyID, err := types.HexStringToHexBytes(chi.URLParam(r, KeyURLParam))
	if err != nil || len(keyID) == 0 {
		ErrMalformedKeyID.Withf("could not decode key ID: %v", err).Write(w)
		return
	}
	kp, ok := a.keyPair(w, curveID, keyID)
	if !ok {
		return
	}
	httpWriteJSON(w, &Key{KeyID: keyID, PublicKey: kp.Public})
}

// keyPair loads a stored key pair. On failure the error is written and ok is
// false.
func (a *API) keyPair(w http.ResponseWriter, curveID, keyID types.HexBytes) (*elgamal.KeyPair, bool) {
	if len(keyID) == 0 {
		ErrMalformedKeyID.With("missing key ID").Write(w)
		return nil, false
	}
	kp, err := a.storage.KeyPair(curveID, keyID)
	if err != nil {
		if errors.Is(err, stg.ErrNotFound) {
			ErrKeyNotFound.Withf("key %s", keyID).Write(w)
			return nil, false
		}
		ErrGenericInternalServerError.Withf("could not load key pair: %v", err).Write(w)
		return nil, false
	}
	return kp, true
}

// publicKey resolves the public key of an encryption request.
func (a *API) publicKey(w http.ResponseWriter, curveID types.HexBytes, req *EncryptRequest) (ecc.Point, bool) {
	if req.PublicKey != nil {
		return *req.PublicKey, true
	}
	kp, ok := a.keyPair(w, curveID, req.KeyID)
	if !ok {
		return ecc.Point{}, false
	}
	return kp.Public, true
}
