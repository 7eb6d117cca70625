package storage

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/elgamal"
	"github.com/vocdoni/ecc-elgamal-sandbox/log"
	"github.com/vocdoni/ecc-elgamal-sandbox/types"
)

// SetKeyPair stores a key pair generated on the given curve and returns its
// key id, derived from the hash of the key pair itself.
func (s *Storage) SetKeyPair(curveID types.HexBytes, kp *elgamal.KeyPair) (types.HexBytes, error) {
	if kp == nil {
		return nil, errors.New("nil key pair")
	}
	artifact := keyPairArtifact{
		Secret: kp.Secret,
		Public: newPointArtifact(kp.Public),
	}
	data, err := encodeArtifact(artifact)
	if err != nil {
		return nil, err
	}
	keyID := types.HexBytes(hashKey(append(append([]byte(nil), curveID...), data...)))
	if _, err := s.setArtifact(keyPairPrefix, keyPairKey(curveID, keyID), artifact); err != nil {
		return nil, errors.Wrap(err, "store key pair")
	}
	log.Debugw("key pair stored", "curveId", curveID.String(), "keyId", keyID.String())
	return keyID, nil
}

// KeyPair loads a key pair by curve id and key id. It returns ErrNotFound if
// the key pair does not exist.
func (s *Storage) KeyPair(curveID, keyID types.HexBytes) (*elgamal.KeyPair, error) {
	var artifact keyPairArtifact
	if err := s.getArtifact(keyPairPrefix, keyPairKey(curveID, keyID), &artifact); err != nil {
		return nil, err
	}
	return &elgamal.KeyPair{
		Secret: artifact.Secret,
		Public: artifact.Public.point(),
	}, nil
}

// KeyPairs returns the ids of the key pairs stored for a curve.
func (s *Storage) KeyPairs(curveID types.HexBytes) ([]types.HexBytes, error) {
	keys, err := s.listArtifacts(keyPairPrefix)
	if err != nil {
		return nil, err
	}
	var ids []types.HexBytes
	for _, k := range keys {
		if len(k) == len(curveID)+maxKeySize && bytes.HasPrefix(k, curveID) {
			ids = append(ids, types.HexBytes(k[len(curveID):]))
		}
	}
	return ids, nil
}

func keyPairKey(curveID, keyID types.HexBytes) []byte {
	return append(append([]byte(nil), curveID...), keyID...)
}
