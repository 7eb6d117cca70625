// storage package keeps the artifacts of the sandbox in a prefixed key-value
// store, so curves are enumerated only once and generated key pairs can be
// referenced later by id. The following prefixes are used:
//   - 'c/' for built groups (points, generator and order of a curve)
//   - 'k/' for ElGamal key pairs, keyed by curve id and key id
package storage

import (
	"github.com/cockroachdb/errors"
	"github.com/vocdoni/ecc-elgamal-sandbox/log"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

var (
	// Prefixes for the keys in the database.
	groupPrefix   = []byte("c/")
	keyPairPrefix = []byte("k/")
)

const (
	// maxKeySize is the maximum size of the key in bytes. It is used to
	// generate the key of the artifacts stored in the database by truncating
	// the hash of the artifact itself.
	maxKeySize = 12
)

// ErrNotFound is returned when the requested artifact is not stored.
var ErrNotFound = errors.New("not found")

// Storage wraps the database and exposes typed accessors for every artifact.
type Storage struct {
	db db.Database
}

// New creates a new Storage instance.
func New(db db.Database) *Storage {
	return &Storage{db: db}
}

// Close closes the storage.
func (s *Storage) Close() {
	if err := s.db.Close(); err != nil {
		log.Warnw("failed to close storage", "error", err.Error())
	}
}

// getArtifact reads the artifact stored under prefix/key and decodes it into
// out. It returns ErrNotFound if there is no such key.
func (s *Storage) getArtifact(prefix, key []byte, out any) error {
	rd := prefixeddb.NewPrefixedReader(s.db, prefix)
	data, err := rd.Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return ErrNotFound
		}
		return errors.Wrap(err, "get artifact")
	}
	if err := decodeArtifact(data, out); err != nil {
		return errors.Wrap(err, "decode artifact")
	}
	return nil
}

// setArtifact encodes the artifact and stores it under prefix/key. If key is
// nil, the truncated hash of the encoded artifact is used. The key is
// returned.
func (s *Storage) setArtifact(prefix, key []byte, artifact any) ([]byte, error) {
	data, err := encodeArtifact(artifact)
	if err != nil {
		return nil, err
	}
	if key == nil {
		key = hashKey(data)
	}
	wTx := prefixeddb.NewPrefixedWriteTx(s.db.WriteTx(), prefix)
	if err := wTx.Set(key, data); err != nil {
		wTx.Discard()
		return nil, errors.Wrap(err, "set artifact")
	}
	if err := wTx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit artifact")
	}
	return key, nil
}

// listArtifacts returns the keys stored under prefix, with the prefix removed.
func (s *Storage) listArtifacts(prefix []byte) ([][]byte, error) {
	rd := prefixeddb.NewPrefixedReader(s.db, prefix)
	var keys [][]byte
	if err := rd.Iterate(nil, func(k, _ []byte) bool {
		keys = append(keys, append([]byte(nil), k...))
		return true
	}); err != nil {
		return nil, errors.Wrap(err, "iterate artifacts")
	}
	return keys, nil
}
