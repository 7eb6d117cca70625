package elgamal

import (
	"github.com/cockroachdb/errors"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
	"github.com/vocdoni/ecc-elgamal-sandbox/util"
)

// ErrDiscreteLogNotFound is returned when a decrypted point is not a
// multiple of the generator below the group order.
var ErrDiscreteLogNotFound = errors.New("discrete logarithm not found")

// KeyPair holds an ElGamal secret scalar and the matching public point,
// public = secret * G.
type KeyPair struct {
	Secret int64     `json:"secret"`
	Public ecc.Point `json:"publicKey"`
}

// RandK function generates a random scalar in [1, order-1], used both for
// secret keys and for the ephemeral value of each encryption.
func RandK(order int64) (int64, error) {
	if order < 2 {
		return 0, errors.Wrapf(ecc.ErrInvalidParameter, "order %d too small to pick a scalar", order)
	}
	return int64(util.RandomInt(1, int(order))), nil
}

// GenerateKey generates a new ElGamal key pair on the group. The group must
// have a real generator.
func GenerateKey(group *ecc.Group) (*KeyPair, error) {
	if !group.HasGenerator() {
		return nil, errors.Wrap(ecc.ErrInvalidParameter, "group has no generator")
	}
	secret, err := RandK(group.Order())
	if err != nil {
		return nil, err
	}
	return KeyFromSecret(group, secret)
}

// KeyFromSecret derives the key pair of the given secret scalar.
func KeyFromSecret(group *ecc.Group, secret int64) (*KeyPair, error) {
	if !group.HasGenerator() {
		return nil, errors.Wrap(ecc.ErrInvalidParameter, "group has no generator")
	}
	public, err := group.Mult(group.Generator(), secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive public key")
	}
	return &KeyPair{Secret: secret, Public: public}, nil
}

// Encrypt function encrypts the point msg under the public key with a fresh
// random k. It returns the ciphertext and the k used to produce it.
func Encrypt(group *ecc.Group, publicKey, msg ecc.Point) (*Ciphertext, int64, error) {
	if !group.HasGenerator() {
		return nil, 0, errors.Wrap(ecc.ErrInvalidParameter, "group has no generator")
	}
	k, err := RandK(group.Order())
	if err != nil {
		return nil, 0, err
	}
	ct, err := EncryptWithK(group, publicKey, msg, k)
	if err != nil {
		return nil, 0, err
	}
	return ct, k, nil
}

// EncryptWithK function encrypts the point msg under the public key using
// the given ephemeral scalar: C1 = k*G and C2 = msg + k*publicKey. Both msg
// and the public key must be elements of the group.
func EncryptWithK(group *ecc.Group, publicKey, msg ecc.Point, k int64) (*Ciphertext, error) {
	if !group.HasGenerator() {
		return nil, errors.Wrap(ecc.ErrInvalidParameter, "group has no generator")
	}
	if !ecc.IsRealPoint(msg) || !group.Contains(msg) {
		return nil, errors.Wrapf(ecc.ErrInvalidPoint, "plaintext %s is not in the group", msg)
	}
	if !ecc.IsRealPoint(publicKey) || !group.Contains(publicKey) {
		return nil, errors.Wrapf(ecc.ErrInvalidPoint, "public key %s is not in the group", publicKey)
	}
	c1, err := group.Mult(group.Generator(), k)
	if err != nil {
		return nil, errors.Wrap(err, "elgamal encryption failed")
	}
	s, err := group.Mult(publicKey, k)
	if err != nil {
		return nil, errors.Wrap(err, "elgamal encryption failed")
	}
	c2, err := group.Add(msg, s)
	if err != nil {
		return nil, errors.Wrap(err, "elgamal encryption failed")
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// Decrypt decrypts the ciphertext with the secret key, returning the point
// M = C2 - secret*C1.
func Decrypt(group *ecc.Group, secret int64, ct *Ciphertext) (ecc.Point, error) {
	if ct == nil || !ecc.IsRealPoint(ct.C1) || !ecc.IsRealPoint(ct.C2) {
		return ecc.Invalid(), errors.Wrap(ecc.ErrInvalidPoint, "ciphertext is incomplete")
	}
	sC1, err := group.Mult(ct.C1, secret)
	if err != nil {
		return ecc.Invalid(), errors.Wrap(err, "elgamal decryption failed")
	}
	m, err := group.Sub(ct.C2, sC1)
	if err != nil {
		return ecc.Invalid(), errors.Wrap(err, "elgamal decryption failed")
	}
	return m, nil
}

// CheckK checks if a given k was used to produce the ciphertext, that is,
// whether C1 == k*G. It does not need the secret key.
func CheckK(group *ecc.Group, ct *Ciphertext, k int64) (bool, error) {
	if ct == nil || !ecc.IsRealPoint(ct.C1) {
		return false, errors.Wrap(ecc.ErrInvalidPoint, "ciphertext is incomplete")
	}
	kG, err := group.Mult(group.Generator(), k)
	if err != nil {
		return false, err
	}
	return kG.Equal(ct.C1), nil
}

// EncryptScalar encodes the integer msg as the point msg*G and encrypts it.
// msg must be in [0, order).
func EncryptScalar(group *ecc.Group, publicKey ecc.Point, msg int64) (*Ciphertext, int64, error) {
	m, err := encodeScalar(group, msg)
	if err != nil {
		return nil, 0, err
	}
	return Encrypt(group, publicKey, m)
}

// DecryptScalar decrypts a ciphertext produced by EncryptScalar and recovers
// the integer by solving the discrete logarithm of the decrypted point.
func DecryptScalar(group *ecc.Group, secret int64, ct *Ciphertext) (int64, error) {
	m, err := Decrypt(group, secret, ct)
	if err != nil {
		return 0, err
	}
	return DiscreteLog(group, m)
}

// DiscreteLog finds m in [0, order) such that m*G == p by walking the
// multiples of the generator one at a time.
func DiscreteLog(group *ecc.Group, p ecc.Point) (int64, error) {
	if !group.HasGenerator() {
		return 0, errors.Wrap(ecc.ErrInvalidParameter, "group has no generator")
	}
	running := ecc.Infinity()
	for m := int64(0); m < group.Order(); m++ {
		if running.Equal(p) {
			return m, nil
		}
		var err error
		if running, err = group.Add(running, group.Generator()); err != nil {
			return 0, err
		}
	}
	return 0, errors.Wrapf(ErrDiscreteLogNotFound, "%s", p)
}

func encodeScalar(group *ecc.Group, msg int64) (ecc.Point, error) {
	if !group.HasGenerator() {
		return ecc.Invalid(), errors.Wrap(ecc.ErrInvalidParameter, "group has no generator")
	}
	if msg < 0 || msg >= group.Order() {
		return ecc.Invalid(), errors.Wrapf(ecc.ErrInvalidParameter, "message %d out of range [0, %d)", msg, group.Order())
	}
	if msg == 0 {
		return ecc.Infinity(), nil
	}
	return group.Mult(group.Generator(), msg)
}
