package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/elgamal"
	"github.com/vocdoni/ecc-elgamal-sandbox/util"
)

// demo builds the group of y^2 = x^3 + ax + b (mod p), prints it and runs
// an ElGamal round trip on a random point and on a random small integer.
func demo(w io.Writer, p, a, b, secret int64) error {
	curve := ecc.Curve{P: p, A: a, B: b}
	fmt.Fprintf(w, "curve: %s\n", curve)
	if !ecc.TestConstraints(p, a, b) {
		return errors.Newf("curve %s is singular", curve)
	}
	g, err := ecc.NewGroup(curve)
	if err != nil {
		return err
	}
	points := g.Points()
	fmt.Fprintf(w, "residues: %v\n", g.Residues())
	fmt.Fprintf(w, "points (%d): %v\n", len(points), points)
	if !g.HasGenerator() {
		fmt.Fprintln(w, "no generator found, ElGamal is not available on this curve")
		return nil
	}
	fmt.Fprintf(w, "generator: %s order: %d\n", g.Generator(), g.Order())

	var kp *elgamal.KeyPair
	if secret != 0 {
		kp, err = elgamal.KeyFromSecret(g, secret)
	} else {
		kp, err = elgamal.GenerateKey(g)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "secret: %d public key: %s\n", kp.Secret, kp.Public)

	msg := points[util.RandomInt(0, len(points))]
	ct, k, err := elgamal.Encrypt(g, kp.Public, msg)
	if err != nil {
		return err
	}
	dec, err := elgamal.Decrypt(g, kp.Secret, ct)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "plaintext: %s k: %d ciphertext: %s decrypted: %s\n", msg, k, ct, dec)
	if !dec.Equal(msg) {
		return errors.Newf("decrypted %s, expected %s", dec, msg)
	}

	m := int64(util.RandomInt(0, int(g.Order())))
	sct, _, err := elgamal.EncryptScalar(g, kp.Public, m)
	if err != nil {
		return err
	}
	dm, err := elgamal.DecryptScalar(g, kp.Secret, sct)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "scalar: %d ciphertext: %s decrypted: %d\n", m, sct, dm)
	if dm != m {
		return errors.Newf("decrypted scalar %d, expected %d", dm, m)
	}
	return nil
}
