package client

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arbo/memdb"
	"github.com/vocdoni/ecc-elgamal-sandbox/api"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
	"github.com/vocdoni/ecc-elgamal-sandbox/storage"
)

func newTestClient(c *qt.C) *HTTPclient {
	a, err := api.New(&api.APIConfig{
		Host:    "127.0.0.1",
		Port:    0,
		Storage: storage.New(memdb.New()),
	})
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	cli, err := New("http://" + a.Addr().String())
	c.Assert(err, qt.IsNil)
	return cli
}

func TestClientRoundTrip(t *testing.T) {
	c := qt.New(t)
	cli := newTestClient(c)

	valid, err := cli.TestConstraints(23, 1, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(valid, qt.IsTrue)

	info, err := cli.NewCurve(23, 1, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(info.Generator, qt.DeepEquals, ecc.NewPoint(9, 7))

	ids, err := cli.Curves()
	c.Assert(err, qt.IsNil)
	c.Assert(ids, qt.HasLen, 1)

	got, err := cli.Curve(info.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, info)

	secret := int64(5)
	key, err := cli.NewKey(info.ID, &secret)
	c.Assert(err, qt.IsNil)
	c.Assert(key.PublicKey, qt.DeepEquals, ecc.NewPoint(19, 5))

	stored, err := cli.Key(info.ID, key.KeyID)
	c.Assert(err, qt.IsNil)
	c.Assert(stored, qt.DeepEquals, key)

	ct, k, err := cli.Encrypt(info.ID, key.KeyID, ecc.NewPoint(3, 10), nil)
	c.Assert(err, qt.IsNil)
	c.Assert(k >= 1 && k < info.Order, qt.IsTrue)
	msg, err := cli.Decrypt(info.ID, key.KeyID, ct)
	c.Assert(err, qt.IsNil)
	c.Assert(msg, qt.DeepEquals, ecc.NewPoint(3, 10))

	fixedK := int64(7)
	ct, k, err = cli.EncryptWithPublicKey(info.ID, key.PublicKey, ecc.NewPoint(3, 10), &fixedK)
	c.Assert(err, qt.IsNil)
	c.Assert(k, qt.Equals, int64(7))
	c.Assert(ct.C1, qt.DeepEquals, ecc.NewPoint(11, 20))
	c.Assert(ct.C2, qt.DeepEquals, ecc.NewPoint(12, 19))

	sum, err := cli.Add(info.ID, ecc.NewPoint(3, 10), ecc.NewPoint(9, 7))
	c.Assert(err, qt.IsNil)
	c.Assert(sum, qt.DeepEquals, ecc.NewPoint(17, 20))

	double, err := cli.Mult(info.ID, ecc.NewPoint(3, 10), 2)
	c.Assert(err, qt.IsNil)
	c.Assert(double, qt.DeepEquals, ecc.NewPoint(7, 12))

	preset, err := cli.NewPresetCurve("textbook751")
	c.Assert(err, qt.IsNil)
	c.Assert(preset.Generator, qt.DeepEquals, ecc.NewPoint(0, 376))
}

func TestClientAPIError(t *testing.T) {
	c := qt.New(t)
	cli := newTestClient(c)

	_, err := cli.NewCurve(23, 0, 0)
	var apiErr *APIError
	c.Assert(errors.As(err, &apiErr), qt.IsTrue)
	c.Assert(apiErr.Status, qt.Equals, api.ErrInvalidCurve.HTTPstatus)
	c.Assert(apiErr.Code, qt.Equals, api.ErrInvalidCurve.Code)

	_, err = cli.Curve([]byte{0x01, 0x02})
	c.Assert(errors.As(err, &apiErr), qt.IsTrue)
	c.Assert(apiErr.Code, qt.Equals, api.ErrCurveNotFound.Code)
}

func TestClientOptions(t *testing.T) {
	c := qt.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == api.CurvesEndpoint {
			time.Sleep(500 * time.Millisecond)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cli, err := New(srv.URL, WithTimeout(50*time.Millisecond), WithRetries(1), WithRetryDelay(time.Millisecond))
	c.Assert(err, qt.IsNil)
	c.Assert(cli.c.Timeout, qt.Equals, 50*time.Millisecond)
	c.Assert(cli.retries, qt.Equals, 1)

	_, err = cli.Curves()
	c.Assert(err, qt.IsNotNil)
	var apiErr *APIError
	c.Assert(errors.As(err, &apiErr), qt.IsFalse)

	// a closed port fails every attempt
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	c.Assert(err, qt.IsNil)
	addr := ln.Addr().String()
	c.Assert(ln.Close(), qt.IsNil)
	_, err = New("http://"+addr, WithRetries(2), WithRetryDelay(time.Millisecond))
	c.Assert(err, qt.ErrorMatches, "http request failed after 2 attempts.*")

	cli, err = New(srv.URL, WithRetries(0))
	c.Assert(err, qt.IsNil)
	c.Assert(cli.retries, qt.Equals, DefaultRetries)
}
