package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vocdoni/ecc-elgamal-sandbox/api"
	"github.com/vocdoni/ecc-elgamal-sandbox/log"
)

const (
	// HTTPGET is the method string used for calling Request()
	HTTPGET = http.MethodGet
	// HTTPPOST is the method string used for calling Request()
	HTTPPOST = http.MethodPost

	errCodeNot200 = "API error"

	// DefaultRetries is the number of attempts Request() makes when the
	// server connection fails
	DefaultRetries = 3
	// DefaultTimeout is the default timeout for the HTTP client
	DefaultTimeout = 10 * time.Second
	// DefaultRetryDelay is the pause between two failed attempts
	DefaultRetryDelay = 500 * time.Millisecond

	maxLoggedBody = 512
)

// APIError is returned when the server answers with a status other than
// 200. Code is the API error code.
type APIError struct {
	Status  int
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %d (code %d: %s)", errCodeNot200, e.Status, e.Code, e.Message)
}

// Option configures an HTTPclient.
type Option func(*HTTPclient)

// WithTimeout sets the timeout of every HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPclient) {
		c.c.Timeout = d
		c.tr.ResponseHeaderTimeout = d
	}
}

// WithRetries sets the number of attempts made when the connection fails.
// Values below one are ignored.
func WithRetries(n int) Option {
	return func(c *HTTPclient) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithRetryDelay sets the pause between two failed attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *HTTPclient) {
		c.retryDelay = d
	}
}

// HTTPclient is the HTTP client of the curve sandbox API.
type HTTPclient struct {
	c          *http.Client
	tr         *http.Transport
	host       *url.URL
	retries    int
	retryDelay time.Duration
}

// New connects to the API host, checks it answers the ping endpoint and
// returns the handle.
func New(host string, opts ...Option) (*HTTPclient, error) {
	hostURL, err := url.Parse(host)
	if err != nil {
		return nil, errors.Wrapf(err, "parse host %q", host)
	}

	tr := &http.Transport{
		IdleConnTimeout:    DefaultTimeout,
		DisableCompression: false,
		WriteBufferSize:    1 * 1024 * 1024, // 1 MiB
		ReadBufferSize:     1 * 1024 * 1024, // 1 MiB
	}
	c := &HTTPclient{
		c:          &http.Client{Transport: tr, Timeout: DefaultTimeout},
		tr:         tr,
		host:       hostURL,
		retries:    DefaultRetries,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	log.Debugw("http client created", "host", hostURL.String(), "timeout", c.c.Timeout.String(), "retries", c.retries)
	if err := c.Ping(); err != nil {
		return nil, err
	}
	return c, nil
}

// Ping checks the server is alive.
func (c *HTTPclient) Ping() error {
	return c.Request(HTTPGET, nil, nil, api.PingEndpoint)
}

// Request sends a request with the JSON encoding of body (if not nil) to the
// endpoint made of the urlPath segments. A 200 response is decoded into out
// (if not nil); any other status is returned as an *APIError. Connection
// failures are retried.
func (c *HTTPclient) Request(method string, body, out any, urlPath ...string) error {
	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return errors.Wrap(err, "marshal request body")
		}
	}

	u := *c.host
	u.Path = path.Join(u.Path, path.Join(urlPath...))

	log.Debugw("http client request",
		"type", method,
		"url", u.String(),
		"body", func() string {
			if len(data) > maxLoggedBody {
				return string(data[:maxLoggedBody]) + "..."
			}
			return string(data)
		}(),
	)

	resp, err := c.do(method, u.String(), data)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response body")
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(respData, apiErr); err != nil {
			apiErr.Message = string(respData)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return errors.Wrap(json.Unmarshal(respData, out), "decode response")
}

// do sends the request, retrying it while the connection fails.
func (c *HTTPclient) do(method, target string, body []byte) (*http.Response, error) {
	var lastErr error
	for i := 1; i <= c.retries; i++ {
		// a fresh request each attempt, the body reader is consumed
		req, err := http.NewRequest(method, target, bytes.NewReader(body))
		if err != nil {
			return nil, errors.Wrap(err, "create request")
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept", "application/json")
		}
		resp, err := c.c.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		log.Warnw("http request failed", "error", err.Error(), "attempt", i, "retries", c.retries)
		if i < c.retries {
			time.Sleep(c.retryDelay)
		}
	}
	return nil, errors.Wrapf(lastErr, "http request failed after %d attempts", c.retries)
}
