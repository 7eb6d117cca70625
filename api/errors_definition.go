//nolint:lll
package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the user's fault,
// and they return HTTP Status 400, 404 or 422, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault
// and they return HTTP Status 500 or 503, or something else if appropriate.
//
// NEVER change any of the current error codes, only append new errors after the current last 4XXX or 5XXX
// If you notice there's a gap (say, error code 4010, 4011 and 4013 exist, 4012 is missing) DON'T fill in the gap,
// that code was used in the past for some error (not anymore) and shouldn't be reused.
// There's no correlation between Code and HTTP Status.
var (
	ErrResourceNotFound   = Error{Code: 40001, HTTPstatus: http.StatusNotFound, Err: errors.New("resource not found")}
	ErrMalformedBody      = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: errors.New("malformed JSON body")}
	ErrMalformedCurveID   = Error{Code: 40006, HTTPstatus: http.StatusBadRequest, Err: errors.New("malformed curve ID")}
	ErrCurveNotFound      = Error{Code: 40007, HTTPstatus: http.StatusNotFound, Err: errors.New("curve not found")}
	ErrInvalidCurve       = Error{Code: 40008, HTTPstatus: http.StatusBadRequest, Err: errors.New("invalid curve")}
	ErrKeyNotFound        = Error{Code: 40009, HTTPstatus: http.StatusNotFound, Err: errors.New("key not found")}
	ErrInvalidPoint       = Error{Code: 40010, HTTPstatus: http.StatusBadRequest, Err: errors.New("invalid point")}
	ErrArithmetic         = Error{Code: 40011, HTTPstatus: http.StatusUnprocessableEntity, Err: errors.New("arithmetic error")}
	ErrInvalidParameter   = Error{Code: 40012, HTTPstatus: http.StatusBadRequest, Err: errors.New("invalid parameter")}
	ErrMalformedKeyID     = Error{Code: 40013, HTTPstatus: http.StatusBadRequest, Err: errors.New("malformed key ID")}
	ErrMissingGenerator   = Error{Code: 40014, HTTPstatus: http.StatusUnprocessableEntity, Err: errors.New("curve group has no generator")}

	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: errors.New("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: errors.New("internal server error")}
)
