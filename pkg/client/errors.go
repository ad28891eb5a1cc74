package client

import "errors"

var (
	// ErrRequestFailed covers transport errors, non-2xx statuses and malformed
	// response bodies alike.
	ErrRequestFailed = errors.New("request failed")

	ErrBadRequest = errors.New("bad request")

	ErrUnauthorized = errors.New("unauthorized")

	ErrNotFound = errors.New("not found")

	ErrRateLimited = errors.New("rate limited")
)
