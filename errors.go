package text2kv

import "errors"

var (
	// ErrNotFound is returned when no value is stored under a name
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when the presented token does not match
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDecode is returned when a b64 payload is not valid base64
	ErrDecode = errors.New("invalid base64 string")
	// ErrVerification is returned when the read-back after a write does not
	// return the value just written. The write itself may have landed.
	ErrVerification = errors.New("content verification failed after write operation")
	// ErrStoreUnbound is returned when no backing store is configured
	ErrStoreUnbound = errors.New("backing store is not bound")
)
