package source

import "errors"

var (
	// ErrUnsupportedFormat means the config file extension maps to no known
	// decoder.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrTokenMalformed means the access token could not be decoded.
	ErrTokenMalformed = errors.New("malformed token")
)
