package token

import (
	"encoding/base64"
	"errors"
	"os"
)

// KeySource loads the HMAC signing key. The codec resolves it once at
// construction; rotation requires a restart.
type KeySource func() ([]byte, error)

// FromBase64Env returns a KeySource that reads a base64 encoded key from the
// named environment variable.
func FromBase64Env(key string) KeySource {
	return func() ([]byte, error) {
		encoded := os.Getenv(key)
		if encoded == "" {
			return nil, errors.New("signing key is not found")
		}

		return base64.StdEncoding.DecodeString(encoded)
	}
}

// Static returns a KeySource that yields a fixed key. Intended for tests and
// local development.
func Static(key []byte) KeySource {
	return func() ([]byte, error) {
		return key, nil
	}
}
