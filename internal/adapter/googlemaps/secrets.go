package googlemaps

import (
	"errors"
	"os"
	"sync"
)

// ErrMissingAPIKey is returned when no API key is configured. The client
// treats it as "provider disabled" rather than a hard failure.
var ErrMissingAPIKey = errors.New("google maps api key not configured")

// SecretFunc produces the API key, e.g. from the environment or a secret
// manager. It is invoked at most once.
type SecretFunc func() (string, error)

// KeySource lazily resolves the API key on first use and caches the result,
// so a slow secret backend is consulted once, not per request.
type KeySource struct {
	fetch SecretFunc

	once sync.Once
	key  string
	err  error
}

// NewKeySource wraps a SecretFunc.
func NewKeySource(fetch SecretFunc) *KeySource {
	return &KeySource{fetch: fetch}
}

// StaticKey returns a KeySource for an already-known key.
func StaticKey(key string) *KeySource {
	return NewKeySource(func() (string, error) {
		return key, nil
	})
}

// EnvKey returns a KeySource reading the key from an environment variable.
func EnvKey(name string) *KeySource {
	return NewKeySource(func() (string, error) {
		return os.Getenv(name), nil
	})
}

// Key resolves the API key. An empty key is reported as ErrMissingAPIKey.
func (s *KeySource) Key() (string, error) {
	s.once.Do(func() {
		s.key, s.err = s.fetch()
		if s.err == nil && s.key == "" {
			s.err = ErrMissingAPIKey
		}
	})
	return s.key, s.err
}
