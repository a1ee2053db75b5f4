// Package credentials provides the signing identity used for Signature
// Version 2 request signing.
package credentials

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Secret wraps the raw secret access key bytes. A Secret is immutable
// after construction and safe for concurrent use.
type Secret struct {
	key []byte
}

// NewSecret returns a Secret wrapping a copy of the given key bytes.
func NewSecret(key []byte) Secret {
	k := make([]byte, len(key))
	copy(k, key)
	return Secret{key: k}
}

// SecretFromString returns a Secret wrapping the bytes of key.
func SecretFromString(key string) Secret {
	return NewSecret([]byte(key))
}

// Empty returns whether the Secret holds no key material.
func (s Secret) Empty() bool {
	return len(s.key) == 0
}

// Sign returns the base64-encoded HMAC-SHA256 digest of message, keyed by
// the wrapped secret. Pure function of its inputs; callable concurrently.
func (s Secret) Sign(message []byte) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(message)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Credentials describe the signing identity of a Query API client.
type Credentials struct {
	// AccessKeyID identifies the caller on every signed request.
	AccessKeyID string

	// Secret signs the string-to-sign.
	Secret Secret
}
