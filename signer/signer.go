// Package signer assembles and signs the Signature Version 2
// string-to-sign for AWS Query API requests.
package signer

import (
	"strings"

	"github.com/queryapi/go-sigv2/credentials"
	"github.com/queryapi/go-sigv2/query"
)

// Signer holds the inputs for signing a single request. Populate the
// fields and call Do; a Signer is not reused across requests.
type Signer struct {
	// Method is the HTTP verb. It is uppercased in the string-to-sign.
	Method string

	// HostPort is the host:port component the receiving side validates
	// byte for byte.
	HostPort string

	// Path is the request path. Defaults to "/" when empty.
	Path string

	// Params are the client's default signing parameters.
	Params *query.ParameterSet

	// Overrides are the request-specific parameters, applied over Params.
	Overrides map[string]string

	// Credentials supply the signing secret.
	Credentials credentials.Credentials
}

// Do canonicalizes the query, signs the string-to-sign, and returns the
// canonical query with the percent-encoded signature appended. The
// signature is computed from the sorted canonical form and appended
// after it; it is never part of the sort.
func (s *Signer) Do() (string, error) {
	if s.Credentials.Secret.Empty() {
		return "", &credentials.MissingSecretError{}
	}

	canonical := s.Params.Canonicalize(s.Overrides)
	signature := s.Credentials.Secret.Sign([]byte(s.buildStringToSign(canonical)))

	return canonical + "&Signature=" + query.Escape(signature), nil
}

// buildStringToSign joins the four signed components with newlines:
// uppercased method, host:port, path, canonical query.
func (s *Signer) buildStringToSign(canonical string) string {
	path := s.Path
	if len(path) == 0 {
		path = "/"
	}

	return strings.Join([]string{
		strings.ToUpper(s.Method),
		s.HostPort,
		path,
		canonical,
	}, "\n")
}
