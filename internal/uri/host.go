// Package uri provides host and port helpers for endpoint handling.
package uri

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// HostPort returns the host:port component of u, appending the default
// port for u's scheme when the URL does not carry an explicit one. The
// result is the second component of the string-to-sign, so it must come
// out identically for equivalent endpoints.
func HostPort(u *url.URL) string {
	port := u.Port()
	if len(port) == 0 {
		port = DefaultPort(u.Scheme)
	}
	return net.JoinHostPort(u.Hostname(), port)
}

// DefaultPort returns the conventional port for scheme.
func DefaultPort(scheme string) string {
	if strings.EqualFold(scheme, "http") {
		return "80"
	}
	return "443"
}

// ValidPortNumber returns whether the port is a valid RFC 3986 port.
func ValidPortNumber(port string) bool {
	i, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return i >= 0 && i <= 65535
}
