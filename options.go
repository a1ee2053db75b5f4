package sigv2

import (
	"time"

	"github.com/queryapi/go-sigv2/logging"
	"github.com/queryapi/go-sigv2/transport"
)

// Option applies configuration to a Client at construction.
type Option func(*Client)

// WithLogger sets the logger request signing and dispatch are reported
// to. Defaults to a no-op logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithConnector replaces the default net/http backed connector.
func WithConnector(conn transport.Connector) Option {
	return func(c *Client) {
		c.conn = conn
	}
}

// WithHTTPClient sets the http client the default connector performs
// exchanges with. Ignored when WithConnector is used.
func WithHTTPClient(client transport.HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithHeader sets a header sent on every request. Request options may
// still override it per call.
func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.header.Set(name, value)
	}
}

// WithClock overrides the time source of the Timestamp signing
// parameter. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}
