// Package transport defines the connector surface the signing client
// drives: request and response descriptors, a chunk sink for incremental
// body delivery, and a default connector backed by net/http.
package transport

import (
	"context"
	"io"
	"net/http"
)

// Request describes a fully formed, signed request ready for a Connector.
type Request struct {
	// Method is the HTTP verb, already uppercased.
	Method string

	// Host is the host:port to exchange with.
	Host string

	// Path is the request path.
	Path string

	// RawQuery is the signed query string, encoded and ready for the
	// wire. Connectors must send it unmodified; the receiving side
	// validates it byte for byte.
	RawQuery string

	// Header carries the request headers, User-Agent included.
	Header http.Header

	// Body is the optional request payload.
	Body io.Reader
}

// Response describes the result of an exchange. The signing client
// replaces Body with the stream fed through the exchange's ChunkSink
// before handing the Response to its caller.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// ChunkSink receives response body bytes as the connector reads them off
// the wire.
type ChunkSink interface {
	// Accept is invoked once per received chunk, in delivery order.
	// remaining hints how many bytes are still expected; zero marks the
	// final chunk, negative means unknown.
	Accept(chunk []byte, remaining int64)

	// CloseSend marks the end of delivery. A non-nil err reports a
	// mid-stream transport failure.
	CloseSend(err error)
}

// Connector performs one HTTP exchange. Implementations own every
// transport concern: connections, TLS, timeouts, retries.
type Connector interface {
	Do(ctx context.Context, req *Request, sink ChunkSink) (*Response, error)
}

// ConnectorFunc wraps a function as a Connector.
type ConnectorFunc func(ctx context.Context, req *Request, sink ChunkSink) (*Response, error)

// Do invokes the underlying func, returning the result.
func (fn ConnectorFunc) Do(ctx context.Context, req *Request, sink ChunkSink) (*Response, error) {
	return fn(ctx, req, sink)
}
