package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// defaultReadSize is how much of a response body the connector reads per
// chunk when no size is configured.
const defaultReadSize = 32 * 1024

// HTTPDoer is the subset of http.Client a connector needs for round
// tripping requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPConnector is the default Connector. It performs exchanges with a
// net/http client and streams response bodies into the exchange's
// ChunkSink as bytes arrive, so the caller may consume the stream while
// delivery is still in flight.
//
// The zero value uses http.DefaultClient, the https scheme, and a 32 KiB
// read size.
type HTTPConnector struct {
	// Client round trips the built requests. Defaults to
	// http.DefaultClient.
	Client HTTPDoer

	// Scheme is the URL scheme of the exchange. Defaults to "https".
	Scheme string

	// ReadSize bounds how many body bytes are read per chunk.
	ReadSize int
}

// Do performs the exchange. The response body is delivered to sink from
// a separate goroutine; the returned Response carries a nil Body, as the
// signing client replaces it with the sink's stream anyway.
//
// Send failures are classified: a done context yields *CanceledError,
// anything else *RequestSendError. Mid-stream read failures reach the
// consumer through sink.CloseSend.
func (c *HTTPConnector) Do(ctx context.Context, req *Request, sink ChunkSink) (*Response, error) {
	u := url.URL{
		Scheme:   c.scheme(),
		Host:     req.Host,
		Path:     req.Path,
		RawQuery: req.RawQuery,
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, u.String(), req.Body)
	if err != nil {
		return nil, err
	}
	if req.Header != nil {
		hr.Header = req.Header.Clone()
	}

	resp, err := c.doer().Do(hr)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &CanceledError{Err: ctx.Err()}
		}
		return nil, &RequestSendError{Err: err}
	}

	go deliver(resp, sink, c.readSize())

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}, nil
}

// deliver pumps the response body into the sink chunk by chunk, counting
// down a remaining-bytes hint from Content-Length when it is known.
func deliver(resp *http.Response, sink ChunkSink, readSize int) {
	defer resp.Body.Close()

	remaining := resp.ContentLength
	buf := make([]byte, readSize)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if remaining >= 0 {
				remaining -= int64(n)
				if remaining < 0 {
					remaining = 0
				}
			}
			sink.Accept(buf[:n], remaining)
		}
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			sink.CloseSend(err)
			return
		}
	}
}

func (c *HTTPConnector) doer() HTTPDoer {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

func (c *HTTPConnector) scheme() string {
	if len(c.Scheme) > 0 {
		return c.Scheme
	}
	return "https"
}

func (c *HTTPConnector) readSize() int {
	if c.ReadSize > 0 {
		return c.ReadSize
	}
	return defaultReadSize
}
