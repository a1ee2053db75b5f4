// Package sigv2 signs AWS Query API requests with Signature Version 2
// and exposes their responses as lazily consumed chunk streams.
//
// A Client holds an endpoint and signing credentials. Each verb call
// merges the client's default signing parameters with the request's own,
// canonicalizes and signs the query, and hands the signed request to a
// transport.Connector together with a fresh stream.Buffer as the chunk
// sink. The returned response's Body is that stream.
package sigv2

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/queryapi/go-sigv2/credentials"
	"github.com/queryapi/go-sigv2/internal/uri"
	"github.com/queryapi/go-sigv2/logging"
	"github.com/queryapi/go-sigv2/query"
	"github.com/queryapi/go-sigv2/signer"
	"github.com/queryapi/go-sigv2/stream"
	"github.com/queryapi/go-sigv2/transport"
)

// Version is the library release version reported in the User-Agent.
const Version = "1.0.0"

// Client signs Query API requests against a single endpoint.
//
// The zero value is not usable; construct with New. Configuration is
// fixed at construction. A missing endpoint, access key, or secret is
// reported at request time, before any network I/O.
type Client struct {
	endpoint  string
	creds     credentials.Credentials
	header    http.Header
	logger    logging.Logger
	now       func() time.Time
	userAgent string

	defaults *query.ParameterSet

	httpClient transport.HTTPDoer

	connOnce sync.Once
	conn     transport.Connector
}

// New returns a Client for endpoint, signing with the given access key
// id and secret access key. Empty values are permitted here and rejected
// when a request is attempted.
func New(endpoint, accessKeyID, secret string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		creds: credentials.Credentials{
			AccessKeyID: accessKeyID,
			Secret:      credentials.SecretFromString(secret),
		},
		header: http.Header{},
		logger: logging.Noop{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.userAgent = buildUserAgent()
	c.defaults = c.buildDefaults()
	return c
}

// RequestOptions carry the per-request inputs for a signed exchange.
type RequestOptions struct {
	// Path overrides the endpoint's path for this request.
	Path string

	// Params are the request-specific signing parameters, e.g. Action.
	// They replace colliding default parameters.
	Params map[string]string

	// Header adds to or overrides the client's configured headers.
	Header http.Header

	// Body is an optional request payload, passed to the connector
	// unsigned.
	Body io.Reader
}

// Get performs a signed GET exchange.
func (c *Client) Get(ctx context.Context, opts RequestOptions) (*transport.Response, error) {
	return c.Do(ctx, http.MethodGet, opts)
}

// Post performs a signed POST exchange.
func (c *Client) Post(ctx context.Context, opts RequestOptions) (*transport.Response, error) {
	return c.Do(ctx, http.MethodPost, opts)
}

// Put performs a signed PUT exchange.
func (c *Client) Put(ctx context.Context, opts RequestOptions) (*transport.Response, error) {
	return c.Do(ctx, http.MethodPut, opts)
}

// Delete performs a signed DELETE exchange.
func (c *Client) Delete(ctx context.Context, opts RequestOptions) (*transport.Response, error) {
	return c.Do(ctx, http.MethodDelete, opts)
}

// Head performs a signed HEAD exchange.
func (c *Client) Head(ctx context.Context, opts RequestOptions) (*transport.Response, error) {
	return c.Do(ctx, http.MethodHead, opts)
}

// Do signs and performs a single exchange with the given HTTP verb. The
// returned response's Body is the exchange's chunk stream; the caller
// owns draining or closing it. The stream may still be receiving chunks
// when Do returns.
func (c *Client) Do(ctx context.Context, verb string, opts RequestOptions) (*transport.Response, error) {
	if len(c.endpoint) == 0 {
		return nil, &MissingEndpointError{}
	}
	if len(c.creds.AccessKeyID) == 0 {
		return nil, &credentials.MissingKeyError{}
	}
	if c.creds.Secret.Empty() {
		return nil, &credentials.MissingSecretError{}
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	if port := u.Port(); len(port) > 0 && !uri.ValidPortNumber(port) {
		return nil, fmt.Errorf("invalid endpoint %q: bad port %q", c.endpoint, port)
	}

	hostPort := uri.HostPort(u)
	path := u.Path
	if len(opts.Path) > 0 {
		path = opts.Path
	}
	if len(path) == 0 {
		path = "/"
	}

	method := strings.ToUpper(verb)
	s := signer.Signer{
		Method:      method,
		HostPort:    hostPort,
		Path:        path,
		Params:      c.defaults,
		Overrides:   opts.Params,
		Credentials: c.creds,
	}
	signed, err := s.Do()
	if err != nil {
		return nil, err
	}

	logger := logging.WithContext(ctx, c.logger)
	logger.Logf(logging.Debug, "signed %s %s%s", method, hostPort, path)

	req := &transport.Request{
		Method:   method,
		Host:     hostPort,
		Path:     path,
		RawQuery: signed,
		Header:   c.buildHeader(opts.Header),
		Body:     opts.Body,
	}

	buf := stream.NewBuffer()
	resp, err := c.connector(u.Scheme).Do(ctx, req, buf)
	if err != nil {
		return nil, err
	}
	if resp.Body != nil {
		resp.Body.Close()
	}
	resp.Body = buf

	return resp, nil
}

// buildDefaults constructs the client's default signing parameters.
// AWSAccessKeyId and Timestamp are providers so they observe client
// state at signing time.
func (c *Client) buildDefaults() *query.ParameterSet {
	p := query.NewParameterSet()
	p.Set("AWSAccessKeyId", query.Provider(func() string { return c.creds.AccessKeyID }))
	p.Set("SignatureVersion", query.String("2"))
	p.Set("SignatureMethod", query.String("HmacSHA256"))
	p.Set("Timestamp", query.Provider(func() string { return signer.FormatTime(c.now()) }))
	return p
}

// buildHeader layers the fixed User-Agent, the client's configured
// headers, and the request's own overrides, in that precedence order.
func (c *Client) buildHeader(overrides http.Header) http.Header {
	h := c.header.Clone()
	if h == nil {
		h = http.Header{}
	}
	if len(h.Get("User-Agent")) == 0 {
		h.Set("User-Agent", c.userAgent)
	}
	for name, values := range overrides {
		h[http.CanonicalHeaderKey(name)] = values
	}
	return h
}

// connector returns the client's connector, creating and memoizing the
// default one on first use. Guarded so concurrent verb calls observe a
// single connector.
func (c *Client) connector(scheme string) transport.Connector {
	c.connOnce.Do(func() {
		if c.conn == nil {
			c.conn = &transport.HTTPConnector{
				Client: c.httpClient,
				Scheme: scheme,
			}
		}
	})
	return c.conn
}

func buildUserAgent() string {
	b := transport.NewUserAgentBuilder()
	b.AddProductVersion("go-sigv2", Version)
	if host, err := os.Hostname(); err == nil && len(host) > 0 {
		b.AddComment(host)
	}
	return b.Build()
}
