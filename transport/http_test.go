package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (fn doerFunc) Do(r *http.Request) (*http.Response, error) {
	return fn(r)
}

// collectSink records deliveries and signals when the connector finishes.
type collectSink struct {
	mu     sync.Mutex
	chunks [][]byte
	hints  []int64
	err    error
	done   chan struct{}
}

func newCollectSink() *collectSink {
	return &collectSink{done: make(chan struct{})}
}

func (s *collectSink) Accept(chunk []byte, remaining int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := make([]byte, len(chunk))
	copy(c, chunk)
	s.chunks = append(s.chunks, c)
	s.hints = append(s.hints, remaining)
}

func (s *collectSink) CloseSend(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.done)
}

func (s *collectSink) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("expect delivery to finish")
	}
}

func (s *collectSink) body() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Join(s.chunks, nil)
}

func TestHTTPConnectorExchange(t *testing.T) {
	const body = "streaming response body"

	var gotMethod, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotQuery = r.Method, r.URL.RawQuery
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	conn := &HTTPConnector{Client: server.Client(), Scheme: "http"}
	sink := newCollectSink()

	resp, err := conn.Do(context.Background(), &Request{
		Method:   "GET",
		Host:     u.Host,
		Path:     "/v1",
		RawQuery: "Action=Foo&Signature=abc",
		Header:   http.Header{"User-Agent": {"go-sigv2-test"}},
	}, sink)
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	sink.wait(t)

	if e, a := http.StatusOK, resp.StatusCode; e != a {
		t.Errorf("expect status %v, got %v", e, a)
	}
	if resp.Body != nil {
		t.Errorf("expect nil response body from connector, got %T", resp.Body)
	}
	if e, a := "GET", gotMethod; e != a {
		t.Errorf("expect method %q, got %q", e, a)
	}
	if e, a := "Action=Foo&Signature=abc", gotQuery; e != a {
		t.Errorf("expect signed query sent unmodified, got %q", a)
	}
	if e, a := body, string(sink.body()); e != a {
		t.Errorf("expect body %q, got %q", e, a)
	}
	if sink.err != nil {
		t.Errorf("expect clean completion, got %v", sink.err)
	}
	if n := len(sink.hints); n == 0 || sink.hints[n-1] != 0 {
		t.Errorf("expect final remaining hint of 0, got %v", sink.hints)
	}
}

func TestHTTPConnectorSendError(t *testing.T) {
	conn := &HTTPConnector{
		Client: doerFunc(func(*http.Request) (*http.Response, error) {
			return nil, fmt.Errorf("connection refused")
		}),
	}

	_, err := conn.Do(context.Background(), &Request{Method: "GET", Host: "host:443", Path: "/"}, newCollectSink())
	if err == nil {
		t.Fatalf("expect error, got none")
	}

	var sendErr *RequestSendError
	if !errors.As(err, &sendErr) {
		t.Errorf("expect %T, got %v", sendErr, err)
	}
}

func TestHTTPConnectorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conn := &HTTPConnector{
		Client: doerFunc(func(r *http.Request) (*http.Response, error) {
			return nil, r.Context().Err()
		}),
	}

	_, err := conn.Do(ctx, &Request{Method: "GET", Host: "host:443", Path: "/"}, newCollectSink())
	if err == nil {
		t.Fatalf("expect error, got none")
	}

	var canceled *CanceledError
	if !errors.As(err, &canceled) {
		t.Fatalf("expect %T, got %v", canceled, err)
	}
	if !errors.Is(canceled.Err, context.Canceled) {
		t.Errorf("expect underlying context.Canceled, got %v", canceled.Err)
	}
}

func TestHTTPConnectorMidStreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more bytes than are written so the client's body read
		// fails partway through.
		w.Header().Set("Content-Length", "100")
		fmt.Fprint(w, "partial")
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}

	conn := &HTTPConnector{Client: server.Client(), Scheme: "http"}
	sink := newCollectSink()

	resp, err := conn.Do(context.Background(), &Request{Method: "GET", Host: u.Host, Path: "/"}, sink)
	if err != nil {
		t.Fatalf("expect no send error, got %v", err)
	}
	if e, a := http.StatusOK, resp.StatusCode; e != a {
		t.Errorf("expect status %v, got %v", e, a)
	}

	sink.wait(t)

	if e, a := "partial", string(sink.body()); e != a {
		t.Errorf("expect delivered prefix %q, got %q", e, a)
	}
	if sink.err == nil {
		t.Errorf("expect mid-stream error reported through CloseSend")
	}
}
