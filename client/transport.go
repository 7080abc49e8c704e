package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// Envelope is the uniform result of one transport call: status code,
// response headers, and the fully read body. It is produced once per
// request and consumed immediately by the decoder.
type Envelope struct {
	Status int
	Header http.Header
	Body   []byte
}

// indexHeader returns the named header with a case-insensitive lookup,
// tolerating transports that populate Header with non-canonical keys.
func (e *Envelope) indexHeader(name string) string {
	if v := e.Header.Get(name); v != "" {
		return v
	}
	canonical := textproto.CanonicalMIMEHeaderKey(name)
	for k, vals := range e.Header {
		if len(vals) > 0 && strings.EqualFold(k, canonical) {
			return vals[0]
		}
	}
	return ""
}

// Transport performs HTTP verbs against the agent and returns the raw
// response envelope. Implementations own sockets, TLS, and pooling; the
// client core never touches the network directly. Alternative backends
// (test fakes, instrumented stacks) plug in via WithTransport.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) (*Envelope, error)
	Put(ctx context.Context, path string, query url.Values, body []byte) (*Envelope, error)
	Delete(ctx context.Context, path string, query url.Values) (*Envelope, error)
	Post(ctx context.Context, path string, query url.Values, body []byte) (*Envelope, error)
}

// httpTransport is the net/http-backed Transport used by default.
type httpTransport struct {
	base   string
	client *http.Client
}

func newHTTPTransport(base string, cli *http.Client) *httpTransport {
	return &httpTransport{base: strings.TrimRight(base, "/"), client: cli}
}

func (t *httpTransport) Get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	return t.roundTrip(ctx, http.MethodGet, path, query, nil)
}

func (t *httpTransport) Put(ctx context.Context, path string, query url.Values, body []byte) (*Envelope, error) {
	return t.roundTrip(ctx, http.MethodPut, path, query, body)
}

func (t *httpTransport) Delete(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	return t.roundTrip(ctx, http.MethodDelete, path, query, nil)
}

func (t *httpTransport) Post(ctx context.Context, path string, query url.Values, body []byte) (*Envelope, error) {
	return t.roundTrip(ctx, http.MethodPost, path, query, body)
}

func (t *httpTransport) roundTrip(ctx context.Context, method, path string, query url.Values, body []byte) (*Envelope, error) {
	full := t.base + escapePath(path)
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, full, reader)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Envelope{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// escapePath percent-encodes each path segment while keeping the
// separators intact, so keys containing spaces or reserved characters
// survive the trip.
func escapePath(path string) string {
	u := url.URL{Path: path}
	return u.EscapedPath()
}
