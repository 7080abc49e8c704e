package client

import (
	"context"
	"net/http"
	"net/url"
	"testing"
)

// fakeTransport serves canned envelopes and records what the client
// sent, so endpoint tests can assert on wire parameters without a
// network.
type fakeTransport struct {
	status int
	header http.Header
	body   []byte
	err    error

	lastMethod string
	lastPath   string
	lastQuery  url.Values
	lastBody   []byte
}

func (f *fakeTransport) respond(method, path string, query url.Values, body []byte) (*Envelope, error) {
	f.lastMethod = method
	f.lastPath = path
	f.lastQuery = query
	f.lastBody = body
	if f.err != nil {
		return nil, f.err
	}
	status := f.status
	if status == 0 {
		status = 200
	}
	header := f.header
	if header == nil {
		header = http.Header{"X-Consul-Index": []string{"1"}}
	}
	return &Envelope{Status: status, Header: header, Body: f.body}, nil
}

func (f *fakeTransport) Get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	return f.respond(http.MethodGet, path, query, nil)
}

func (f *fakeTransport) Put(ctx context.Context, path string, query url.Values, body []byte) (*Envelope, error) {
	return f.respond(http.MethodPut, path, query, body)
}

func (f *fakeTransport) Delete(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	return f.respond(http.MethodDelete, path, query, nil)
}

func (f *fakeTransport) Post(ctx context.Context, path string, query url.Values, body []byte) (*Envelope, error) {
	return f.respond(http.MethodPost, path, query, body)
}

func newTestClient(t *testing.T, ft *fakeTransport, cfg Config) *Client {
	t.Helper()
	c, err := New(cfg, WithTransport(ft))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func indexedEnvelope(index string, body string) *Envelope {
	return &Envelope{
		Status: 200,
		Header: http.Header{"X-Consul-Index": []string{index}},
		Body:   []byte(body),
	}
}
