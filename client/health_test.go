package client

import (
	"context"
	"testing"
)

func TestHealthServiceParameters(t *testing.T) {
	// Health endpoints do not support consistency modes, so even a
	// client-wide stale default stays off the wire.
	ft := &fakeTransport{body: []byte(`[]`)}
	c := newTestClient(t, ft, Config{Consistency: ConsistencyStale})
	_, _, err := c.HealthService(context.Background(), "api", &HealthServiceOptions{
		Tag:     "v2",
		Passing: true,
	})
	if err != nil {
		t.Fatalf("health service: %v", err)
	}
	if got, want := ft.lastPath, "/v1/health/service/api"; got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
	if got, want := ft.lastQuery.Get("tag"), "v2"; got != want {
		t.Fatalf("tag = %q, want %q", got, want)
	}
	if got, want := ft.lastQuery.Get("passing"), "1"; got != want {
		t.Fatalf("passing = %q, want %q", got, want)
	}
	if ft.lastQuery.Get("stale") != "" || ft.lastQuery.Get("consistent") != "" {
		t.Fatalf("consistency leaked onto the wire: %v", ft.lastQuery)
	}
}

func TestHealthServiceDecodesEntries(t *testing.T) {
	ft := &fakeTransport{body: []byte(`[
		{"Node":{"Node":"n1","Address":"10.0.0.1"},
		 "Service":{"ID":"api-1","Service":"api","Tags":["v2"],"Port":8080},
		 "Checks":[{"Node":"n1","CheckID":"service:api-1","Name":"api check","Status":"passing"}]}
	]`)}
	c := newTestClient(t, ft, Config{})
	_, entries, err := c.HealthService(context.Background(), "api", nil)
	if err != nil {
		t.Fatalf("health service: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Node == nil || e.Node.Node != "n1" {
		t.Fatalf("node = %+v", e.Node)
	}
	if e.Service == nil || e.Service.Port != 8080 {
		t.Fatalf("service = %+v", e.Service)
	}
	if len(e.Checks) != 1 || e.Checks[0].Status != "passing" {
		t.Fatalf("checks = %+v", e.Checks)
	}
}

func TestHealthStateValidation(t *testing.T) {
	ft := &fakeTransport{body: []byte(`[]`)}
	c := newTestClient(t, ft, Config{})
	ctx := context.Background()

	for _, state := range []string{HealthAny, HealthPassing, HealthWarning, HealthCritical, HealthUnknown} {
		if _, _, err := c.HealthState(ctx, state, nil); err != nil {
			t.Fatalf("state %q: %v", state, err)
		}
	}

	ft.lastMethod = ""
	if _, _, err := c.HealthState(ctx, "sideways", nil); err == nil {
		t.Fatal("expected an error for an unknown state")
	}
	if ft.lastMethod != "" {
		t.Fatal("request was sent despite the invalid state")
	}
}
