package client

import (
	"context"
	"testing"
	"time"

	"pkt.systems/consulq/api"
)

func TestACLErrorMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("acl support disabled", func(t *testing.T) {
		ft := &fakeTransport{status: 401, body: []byte("ACL support disabled")}
		c := newTestClient(t, ft, Config{})
		_, _, err := c.ACLList(ctx, nil)
		if err == nil {
			t.Fatal("expected an error")
		}
		if !IsAuthDisabled(err) {
			t.Fatalf("IsAuthDisabled(%v) = false", err)
		}
	})

	t.Run("permission denied", func(t *testing.T) {
		ft := &fakeTransport{status: 403, body: []byte("Permission denied")}
		c := newTestClient(t, ft, Config{Token: "client-token"})
		_, _, err := c.ACLList(ctx, nil)
		if err == nil {
			t.Fatal("expected an error")
		}
		if !IsPermissionDenied(err) {
			t.Fatalf("IsPermissionDenied(%v) = false", err)
		}
	})
}

func TestACLReadsAreGlobal(t *testing.T) {
	// The ACL endpoints take no datacenter parameter and no consistency
	// mode; client-wide defaults for both must stay off the wire while
	// blocking parameters and the token still pass through.
	ft := &fakeTransport{body: []byte(`[]`)}
	c := newTestClient(t, ft, Config{
		Token:       "mgmt",
		Datacenter:  "dc1",
		Consistency: ConsistencyStale,
	})
	_, _, err := c.ACLList(context.Background(), &QueryOptions{Index: 3, Wait: 10 * time.Second})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, param := range []string{"dc", "stale", "consistent"} {
		if got := ft.lastQuery.Get(param); got != "" {
			t.Fatalf("%s = %q sent to a global endpoint", param, got)
		}
	}
	if got, want := ft.lastQuery.Get("token"), "mgmt"; got != want {
		t.Fatalf("token = %q, want %q", got, want)
	}
	if got, want := ft.lastQuery.Get("index"), "3"; got != want {
		t.Fatalf("index = %q, want %q", got, want)
	}
	if got, want := ft.lastQuery.Get("wait"), "10s"; got != want {
		t.Fatalf("wait = %q, want %q", got, want)
	}
}

func TestACLCreateReturnsID(t *testing.T) {
	ft := &fakeTransport{body: []byte(`{"ID":"new-token"}`)}
	c := newTestClient(t, ft, Config{Token: "mgmt"})
	id, err := c.ACLCreate(context.Background(), &api.ACLSpec{Name: "ro", Type: "client"}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got, want := id, "new-token"; got != want {
		t.Fatalf("id = %q, want %q", got, want)
	}
	if got, want := ft.lastQuery.Get("token"), "mgmt"; got != want {
		t.Fatalf("token = %q, want %q", got, want)
	}
	if ft.lastQuery.Get("dc") != "" {
		t.Fatalf("dc sent to a global endpoint: %v", ft.lastQuery)
	}
}

func TestACLUpdateRequiresID(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(t, ft, Config{})
	if _, err := c.ACLUpdate(context.Background(), &api.ACLSpec{Name: "x"}, nil); err == nil {
		t.Fatal("expected an error for a missing ID")
	}
	if ft.lastMethod != "" {
		t.Fatal("request was sent despite the missing ID")
	}
}
