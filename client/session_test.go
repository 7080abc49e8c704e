package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"pkt.systems/consulq/api"
)

func TestSessionCreate(t *testing.T) {
	ft := &fakeTransport{body: []byte(`{"ID":"adf4238a-882b-9ddc-4a9d-5b6758e4159e"}`)}
	c := newTestClient(t, ft, Config{})
	ctx := context.Background()

	t.Run("payload shape", func(t *testing.T) {
		id, err := c.SessionCreate(ctx, &api.SessionSpec{
			Name:      "svc-lock",
			TTL:       30,
			LockDelay: 20,
			Behavior:  SessionBehaviorDelete,
		}, nil)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if got, want := id, "adf4238a-882b-9ddc-4a9d-5b6758e4159e"; got != want {
			t.Fatalf("id = %q, want %q", got, want)
		}
		var payload map[string]string
		if err := json.Unmarshal(ft.lastBody, &payload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		if got, want := payload["ttl"], "30s"; got != want {
			t.Fatalf("ttl = %q, want %q", got, want)
		}
		if got, want := payload["lockdelay"], "20s"; got != want {
			t.Fatalf("lockdelay = %q, want %q", got, want)
		}
		if got, want := payload["behavior"], "delete"; got != want {
			t.Fatalf("behavior = %q, want %q", got, want)
		}
		if got, want := payload["name"], "svc-lock"; got != want {
			t.Fatalf("name = %q, want %q", got, want)
		}
	})

	t.Run("ttl below the floor", func(t *testing.T) {
		ft.lastMethod = ""
		if _, err := c.SessionCreate(ctx, &api.SessionSpec{TTL: 5}, nil); err == nil {
			t.Fatal("expected an error for ttl 5")
		}
		if ft.lastMethod != "" {
			t.Fatal("request was sent despite the invalid ttl")
		}
	})

	t.Run("ttl above the ceiling", func(t *testing.T) {
		if _, err := c.SessionCreate(ctx, &api.SessionSpec{TTL: 90000}, nil); err == nil {
			t.Fatal("expected an error for ttl 90000")
		}
	})

	t.Run("invalid behavior", func(t *testing.T) {
		if _, err := c.SessionCreate(ctx, &api.SessionSpec{Behavior: "explode"}, nil); err == nil {
			t.Fatal("expected an error for an unknown behavior")
		}
	})
}

func TestSessionRenewMissingSessionIsAnError(t *testing.T) {
	ft := &fakeTransport{status: 404, body: []byte("session not found")}
	c := newTestClient(t, ft, Config{})
	_, err := c.SessionRenew(context.Background(), "gone", nil)
	if err == nil {
		t.Fatal("expected an error for a vanished session")
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound(%v) = false", err)
	}
}

func TestSessionInfoMissingSessionIsNil(t *testing.T) {
	ft := &fakeTransport{
		status: 404,
		header: http.Header{"X-Consul-Index": []string{"12"}},
		body:   []byte("not found"),
	}
	c := newTestClient(t, ft, Config{})
	idx, entry, err := c.SessionInfo(context.Background(), "gone", nil)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if entry != nil {
		t.Fatalf("entry = %+v, want nil", entry)
	}
	if idx != 12 {
		t.Fatalf("idx = %d, want 12", idx)
	}
}

func TestSessionRenewDecodesEntry(t *testing.T) {
	ft := &fakeTransport{body: []byte(`[{"ID":"s1","Node":"n1","Behavior":"release","TTL":"30s"}]`)}
	c := newTestClient(t, ft, Config{})
	entry, err := c.SessionRenew(context.Background(), "s1", nil)
	if err != nil {
		t.Fatalf("renew: %v", err)
	}
	if entry == nil || entry.ID != "s1" || entry.TTL != "30s" {
		t.Fatalf("entry = %+v", entry)
	}
}
