package client

import (
	"context"
	"testing"
)

func TestEventFire(t *testing.T) {
	ft := &fakeTransport{body: []byte(`{"ID":"e1","Name":"deploy","Payload":"cm9sbA=="}`)}
	c := newTestClient(t, ft, Config{})
	event, err := c.EventFire(context.Background(), "deploy", []byte("roll"), &EventFireOptions{
		NodeFilter:    "web-.*",
		ServiceFilter: "api",
		TagFilter:     "v2",
	})
	if err != nil {
		t.Fatalf("fire: %v", err)
	}
	if got, want := event.ID, "e1"; got != want {
		t.Fatalf("id = %q, want %q", got, want)
	}
	if got, want := string(event.Payload), "roll"; got != want {
		t.Fatalf("payload = %q, want %q", got, want)
	}
	if got, want := ft.lastPath, "/v1/event/fire/deploy"; got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
	if got, want := string(ft.lastBody), "roll"; got != want {
		t.Fatalf("body = %q, want %q", got, want)
	}
	for param, want := range map[string]string{"node": "web-.*", "service": "api", "tag": "v2"} {
		if got := ft.lastQuery.Get(param); got != want {
			t.Fatalf("%s = %q, want %q", param, got, want)
		}
	}
}

func TestEventFireLeadingSlash(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(t, ft, Config{})
	if _, err := c.EventFire(context.Background(), "/deploy", nil, nil); err == nil {
		t.Fatal("expected an error for a leading slash")
	}
	if ft.lastMethod != "" {
		t.Fatal("request was sent despite the invalid name")
	}
}

func TestEventList(t *testing.T) {
	ft := &fakeTransport{body: []byte(`[{"ID":"e1","Name":"deploy","Payload":""},{"ID":"e2","Name":"deploy","Payload":"aGk="}]`)}
	c := newTestClient(t, ft, Config{})
	idx, events, err := c.EventList(context.Background(), "deploy", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if idx != 1 {
		t.Fatalf("idx = %d, want 1", idx)
	}
	if got, want := ft.lastQuery.Get("name"), "deploy"; got != want {
		t.Fatalf("name = %q, want %q", got, want)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Payload != nil {
		t.Fatalf("empty payload = %v, want nil", events[0].Payload)
	}
	if got, want := string(events[1].Payload), "hi"; got != want {
		t.Fatalf("payload = %q, want %q", got, want)
	}
}
