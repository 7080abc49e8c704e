package client

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pkt.systems/consulq/api"
)

func TestAgentServices(t *testing.T) {
	ft := &fakeTransport{body: []byte(`{"api-1":{"ID":"api-1","Service":"api","Tags":["v2"],"Port":8080}}`)}
	c := newTestClient(t, ft, Config{})
	services, err := c.AgentServices(context.Background())
	if err != nil {
		t.Fatalf("services: %v", err)
	}
	svc := services["api-1"]
	if svc == nil || svc.Service != "api" || svc.Port != 8080 {
		t.Fatalf("service = %+v", svc)
	}
}

func TestAgentServiceRegister(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(t, ft, Config{})
	ctx := context.Background()

	t.Run("payload", func(t *testing.T) {
		ok, err := c.AgentServiceRegister(ctx, &api.AgentServiceRegistration{
			Name: "api",
			Port: 8080,
			Tags: []string{"v2"},
			Check: api.TCPCheck("10.0.0.1", 8080, 10*time.Second, 30*time.Second, 0),
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if !ok {
			t.Fatal("register returned false")
		}
		var payload map[string]json.RawMessage
		if err := json.Unmarshal(ft.lastBody, &payload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		if _, has := payload["name"]; !has {
			t.Fatalf("payload lacks name: %s", ft.lastBody)
		}
		if _, has := payload["check"]; !has {
			t.Fatalf("payload lacks check: %s", ft.lastBody)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		ft.lastMethod = ""
		if _, err := c.AgentServiceRegister(ctx, &api.AgentServiceRegistration{}); err == nil {
			t.Fatal("expected an error for a missing name")
		}
		if ft.lastMethod != "" {
			t.Fatal("request was sent despite the missing name")
		}
	})
}

func TestAgentCheckUpdates(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(t, ft, Config{})
	ctx := context.Background()

	cases := []struct {
		call func() (bool, error)
		path string
	}{
		{func() (bool, error) { return c.AgentCheckPass(ctx, "chk", "all good") }, "/v1/agent/check/pass/chk"},
		{func() (bool, error) { return c.AgentCheckWarn(ctx, "chk", "") }, "/v1/agent/check/warn/chk"},
		{func() (bool, error) { return c.AgentCheckFail(ctx, "chk", "") }, "/v1/agent/check/fail/chk"},
	}
	for _, tc := range cases {
		ok, err := tc.call()
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		if !ok {
			t.Fatalf("%s returned false", tc.path)
		}
		if ft.lastPath != tc.path {
			t.Fatalf("path = %q, want %q", ft.lastPath, tc.path)
		}
	}
	if got, want := ft.lastQuery.Get("note"), ""; got != want {
		t.Fatalf("note = %q, want %q", got, want)
	}
}

func TestAgentMembersWAN(t *testing.T) {
	ft := &fakeTransport{body: []byte(`[{"Name":"n1.dc1","Addr":"10.0.0.1","Port":8302,"Status":1}]`)}
	c := newTestClient(t, ft, Config{})
	members, err := c.AgentMembers(context.Background(), true)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 1 || members[0].Name != "n1.dc1" {
		t.Fatalf("members = %+v", members)
	}
	if got, want := ft.lastQuery.Get("wan"), "1"; got != want {
		t.Fatalf("wan = %q, want %q", got, want)
	}
}

func TestAgentMaintenance(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(t, ft, Config{})
	if _, err := c.AgentMaintenance(context.Background(), true, "upgrading"); err != nil {
		t.Fatalf("maintenance: %v", err)
	}
	if got, want := ft.lastQuery.Get("enable"), "true"; got != want {
		t.Fatalf("enable = %q, want %q", got, want)
	}
	if got, want := ft.lastQuery.Get("reason"), "upgrading"; got != want {
		t.Fatalf("reason = %q, want %q", got, want)
	}
}
