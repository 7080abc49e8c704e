package client

import (
	"context"
	"testing"
)

func TestStatusLeader(t *testing.T) {
	ft := &fakeTransport{body: []byte(`"10.0.0.1:8300"`)}
	c := newTestClient(t, ft, Config{})
	leader, err := c.StatusLeader(context.Background())
	if err != nil {
		t.Fatalf("leader: %v", err)
	}
	if got, want := leader, "10.0.0.1:8300"; got != want {
		t.Fatalf("leader = %q, want %q", got, want)
	}
}

func TestStatusLeaderDuringElection(t *testing.T) {
	ft := &fakeTransport{body: []byte(`""`)}
	c := newTestClient(t, ft, Config{})
	leader, err := c.StatusLeader(context.Background())
	if err != nil {
		t.Fatalf("leader: %v", err)
	}
	if leader != "" {
		t.Fatalf("leader = %q, want empty during an election", leader)
	}
}

func TestStatusPeers(t *testing.T) {
	ft := &fakeTransport{body: []byte(`["10.0.0.1:8300","10.0.0.2:8300","10.0.0.3:8300"]`)}
	c := newTestClient(t, ft, Config{})
	peers, err := c.StatusPeers(context.Background())
	if err != nil {
		t.Fatalf("peers: %v", err)
	}
	if len(peers) != 3 {
		t.Fatalf("got %d peers, want 3", len(peers))
	}
}
