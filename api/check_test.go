package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestCheckConstructors(t *testing.T) {
	t.Run("script", func(t *testing.T) {
		c := ScriptCheck([]string{"/bin/check", "--fast"}, 30*time.Second)
		if len(c.Args) != 2 || c.Args[0] != "/bin/check" {
			t.Fatalf("args = %v", c.Args)
		}
		if got, want := c.Interval, "30s"; got != want {
			t.Fatalf("interval = %q, want %q", got, want)
		}
	})

	t.Run("http", func(t *testing.T) {
		header := http.Header{"Authorization": []string{"Bearer t"}}
		c := HTTPCheck("https://localhost:9000/healthz", 10*time.Second, 2*time.Second, time.Minute, header)
		if got, want := c.HTTP, "https://localhost:9000/healthz"; got != want {
			t.Fatalf("http = %q, want %q", got, want)
		}
		if got, want := c.Timeout, "2s"; got != want {
			t.Fatalf("timeout = %q, want %q", got, want)
		}
		if got, want := c.DeregisterCriticalServiceAfter, "1m0s"; got != want {
			t.Fatalf("deregister = %q, want %q", got, want)
		}
		if c.Header.Get("Authorization") == "" {
			t.Fatal("header lost")
		}
	})

	t.Run("tcp", func(t *testing.T) {
		c := TCPCheck("db.internal", 5432, 15*time.Second, 0, 0)
		if got, want := c.TCP, "db.internal:5432"; got != want {
			t.Fatalf("tcp = %q, want %q", got, want)
		}
		if c.Timeout != "" || c.DeregisterCriticalServiceAfter != "" {
			t.Fatalf("optional fields set: %+v", c)
		}
	})

	t.Run("ttl", func(t *testing.T) {
		c := TTLCheck(90 * time.Second)
		if got, want := c.TTL, "1m30s"; got != want {
			t.Fatalf("ttl = %q, want %q", got, want)
		}
	})

	t.Run("docker", func(t *testing.T) {
		c := DockerCheck("abc123", "/bin/sh", "/opt/check.sh", 20*time.Second, 0)
		if c.DockerContainerID != "abc123" || c.Shell != "/bin/sh" || c.Script != "/opt/check.sh" {
			t.Fatalf("docker fields = %+v", c)
		}
	})

	t.Run("omits empty fields on the wire", func(t *testing.T) {
		data, err := json.Marshal(TTLCheck(30 * time.Second))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if got, want := string(data), `{"ttl":"30s"}`; got != want {
			t.Fatalf("json = %s, want %s", got, want)
		}
	})
}
