package client

import "testing"

func TestEnvConfig(t *testing.T) {
	t.Run("defaults with empty environment", func(t *testing.T) {
		t.Setenv(envHTTPAddr, "")
		t.Setenv(envHTTPToken, "")
		cfg, err := EnvConfig()
		if err != nil {
			t.Fatalf("EnvConfig: %v", err)
		}
		if got, want := cfg.Address, "127.0.0.1:8500"; got != want {
			t.Fatalf("address = %q, want %q", got, want)
		}
		if got, want := cfg.Scheme, "http"; got != want {
			t.Fatalf("scheme = %q, want %q", got, want)
		}
	})

	t.Run("address and token", func(t *testing.T) {
		t.Setenv(envHTTPAddr, "consul.internal:8501")
		t.Setenv(envHTTPToken, "secret")
		cfg, err := EnvConfig()
		if err != nil {
			t.Fatalf("EnvConfig: %v", err)
		}
		if got, want := cfg.Address, "consul.internal:8501"; got != want {
			t.Fatalf("address = %q, want %q", got, want)
		}
		if got, want := cfg.Token, "secret"; got != want {
			t.Fatalf("token = %q, want %q", got, want)
		}
	})

	t.Run("malformed address", func(t *testing.T) {
		t.Setenv(envHTTPAddr, "consul.internal")
		if _, err := EnvConfig(); err == nil {
			t.Fatal("expected an error for an address without a port")
		}
	})

	t.Run("ssl switches the scheme", func(t *testing.T) {
		t.Setenv(envHTTPAddr, "")
		t.Setenv(envHTTPSSL, "true")
		cfg, err := EnvConfig()
		if err != nil {
			t.Fatalf("EnvConfig: %v", err)
		}
		if got, want := cfg.Scheme, "https"; got != want {
			t.Fatalf("scheme = %q, want %q", got, want)
		}
	})

	t.Run("ssl verify off", func(t *testing.T) {
		t.Setenv(envHTTPAddr, "")
		t.Setenv(envSSLVerify, "false")
		cfg, err := EnvConfig()
		if err != nil {
			t.Fatalf("EnvConfig: %v", err)
		}
		if !cfg.TLSSkipVerify {
			t.Fatal("TLSSkipVerify = false, want true")
		}
	})
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{Scheme: "ftp"}); err == nil {
		t.Fatal("expected an error for an unsupported scheme")
	}
	if _, err := New(Config{Consistency: "quorum"}); err == nil {
		t.Fatal("expected an error for an invalid consistency mode")
	}
	c, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg := c.Config()
	if got, want := cfg.Address, "127.0.0.1:8500"; got != want {
		t.Fatalf("address = %q, want %q", got, want)
	}
	if got, want := cfg.Consistency, ConsistencyDefault; got != want {
		t.Fatalf("consistency = %q, want %q", got, want)
	}
}
