package client

import (
	"fmt"
	"os"
	"strings"
)

// Consistency selects the read-freshness guarantee for queries that
// support it.
type Consistency string

const (
	// ConsistencyDefault is usually strongly consistent but may serve a
	// slightly stale read during a short leader-change window. It never
	// appears on the wire.
	ConsistencyDefault Consistency = "default"
	// ConsistencyConsistent forces leader confirmation before answering.
	ConsistencyConsistent Consistency = "consistent"
	// ConsistencyStale permits any server to answer, leader or not.
	ConsistencyStale Consistency = "stale"
)

func (c Consistency) valid() bool {
	switch c {
	case ConsistencyDefault, ConsistencyConsistent, ConsistencyStale, "":
		return true
	}
	return false
}

// Environment variables honored by EnvConfig.
const (
	envHTTPAddr  = "CONSUL_HTTP_ADDR"
	envHTTPToken = "CONSUL_HTTP_TOKEN"
	envHTTPSSL   = "CONSUL_HTTP_SSL"
	envSSLVerify = "CONSUL_HTTP_SSL_VERIFY"
)

// Config is the immutable per-client default set. It is created once,
// before the client, and never mutated by calls; per-call options merge
// against it without writing back.
type Config struct {
	// Address is the agent address as host:port.
	Address string
	// Scheme is http or https.
	Scheme string
	// Token is the default ACL token applied when a call supplies none.
	Token string
	// Datacenter is the default dc parameter applied when a call
	// supplies none. Empty lets the agent use its own datacenter.
	Datacenter string
	// Consistency is the default consistency mode for reads.
	Consistency Consistency
	// TLSSkipVerify disables certificate verification for https.
	TLSSkipVerify bool
}

// DefaultConfig returns the static defaults: a plaintext local agent
// with default consistency. It does not read the environment.
func DefaultConfig() Config {
	return Config{
		Address:     "127.0.0.1:8500",
		Scheme:      "http",
		Consistency: ConsistencyDefault,
	}
}

// EnvConfig returns DefaultConfig overridden from the conventional
// environment variables. This is the single place environment state is
// read; the client core only ever sees the resulting struct.
func EnvConfig() (Config, error) {
	cfg := DefaultConfig()
	if addr := os.Getenv(envHTTPAddr); addr != "" {
		host, port, ok := strings.Cut(addr, ":")
		if !ok || host == "" || port == "" {
			return Config{}, fmt.Errorf("consulq: %s (%s) invalid, does not match <host>:<port>", envHTTPAddr, addr)
		}
		cfg.Address = addr
	}
	if token := os.Getenv(envHTTPToken); token != "" {
		cfg.Token = token
	}
	if ssl, ok := os.LookupEnv(envHTTPSSL); ok {
		if ssl == "true" {
			cfg.Scheme = "https"
		} else {
			cfg.Scheme = "http"
		}
	}
	if verify, ok := os.LookupEnv(envSSLVerify); ok {
		cfg.TLSSkipVerify = verify != "true"
	}
	return cfg, nil
}
