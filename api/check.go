package api

import (
	"fmt"
	"net/http"
	"time"
)

// CheckDefinition describes how an agent executes a health check. Use
// the constructors below rather than filling the struct by hand; each
// check kind tolerates a different field combination and the server
// rejects mixed definitions.
type CheckDefinition struct {
	// Args is the argv of a script check, run every Interval.
	Args []string `json:"args,omitempty"`
	// HTTP is the URL a http check GETs every Interval.
	HTTP string `json:"http,omitempty"`
	// Header carries extra request headers for http checks.
	Header http.Header `json:"header,omitempty"`
	// TCP is the host:port a tcp check connects to every Interval.
	TCP string `json:"tcp,omitempty"`
	// TTL marks the check critical unless refreshed within this bound.
	TTL string `json:"ttl,omitempty"`
	// DockerContainerID targets a docker check at a running container.
	DockerContainerID string `json:"docker_container_id,omitempty"`
	// Shell is the shell a docker check runs Script with.
	Shell string `json:"shell,omitempty"`
	// Script is the command a docker check executes via the Exec API.
	Script string `json:"script,omitempty"`
	// Interval is the execution period for script/http/tcp/docker checks.
	Interval string `json:"interval,omitempty"`
	// Timeout bounds a single http/tcp probe.
	Timeout string `json:"timeout,omitempty"`
	// DeregisterCriticalServiceAfter deregisters the linked service once
	// the check has been critical for this long.
	DeregisterCriticalServiceAfter string `json:"DeregisterCriticalServiceAfter,omitempty"`
}

// ScriptCheck runs argv args every interval.
func ScriptCheck(args []string, interval time.Duration) *CheckDefinition {
	return &CheckDefinition{Args: args, Interval: durationString(interval)}
}

// HTTPCheck GETs url every interval. timeout and deregister are
// optional; header attaches extra request headers.
func HTTPCheck(url string, interval, timeout, deregister time.Duration, header http.Header) *CheckDefinition {
	c := &CheckDefinition{HTTP: url, Interval: durationString(interval)}
	if timeout > 0 {
		c.Timeout = durationString(timeout)
	}
	if deregister > 0 {
		c.DeregisterCriticalServiceAfter = durationString(deregister)
	}
	if len(header) > 0 {
		c.Header = header
	}
	return c
}

// TCPCheck attempts a connection to host:port every interval.
func TCPCheck(host string, port int, interval, timeout, deregister time.Duration) *CheckDefinition {
	c := &CheckDefinition{
		TCP:      fmt.Sprintf("%s:%d", host, port),
		Interval: durationString(interval),
	}
	if timeout > 0 {
		c.Timeout = durationString(timeout)
	}
	if deregister > 0 {
		c.DeregisterCriticalServiceAfter = durationString(deregister)
	}
	return c
}

// TTLCheck marks the check critical unless it is refreshed within ttl.
func TTLCheck(ttl time.Duration) *CheckDefinition {
	return &CheckDefinition{TTL: durationString(ttl)}
}

// DockerCheck runs script inside container containerID on shell every
// interval via the Docker Exec API.
func DockerCheck(containerID, shell, script string, interval, deregister time.Duration) *CheckDefinition {
	c := &CheckDefinition{
		DockerContainerID: containerID,
		Shell:             shell,
		Script:            script,
		Interval:          durationString(interval),
	}
	if deregister > 0 {
		c.DeregisterCriticalServiceAfter = durationString(deregister)
	}
	return c
}

// durationString renders d the way the agent expects ("10s", "1m30s").
func durationString(d time.Duration) string {
	return d.String()
}
