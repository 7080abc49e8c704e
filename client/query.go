package client

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// QueryOptions modifies a single read. The zero value is a plain read
// using the client's configured defaults. Options never write back into
// the client; merging happens per call.
type QueryOptions struct {
	// Index enables a blocking query: the server holds the request until
	// its internal index for the resource moves past this value or the
	// wait bound elapses. Zero requests the current state immediately.
	Index uint64
	// Wait bounds how long a blocking query may be held. It is only sent
	// together with a non-zero Index; a wait with no index is meaningless
	// and is suppressed. The server default is 5 minutes.
	Wait time.Duration
	// Consistency overrides the client's default mode for this read.
	Consistency Consistency
	// Datacenter overrides the client's default datacenter.
	Datacenter string
	// Token overrides the client's default ACL token.
	Token string
	// Near sorts results by estimated round-trip time from this node.
	Near string
	// NodeMeta filters results to nodes carrying all given metadata
	// entries. Emission order is unspecified.
	NodeMeta map[string]string
}

// WriteOptions modifies a single write.
type WriteOptions struct {
	// Datacenter overrides the client's default datacenter.
	Datacenter string
	// Token overrides the client's default ACL token.
	Token string
}

// queryValues assembles the wire parameters for a read, merging opts
// against the client defaults. withConsistency is false for endpoint
// groups that do not support consistency modes (health).
func (c *Client) queryValues(opts *QueryOptions, withConsistency bool) (url.Values, error) {
	if opts == nil {
		opts = &QueryOptions{}
	}
	q := url.Values{}
	if opts.Index != 0 {
		q.Set("index", strconv.FormatUint(opts.Index, 10))
		if opts.Wait > 0 {
			q.Set("wait", waitString(opts.Wait))
		}
	}
	if token := firstOf(opts.Token, c.cfg.Token); token != "" {
		q.Set("token", token)
	}
	if dc := firstOf(opts.Datacenter, c.cfg.Datacenter); dc != "" {
		q.Set("dc", dc)
	}
	if withConsistency {
		mode := opts.Consistency
		if mode == "" {
			mode = c.cfg.Consistency
		}
		if !mode.valid() {
			return nil, fmt.Errorf("consulq: consistency must be default, consistent or stale, got %q", mode)
		}
		// The default mode never appears on the wire.
		if mode == ConsistencyConsistent || mode == ConsistencyStale {
			q.Set(string(mode), "1")
		}
	}
	if opts.Near != "" {
		q.Set("near", opts.Near)
	}
	for k, v := range opts.NodeMeta {
		q.Add("node-meta", k+":"+v)
	}
	return q, nil
}

// writeValues assembles the wire parameters for a write.
func (c *Client) writeValues(opts *WriteOptions) url.Values {
	if opts == nil {
		opts = &WriteOptions{}
	}
	q := url.Values{}
	if token := firstOf(opts.Token, c.cfg.Token); token != "" {
		q.Set("token", token)
	}
	if dc := firstOf(opts.Datacenter, c.cfg.Datacenter); dc != "" {
		q.Set("dc", dc)
	}
	return q
}

// defaultServerWait is how long the server holds a blocking query when
// the request names no wait bound of its own.
const defaultServerWait = 5 * time.Minute

// wait returns the long-poll hold bound actually in effect, for sizing
// the request deadline. An index with no explicit wait still blocks
// server-side for the default window, so the deadline must cover it.
func (o *QueryOptions) wait() time.Duration {
	if o == nil || o.Index == 0 {
		return 0
	}
	if o.Wait == 0 {
		return defaultServerWait
	}
	return o.Wait
}

// waitString renders a duration the way the agent expects ("10s").
func waitString(d time.Duration) string {
	return d.String()
}

// validateKey rejects keys with a leading slash before any network
// call; the path join would otherwise silently collapse them.
func validateKey(key string) error {
	if strings.HasPrefix(key, "/") {
		return fmt.Errorf("consulq: keys should not start with a forward slash: %q", key)
	}
	return nil
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
