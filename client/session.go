package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"pkt.systems/consulq/api"
)

// Session invalidation behaviors.
const (
	SessionBehaviorRelease = "release"
	SessionBehaviorDelete  = "delete"
)

// TTL bounds enforced by the server, in seconds.
const (
	SessionTTLMin = 10
	SessionTTLMax = 86400
)

// sessionCreateRequest is the wire shape of a session create. LockDelay
// and TTL travel as duration strings ("15s") even though api.SessionSpec
// carries them as plain seconds.
type sessionCreateRequest struct {
	Name      string   `json:"name,omitempty"`
	Node      string   `json:"node,omitempty"`
	Checks    []string `json:"checks,omitempty"`
	LockDelay string   `json:"lockdelay,omitempty"`
	Behavior  string   `json:"behavior,omitempty"`
	TTL       string   `json:"ttl,omitempty"`
}

// SessionCreate registers a new session and returns its ID. Violated
// preconditions (TTL range, behavior) fail before any network call.
func (c *Client) SessionCreate(ctx context.Context, spec *api.SessionSpec, opts *WriteOptions) (string, error) {
	if spec == nil {
		spec = &api.SessionSpec{}
	}
	switch spec.Behavior {
	case "", SessionBehaviorRelease, SessionBehaviorDelete:
	default:
		return "", fmt.Errorf("consulq: session behavior must be release or delete, got %q", spec.Behavior)
	}
	if spec.TTL != 0 && (spec.TTL < SessionTTLMin || spec.TTL > SessionTTLMax) {
		return "", fmt.Errorf("consulq: session ttl must be between %d and %d seconds, got %d", SessionTTLMin, SessionTTLMax, spec.TTL)
	}
	req := sessionCreateRequest{
		Name:     spec.Name,
		Node:     spec.Node,
		Checks:   spec.Checks,
		Behavior: spec.Behavior,
	}
	if spec.LockDelay > 0 {
		req.LockDelay = strconv.Itoa(spec.LockDelay) + "s"
	}
	if spec.TTL > 0 {
		req.TTL = strconv.Itoa(spec.TTL) + "s"
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("consulq: encode session: %w", err)
	}
	env, err := c.put(ctx, "/v1/session/create", c.writeValues(opts), body)
	if err != nil {
		return "", err
	}
	id, err := decodeID(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.session.create.error", "error", err)
		return "", err
	}
	c.logTraceCtx(ctx, "client.session.create.done", "session", id)
	return id, nil
}

// SessionDestroy removes a session, releasing or deleting its locks
// according to the session's behavior. Destroying an unknown session
// still reports true.
func (c *Client) SessionDestroy(ctx context.Context, id string, opts *WriteOptions) (bool, error) {
	env, err := c.put(ctx, "/v1/session/destroy/"+id, c.writeValues(opts), nil)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.session.destroy.error", "session", id, "error", err)
	}
	return ok, err
}

// SessionRenew resets the TTL clock of a session. Unlike the read
// endpoints, renewing a session that does not exist is an error (the
// caller's session is gone and its locks with it), surfaced as a
// not-found StatusError rather than a nil record.
func (c *Client) SessionRenew(ctx context.Context, id string, opts *WriteOptions) (*api.SessionEntry, error) {
	env, err := c.put(ctx, "/v1/session/renew/"+id, c.writeValues(opts), nil)
	if err != nil {
		return nil, err
	}
	entry, err := decodeOne[api.SessionEntry](env, false)
	if err != nil {
		c.logWarnCtx(ctx, "client.session.renew.error", "session", id, "error", err)
	}
	return entry, err
}

// SessionInfo reads a single session record, or (index, nil) when the
// session does not exist. Supports blocking queries.
func (c *Client) SessionInfo(ctx context.Context, id string, opts *QueryOptions) (uint64, *api.SessionEntry, error) {
	q, err := c.queryValues(opts, true)
	if err != nil {
		return 0, nil, err
	}
	env, err := c.get(ctx, "/v1/session/info/"+id, q, opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, entry, err := decodeIndexedOne[api.SessionEntry](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.session.info.error", "session", id, "error", err)
	}
	return idx, entry, err
}

// SessionList lists every active session in the datacenter.
func (c *Client) SessionList(ctx context.Context, opts *QueryOptions) (uint64, []*api.SessionEntry, error) {
	q, err := c.queryValues(opts, true)
	if err != nil {
		return 0, nil, err
	}
	env, err := c.get(ctx, "/v1/session/list", q, opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, entries, err := decodeIndexedList[*api.SessionEntry](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.session.list.error", "error", err)
	}
	return idx, entries, err
}

// SessionNode lists the active sessions created on one node.
func (c *Client) SessionNode(ctx context.Context, node string, opts *QueryOptions) (uint64, []*api.SessionEntry, error) {
	q, err := c.queryValues(opts, true)
	if err != nil {
		return 0, nil, err
	}
	env, err := c.get(ctx, "/v1/session/node/"+node, q, opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, entries, err := decodeIndexedList[*api.SessionEntry](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.session.node.error", "node", node, "error", err)
	}
	return idx, entries, err
}
