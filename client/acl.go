package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"pkt.systems/consulq/api"
)

// The ACL endpoints are global to the cluster: they accept a token but
// no datacenter parameter and no consistency mode.
func (c *Client) aclValues(opts *WriteOptions) url.Values {
	if opts == nil {
		opts = &WriteOptions{}
	}
	q := url.Values{}
	if token := firstOf(opts.Token, c.cfg.Token); token != "" {
		q.Set("token", token)
	}
	return q
}

// aclReadValues is the read-side counterpart: blocking parameters plus
// the token, nothing else.
func (c *Client) aclReadValues(opts *QueryOptions) url.Values {
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
	return q
}

// ACLList lists every token. Requires a management token; a client
// token is answered with a permission-denied error.
func (c *Client) ACLList(ctx context.Context, opts *QueryOptions) (uint64, []*api.ACLEntry, error) {
	env, err := c.get(ctx, "/v1/acl/list", c.aclReadValues(opts), opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, entries, err := decodeIndexedList[*api.ACLEntry](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.acl.list.error", "error", err)
	}
	return idx, entries, err
}

// ACLInfo reads one token record, or (index, nil) when it is unknown.
func (c *Client) ACLInfo(ctx context.Context, id string, opts *QueryOptions) (uint64, *api.ACLEntry, error) {
	env, err := c.get(ctx, "/v1/acl/info/"+id, c.aclReadValues(opts), opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, entry, err := decodeIndexedOne[api.ACLEntry](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.acl.info.error", "acl", id, "error", err)
	}
	return idx, entry, err
}

// ACLCreate mints a new token from spec and returns its ID. When
// spec.ID is empty the server assigns one.
func (c *Client) ACLCreate(ctx context.Context, spec *api.ACLSpec, opts *WriteOptions) (string, error) {
	if spec == nil {
		spec = &api.ACLSpec{}
	}
	body, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("consulq: encode acl: %w", err)
	}
	env, err := c.put(ctx, "/v1/acl/create", c.aclValues(opts), body)
	if err != nil {
		return "", err
	}
	id, err := decodeID(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.acl.create.error", "error", err)
	}
	return id, err
}

// ACLUpdate rewrites an existing token in place. spec.ID is required.
func (c *Client) ACLUpdate(ctx context.Context, spec *api.ACLSpec, opts *WriteOptions) (string, error) {
	if spec == nil || spec.ID == "" {
		return "", fmt.Errorf("consulq: acl update requires an ID")
	}
	body, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("consulq: encode acl: %w", err)
	}
	env, err := c.put(ctx, "/v1/acl/update", c.aclValues(opts), body)
	if err != nil {
		return "", err
	}
	id, err := decodeID(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.acl.update.error", "acl", spec.ID, "error", err)
	}
	return id, err
}

// ACLClone copies an existing token under a fresh ID.
func (c *Client) ACLClone(ctx context.Context, id string, opts *WriteOptions) (string, error) {
	env, err := c.put(ctx, "/v1/acl/clone/"+id, c.aclValues(opts), nil)
	if err != nil {
		return "", err
	}
	clone, err := decodeID(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.acl.clone.error", "acl", id, "error", err)
	}
	return clone, err
}

// ACLDestroy revokes a token.
func (c *Client) ACLDestroy(ctx context.Context, id string, opts *WriteOptions) (bool, error) {
	env, err := c.put(ctx, "/v1/acl/destroy/"+id, c.aclValues(opts), nil)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.acl.destroy.error", "acl", id, "error", err)
	}
	return ok, err
}
