package client

import (
	"context"
	"fmt"

	"pkt.systems/consulq/api"
)

// HealthServiceOptions modifies HealthService.
type HealthServiceOptions struct {
	QueryOptions
	// Tag filters the returned instances by service tag.
	Tag string
	// Passing keeps only instances whose checks all pass.
	Passing bool
}

// Health check states accepted by HealthState. "any" is a wildcard.
const (
	HealthAny      = "any"
	HealthUnknown  = "unknown"
	HealthPassing  = "passing"
	HealthWarning  = "warning"
	HealthCritical = "critical"
)

// The health endpoints do not support consistency modes; queryValues is
// called with withConsistency=false throughout so a configured client
// default never leaks onto the wire here.

// HealthService lists the nodes providing service together with the
// checks affecting each instance. Supports blocking queries.
func (c *Client) HealthService(ctx context.Context, service string, opts *HealthServiceOptions) (uint64, []*api.ServiceEntry, error) {
	if opts == nil {
		opts = &HealthServiceOptions{}
	}
	q, err := c.queryValues(&opts.QueryOptions, false)
	if err != nil {
		return 0, nil, err
	}
	if opts.Passing {
		q.Set("passing", "1")
	}
	if opts.Tag != "" {
		q.Set("tag", opts.Tag)
	}
	env, err := c.get(ctx, "/v1/health/service/"+service, q, opts.QueryOptions.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, entries, err := decodeIndexedList[*api.ServiceEntry](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.health.service.error", "service", service, "error", err)
	}
	return idx, entries, err
}

// HealthChecks lists the checks associated with service.
func (c *Client) HealthChecks(ctx context.Context, service string, opts *QueryOptions) (uint64, []*api.HealthCheck, error) {
	q, err := c.queryValues(opts, false)
	if err != nil {
		return 0, nil, err
	}
	env, err := c.get(ctx, "/v1/health/checks/"+service, q, opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, checks, err := decodeIndexedList[*api.HealthCheck](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.health.checks.error", "service", service, "error", err)
	}
	return idx, checks, err
}

// HealthState lists every check in the given state. state must be one
// of the Health* constants; the check happens before any network call.
func (c *Client) HealthState(ctx context.Context, state string, opts *QueryOptions) (uint64, []*api.HealthCheck, error) {
	switch state {
	case HealthAny, HealthUnknown, HealthPassing, HealthWarning, HealthCritical:
	default:
		return 0, nil, fmt.Errorf("consulq: unsupported health state %q", state)
	}
	q, err := c.queryValues(opts, false)
	if err != nil {
		return 0, nil, err
	}
	env, err := c.get(ctx, "/v1/health/state/"+state, q, opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, checks, err := decodeIndexedList[*api.HealthCheck](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.health.state.error", "state", state, "error", err)
	}
	return idx, checks, err
}

// HealthNode lists the checks registered on one node.
func (c *Client) HealthNode(ctx context.Context, node string, opts *QueryOptions) (uint64, []*api.HealthCheck, error) {
	q, err := c.queryValues(opts, false)
	if err != nil {
		return 0, nil, err
	}
	env, err := c.get(ctx, "/v1/health/node/"+node, q, opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, checks, err := decodeIndexedList[*api.HealthCheck](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.health.node.error", "node", node, "error", err)
	}
	return idx, checks, err
}
