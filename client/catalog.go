package client

import (
	"context"
	"encoding/json"
	"fmt"

	"pkt.systems/consulq/api"
)

// CatalogServiceOptions modifies CatalogService.
type CatalogServiceOptions struct {
	QueryOptions
	// Tag filters the returned instances by service tag.
	Tag string
}

// CatalogNodes lists every node in the datacenter. All catalog reads
// support blocking queries via opts.Index/opts.Wait.
func (c *Client) CatalogNodes(ctx context.Context, opts *QueryOptions) (uint64, []*api.Node, error) {
	q, err := c.queryValues(opts, true)
	if err != nil {
		return 0, nil, err
	}
	env, err := c.get(ctx, "/v1/catalog/nodes", q, opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, nodes, err := decodeIndexedList[*api.Node](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.catalog.nodes.error", "error", err)
	}
	return idx, nodes, err
}

// CatalogServices maps every known service name to its tag set.
func (c *Client) CatalogServices(ctx context.Context, opts *QueryOptions) (uint64, map[string][]string, error) {
	q, err := c.queryValues(opts, true)
	if err != nil {
		return 0, nil, err
	}
	env, err := c.get(ctx, "/v1/catalog/services", q, opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, services, err := decodeIndexedValue[map[string][]string](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.catalog.services.error", "error", err)
	}
	return idx, services, err
}

// CatalogNode returns the node record and service map for one node, or
// (index, nil) when the node is unknown.
func (c *Client) CatalogNode(ctx context.Context, node string, opts *QueryOptions) (uint64, *api.CatalogNode, error) {
	q, err := c.queryValues(opts, true)
	if err != nil {
		return 0, nil, err
	}
	env, err := c.get(ctx, "/v1/catalog/node/"+node, q, opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, rec, err := decodeIndexedValue[*api.CatalogNode](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.catalog.node.error", "node", node, "error", err)
	}
	return idx, rec, err
}

// CatalogService lists the nodes providing service.
func (c *Client) CatalogService(ctx context.Context, service string, opts *CatalogServiceOptions) (uint64, []*api.CatalogService, error) {
	if opts == nil {
		opts = &CatalogServiceOptions{}
	}
	q, err := c.queryValues(&opts.QueryOptions, true)
	if err != nil {
		return 0, nil, err
	}
	if opts.Tag != "" {
		q.Set("tag", opts.Tag)
	}
	env, err := c.get(ctx, "/v1/catalog/service/"+service, q, opts.QueryOptions.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, rows, err := decodeIndexedList[*api.CatalogService](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.catalog.service.error", "service", service, "error", err)
	}
	return idx, rows, err
}

// CatalogDatacenters lists the datacenters known to the server.
func (c *Client) CatalogDatacenters(ctx context.Context) ([]string, error) {
	env, err := c.get(ctx, "/v1/catalog/datacenters", nil, 0)
	if err != nil {
		return nil, err
	}
	return decodeValue[[]string](env, true)
}

// CatalogRegister writes an entry directly into the catalog. Prefer the
// agent registration endpoints where possible; direct catalog writes
// bypass anti-entropy.
func (c *Client) CatalogRegister(ctx context.Context, reg *api.CatalogRegistration, opts *WriteOptions) (bool, error) {
	if reg == nil {
		return false, fmt.Errorf("consulq: nil catalog registration")
	}
	payload := *reg
	if payload.Datacenter == "" {
		payload.Datacenter = c.cfg.Datacenter
	}
	q := c.writeValues(opts)
	if token := q.Get("token"); token != "" && payload.WriteRequest == nil {
		payload.WriteRequest = &api.WriteRequest{Token: token}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("consulq: encode catalog registration: %w", err)
	}
	env, err := c.put(ctx, "/v1/catalog/register", q, body)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.catalog.register.error", "node", reg.Node, "error", err)
	}
	return ok, err
}

// CatalogDeregister removes a node, service, or check directly from the
// catalog.
func (c *Client) CatalogDeregister(ctx context.Context, dereg *api.CatalogDeregistration, opts *WriteOptions) (bool, error) {
	if dereg == nil {
		return false, fmt.Errorf("consulq: nil catalog deregistration")
	}
	if dereg.ServiceID != "" && dereg.CheckID != "" {
		return false, fmt.Errorf("consulq: serviceid and checkid are mutually exclusive")
	}
	payload := *dereg
	if payload.Datacenter == "" {
		payload.Datacenter = c.cfg.Datacenter
	}
	q := c.writeValues(opts)
	if token := q.Get("token"); token != "" && payload.WriteRequest == nil {
		payload.WriteRequest = &api.WriteRequest{Token: token}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("consulq: encode catalog deregistration: %w", err)
	}
	env, err := c.put(ctx, "/v1/catalog/deregister", q, body)
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.catalog.deregister.error", "node", dereg.Node, "error", err)
	}
	return ok, err
}
