package client

import (
	"context"

	"pkt.systems/consulq/api"
)

// EventFireOptions modifies EventFire.
type EventFireOptions struct {
	WriteOptions
	// NodeFilter restricts delivery to nodes matching this regexp.
	NodeFilter string
	// ServiceFilter restricts delivery to agents running a matching service.
	ServiceFilter string
	// TagFilter restricts delivery by service tag; requires ServiceFilter.
	TagFilter string
}

// EventFire propagates a custom event through the gossip layer and
// returns the accepted event record. Delivery is best-effort; keep the
// payload under the gossip budget (about 100 bytes).
func (c *Client) EventFire(ctx context.Context, name string, payload []byte, opts *EventFireOptions) (*api.UserEvent, error) {
	if err := validateKey(name); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &EventFireOptions{}
	}
	q := c.writeValues(&opts.WriteOptions)
	if opts.NodeFilter != "" {
		q.Set("node", opts.NodeFilter)
	}
	if opts.ServiceFilter != "" {
		q.Set("service", opts.ServiceFilter)
	}
	if opts.TagFilter != "" {
		q.Set("tag", opts.TagFilter)
	}
	env, err := c.put(ctx, "/v1/event/fire/"+name, q, payload)
	if err != nil {
		return nil, err
	}
	event, err := decodeValue[*api.UserEvent](env, true)
	if err != nil {
		c.logWarnCtx(ctx, "client.event.fire.error", "name", name, "error", err)
		return nil, err
	}
	normalizePayload(event)
	return event, nil
}

// EventList lists recent events, optionally filtered by name. The
// returned index tracks the newest matching event rather than a
// modification point, so blocking on it wakes on new arrivals only.
func (c *Client) EventList(ctx context.Context, name string, opts *QueryOptions) (uint64, []*api.UserEvent, error) {
	q, err := c.queryValues(opts, true)
	if err != nil {
		return 0, nil, err
	}
	if name != "" {
		q.Set("name", name)
	}
	env, err := c.get(ctx, "/v1/event/list", q, opts.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, events, err := decodeIndexedList[*api.UserEvent](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.event.list.error", "name", name, "error", err)
		return 0, nil, err
	}
	for _, e := range events {
		normalizePayload(e)
	}
	return idx, events, nil
}

// normalizePayload mirrors the kv value rule: empty and absent payloads
// are both nil.
func normalizePayload(e *api.UserEvent) {
	if e != nil && len(e.Payload) == 0 {
		e.Payload = nil
	}
}
