package client

import (
	"context"
	"strconv"

	"pkt.systems/consulq/api"
)

// KVGetOptions modifies KVGet.
type KVGetOptions struct {
	QueryOptions
}

// KVListOptions modifies KVList.
type KVListOptions struct {
	QueryOptions
}

// KVKeysOptions modifies KVKeys.
type KVKeysOptions struct {
	QueryOptions
	// Separator truncates the listed keys after the first occurrence of
	// this string past the prefix, yielding directory-style listings.
	Separator string
}

// KVPutOptions modifies KVPut.
type KVPutOptions struct {
	WriteOptions
	// Flags is an opaque unsigned value stored with the entry.
	Flags uint64
	// CAS turns the put into a check-and-set: with *CAS == 0 the write
	// only succeeds when the key does not yet exist; otherwise it must
	// match the entry's current ModifyIndex. A lost race returns false
	// from KVPut, not an error.
	CAS *uint64
	// Acquire attempts a lock acquisition with this session.
	Acquire string
	// Release attempts a lock release with this session.
	Release string
}

// KVDeleteOptions modifies KVDelete.
type KVDeleteOptions struct {
	WriteOptions
	// Recurse deletes every key sharing the prefix.
	Recurse bool
	// CAS makes the delete conditional on the entry's ModifyIndex.
	// Unlike put, the index must be non-zero for the server to act.
	CAS *uint64
}

// KVGet reads a single entry. A missing key yields (index, nil) rather
// than an error, so the caller can block on that same index to watch
// for the key being created. Set opts.Index (and optionally opts.Wait)
// to turn the read into a blocking query; an unchanged resource answers
// with the same index and value after the wait elapses, which is not an
// error.
func (c *Client) KVGet(ctx context.Context, key string, opts *KVGetOptions) (uint64, *api.KVPair, error) {
	if err := validateKey(key); err != nil {
		return 0, nil, err
	}
	if opts == nil {
		opts = &KVGetOptions{}
	}
	q, err := c.queryValues(&opts.QueryOptions, true)
	if err != nil {
		return 0, nil, err
	}
	env, err := c.get(ctx, "/v1/kv/"+key, q, opts.QueryOptions.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, pair, err := decodeIndexedOne[api.KVPair](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.kv.get.error", "key", key, "error", err)
		return 0, nil, err
	}
	normalizeValue(pair)
	return idx, pair, nil
}

// KVList reads every entry under prefix, ordered by key.
func (c *Client) KVList(ctx context.Context, prefix string, opts *KVListOptions) (uint64, []*api.KVPair, error) {
	if err := validateKey(prefix); err != nil {
		return 0, nil, err
	}
	if opts == nil {
		opts = &KVListOptions{}
	}
	q, err := c.queryValues(&opts.QueryOptions, true)
	if err != nil {
		return 0, nil, err
	}
	q.Set("recurse", "1")
	env, err := c.get(ctx, "/v1/kv/"+prefix, q, opts.QueryOptions.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, pairs, err := decodeIndexedList[*api.KVPair](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.kv.list.error", "prefix", prefix, "error", err)
		return 0, nil, err
	}
	for _, p := range pairs {
		normalizeValue(p)
	}
	return idx, pairs, nil
}

// KVKeys lists key names under prefix without values or metadata.
func (c *Client) KVKeys(ctx context.Context, prefix string, opts *KVKeysOptions) (uint64, []string, error) {
	if err := validateKey(prefix); err != nil {
		return 0, nil, err
	}
	if opts == nil {
		opts = &KVKeysOptions{}
	}
	q, err := c.queryValues(&opts.QueryOptions, true)
	if err != nil {
		return 0, nil, err
	}
	q.Set("keys", "true")
	if opts.Separator != "" {
		q.Set("separator", opts.Separator)
	}
	env, err := c.get(ctx, "/v1/kv/"+prefix, q, opts.QueryOptions.wait())
	if err != nil {
		return 0, nil, err
	}
	idx, keys, err := decodeIndexedList[string](env)
	if err != nil {
		c.logWarnCtx(ctx, "client.kv.keys.error", "prefix", prefix, "error", err)
		return 0, nil, err
	}
	return idx, keys, nil
}

// KVPut writes value under key. The request body is the raw value
// bytes; the server stores arbitrary binary data, including embedded
// NULs. The boolean result reports whether the write took place: a
// check-and-set mismatch returns false without an error, while
// permission and server failures surface as errors.
func (c *Client) KVPut(ctx context.Context, key string, value []byte, opts *KVPutOptions) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	if opts == nil {
		opts = &KVPutOptions{}
	}
	q := c.writeValues(&opts.WriteOptions)
	if opts.CAS != nil {
		q.Set("cas", strconv.FormatUint(*opts.CAS, 10))
	}
	if opts.Flags != 0 {
		q.Set("flags", strconv.FormatUint(opts.Flags, 10))
	}
	if opts.Acquire != "" {
		q.Set("acquire", opts.Acquire)
	}
	if opts.Release != "" {
		q.Set("release", opts.Release)
	}
	env, err := c.put(ctx, "/v1/kv/"+key, q, value)
	if err != nil {
		return false, err
	}
	ok, err := decodeJSONBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.kv.put.error", "key", key, "error", err)
	}
	return ok, err
}

// KVDelete removes key, or every key under it when opts.Recurse is set.
func (c *Client) KVDelete(ctx context.Context, key string, opts *KVDeleteOptions) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	if opts == nil {
		opts = &KVDeleteOptions{}
	}
	q := c.writeValues(&opts.WriteOptions)
	if opts.Recurse {
		q.Set("recurse", "1")
	}
	if opts.CAS != nil {
		q.Set("cas", strconv.FormatUint(*opts.CAS, 10))
	}
	env, err := c.delete(ctx, "/v1/kv/"+key, q)
	if err != nil {
		return false, err
	}
	ok, err := decodeJSONBool(env)
	if err != nil {
		c.logWarnCtx(ctx, "client.kv.delete.error", "key", key, "error", err)
	}
	return ok, err
}

// normalizeValue erases the empty/absent value distinction: both come
// back as nil. The wire cannot round-trip the difference reliably, so
// the client does not pretend it can.
func normalizeValue(p *api.KVPair) {
	if p != nil && len(p.Value) == 0 {
		p.Value = nil
	}
}
