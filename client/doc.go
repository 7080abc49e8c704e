// Package client implements an HTTP client for a Consul agent with
// first-class support for blocking queries.
//
// Every read returns the resource's modification index alongside its
// value. Feeding that index back through QueryOptions.Index turns the
// next read into a long poll: the server holds the request until the
// resource changes or the wait bound elapses, and an unchanged resource
// simply answers with the same index again. A watch is therefore a
// plain loop:
//
//	var idx uint64
//	for {
//		next, pair, err := c.KVGet(ctx, "config/app", &client.KVGetOptions{
//			QueryOptions: client.QueryOptions{Index: idx, Wait: 5 * time.Minute},
//		})
//		if err != nil {
//			return err
//		}
//		if next != idx {
//			apply(pair)
//		}
//		idx = next
//	}
//
// Missing resources are not errors on reads: a 404 yields (index, nil)
// so the same loop also watches for creation. Permission and server
// failures do surface as errors; use the Is* predicates in this package
// to classify them.
package client
