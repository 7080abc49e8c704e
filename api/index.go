package api

import (
	"fmt"
	"strconv"
)

// IndexHeader is the response header carrying the modification index of
// the queried resource. Lookups must be case-insensitive.
const IndexHeader = "X-Consul-Index"

// ParseIndex parses the textual index value from a response header. The
// index is opaque and monotonically non-decreasing per resource; clients
// only echo it back, so anything but an unsigned integer is a protocol
// violation.
func ParseIndex(raw string) (uint64, error) {
	if raw == "" {
		return 0, fmt.Errorf("api: missing %s header", IndexHeader)
	}
	idx, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("api: malformed %s header %q: %w", IndexHeader, raw, err)
	}
	return idx, nil
}
