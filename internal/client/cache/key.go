// Package cache is an in-memory query cache keyed by ordered tuples, with
// TTL staleness, request coalescing and prefix invalidation. It backs the
// generated query helpers in internal/client/queries.
package cache

import (
	"encoding/json"
	"fmt"
)

// Key is an ordered tuple identifying one cached query, conventionally
// [domain, operation, ...params], e.g. ["documents", "list", params].
type Key []any

// String renders the key canonically. Elements are JSON-encoded; since
// encoding/json writes map keys in sorted order and struct fields in
// declaration order, structurally equal elements always render identically,
// so equal tuples address the same cache slot regardless of value identity.
func (k Key) String() string {
	data, err := json.Marshal([]any(k))
	if err != nil {
		// Keys are built from strings and small param structs; an
		// unencodable element is a programming error.
		panic(fmt.Sprintf("cache: unencodable key element: %v", err))
	}
	return string(data)
}

// HasPrefix reports whether k starts with the elements of prefix, compared
// by canonical encoding.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, p := range prefix {
		a, err := json.Marshal(p)
		if err != nil {
			return false
		}
		b, err := json.Marshal(k[i])
		if err != nil {
			return false
		}
		if string(a) != string(b) {
			return false
		}
	}
	return true
}
