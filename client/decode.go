package client

import (
	"encoding/json"
	"fmt"

	"pkt.systems/consulq/api"
)

// Response decoding. Every endpoint composes the same few rules instead
// of re-implementing status checks:
//
//   - checkStatus applies the status-code policy (the allow404 knob).
//   - decodeBool maps 200 to true.
//   - decodeIndexed* pair the body with the modification index header.
//   - the *One variants collapse an array to its first element, with an
//     empty array collapsing to nil rather than an index error.
//   - decodeID keeps only the ID field of the decoded object.
//
// Base64 value fields decode through []byte struct fields; kv and event
// normalize empty payloads to nil afterwards (an empty stored value and
// an absent one are deliberately indistinguishable).
//
// The status precedence is exact: a 5xx outranks every knob, permission
// failures outrank generic client errors, and only then may a 404 be
// softened into an empty result.

// checkStatus maps a non-success envelope onto the error taxonomy. It
// returns empty=true for a 404 the caller allows, in which case body
// decoding must be skipped entirely (404 bodies are not JSON).
func checkStatus(env *Envelope, allow404 bool) (empty bool, err error) {
	s := env.Status
	switch {
	case s >= 500 && s < 600:
		return false, &StatusError{Status: s, Body: string(env.Body)}
	case s == 403:
		return false, &StatusError{Status: s, Body: string(env.Body)}
	case s == 401:
		return false, &StatusError{Status: s, Body: string(env.Body)}
	case s == 400:
		return false, &StatusError{Status: s, Body: string(env.Body)}
	case s == 404:
		if !allow404 {
			return false, &StatusError{Status: s, Body: string(env.Body)}
		}
		return true, nil
	case s >= 400:
		return false, &StatusError{Status: s, Body: string(env.Body)}
	}
	return false, nil
}

// decodeBool maps status 200 to true after the generic status policy.
func decodeBool(env *Envelope) (bool, error) {
	empty, err := checkStatus(env, true)
	if err != nil || empty {
		return false, err
	}
	return env.Status == 200, nil
}

// decodeJSONBool decodes a bare JSON boolean body ("true"/"false").
func decodeJSONBool(env *Envelope) (bool, error) {
	empty, err := checkStatus(env, true)
	if err != nil || empty {
		return false, err
	}
	var v bool
	if err := json.Unmarshal(env.Body, &v); err != nil {
		return false, fmt.Errorf("consulq: decode response: %w", err)
	}
	return v, nil
}

// envelopeIndex extracts the index header value.
func envelopeIndex(env *Envelope) (uint64, error) {
	return api.ParseIndex(env.indexHeader(api.IndexHeader))
}

// decodeIndexedList decodes an array body paired with its index. A
// tolerated 404 yields (index, nil): the caller can block on that index
// to watch for the resource coming into existence.
func decodeIndexedList[T any](env *Envelope) (uint64, []T, error) {
	empty, err := checkStatus(env, true)
	if err != nil {
		return 0, nil, err
	}
	idx, err := envelopeIndex(env)
	if err != nil {
		return 0, nil, err
	}
	if empty {
		return idx, nil, nil
	}
	var out []T
	if err := json.Unmarshal(env.Body, &out); err != nil {
		return 0, nil, fmt.Errorf("consulq: decode response: %w", err)
	}
	return idx, out, nil
}

// decodeIndexedOne collapses an indexed array to its first element; an
// empty array (or tolerated 404) collapses to nil.
func decodeIndexedOne[T any](env *Envelope) (uint64, *T, error) {
	idx, list, err := decodeIndexedList[T](env)
	if err != nil || len(list) == 0 {
		return idx, nil, err
	}
	return idx, &list[0], nil
}

// decodeIndexedValue decodes a non-array body (an object or map) paired
// with its index. A tolerated 404 yields the zero value of T.
func decodeIndexedValue[T any](env *Envelope) (uint64, T, error) {
	var out T
	empty, err := checkStatus(env, true)
	if err != nil {
		return 0, out, err
	}
	idx, err := envelopeIndex(env)
	if err != nil {
		return 0, out, err
	}
	if empty {
		return idx, out, nil
	}
	if err := json.Unmarshal(env.Body, &out); err != nil {
		return 0, out, fmt.Errorf("consulq: decode response: %w", err)
	}
	return idx, out, nil
}

// decodeValue decodes a body without index pairing.
func decodeValue[T any](env *Envelope, allow404 bool) (T, error) {
	var out T
	empty, err := checkStatus(env, allow404)
	if err != nil || empty {
		return out, err
	}
	if err := json.Unmarshal(env.Body, &out); err != nil {
		return out, fmt.Errorf("consulq: decode response: %w", err)
	}
	return out, nil
}

// decodeOne collapses an un-indexed array to its first element.
func decodeOne[T any](env *Envelope, allow404 bool) (*T, error) {
	list, err := decodeValue[[]T](env, allow404)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

// decodeID keeps only the ID field of the decoded object, as returned by
// the token- and session-creation endpoints.
func decodeID(env *Envelope) (string, error) {
	res, err := decodeValue[struct {
		ID string `json:"ID"`
	}](env, true)
	if err != nil {
		return "", err
	}
	return res.ID, nil
}
