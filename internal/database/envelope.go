package database

import (
	"context"
	"encoding/json"
	"fmt"
)

// SchemaVersion is the version written into every JSON envelope.
const SchemaVersion = 1

// envelope wraps a stored JSON value with its schema version.
type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// SetJSON encodes v and stores it under key inside a versioned envelope.
//
// encoding/json writes map keys in sorted order, so storing equal values
// twice produces byte-identical rows.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	wrapped, err := encodeJSON(key, v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, wrapped)
}

// encodeJSON returns v wrapped in the versioned envelope.
func encodeJSON(key string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %q: %w", key, err)
	}
	wrapped, err := json.Marshal(envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		return "", fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return string(wrapped), nil
}

// GetJSON loads the value stored under key into v.
//
// It accepts both the versioned envelope and a bare value written before
// versioning existed. found is false when the key is missing; v is left
// untouched in that case. A value that cannot be decoded yields an error
// wrapping ErrCorrupt.
func GetJSON(ctx context.Context, s Store, key string, v any) (found bool, err error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	payload, version, err := unwrap([]byte(raw))
	if err != nil {
		return true, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}
	if version > SchemaVersion {
		return true, fmt.Errorf("%w: key %q has version %d, expected at most %d",
			ErrUnsupportedVersion, key, version, SchemaVersion)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return true, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// unwrap returns the payload and version of a stored value.
// A legacy bare value is reported as version 0.
//
// A value is treated as an envelope only when it is an object with exactly
// the keys "version" and "data" and a positive integer version. A legacy
// notes map would need two sections literally named "version" and "data",
// with a numeric text, to be misread.
func unwrap(raw []byte) (json.RawMessage, int, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		// Not an object: validate it is JSON at all and treat it as legacy.
		if !json.Valid(raw) {
			return nil, 0, err
		}
		return raw, 0, nil
	}
	if len(probe) != 2 {
		return raw, 0, nil
	}
	versionRaw, hasVersion := probe["version"]
	data, hasData := probe["data"]
	if !hasVersion || !hasData {
		return raw, 0, nil
	}
	var version int
	if err := json.Unmarshal(versionRaw, &version); err != nil || version < 1 {
		return raw, 0, nil
	}
	return data, version, nil
}
