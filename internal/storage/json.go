package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON decodes the JSON value stored under key. A value that does not
// decode is reported as an error so callers can treat it as corrupt.
func GetJSON[T any](ctx context.Context, p KV, key string) (T, bool, error) {
	var out T
	raw, ok, err := p.Get(ctx, key)
	if err != nil || !ok {
		return out, ok, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return out, true, nil
}

// SetJSON stores v as JSON under key.
func SetJSON(ctx context.Context, p KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return p.Set(ctx, key, string(data))
}
