// Package session holds server-side session state keyed by an opaque id.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrEmptySessionID = errors.New("session id is empty")

// Store is per-session key/value state. Values are opaque bytes; a missing
// session and a missing key both read as (nil, false, nil).
type Store interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, bool, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Unset(ctx context.Context, sessionID, key string) error
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// Handle binds a Store to one session id. It is created per request by the
// caller and passed to the services that read or write session state.
type Handle struct {
	store Store
	id    string
}

func NewHandle(store Store, id string) *Handle {
	return &Handle{store: store, id: id}
}

func (h *Handle) ID() string { return h.id }

// Load decodes the JSON value under key into dst and reports whether it was
// present.
func (h *Handle) Load(ctx context.Context, key string, dst any) (bool, error) {
	if h.id == "" {
		return false, ErrEmptySessionID
	}
	raw, ok, err := h.store.Get(ctx, h.id, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode session value %q: %w", key, err)
	}
	return true, nil
}

func (h *Handle) Save(ctx context.Context, key string, value any) error {
	if h.id == "" {
		return ErrEmptySessionID
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session value %q: %w", key, err)
	}
	return h.store.Set(ctx, h.id, key, raw)
}

func (h *Handle) Delete(ctx context.Context, key string) error {
	if h.id == "" {
		return ErrEmptySessionID
	}
	return h.store.Unset(ctx, h.id, key)
}
