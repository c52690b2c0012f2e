// internal/counter/counter.go
package counter

import (
	"context"
	"creator-yield/internal/yield"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

const (
	keyPrefix    = "active_investors:"
	baselineBase = 120
	baselineSpan = 880
)

var ErrEmptyCreator = errors.New("creator id is empty")

// KV is the storage a Counter persists into. ok is false for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (value int64, ok bool, err error)
	Set(ctx context.Context, key string, value int64) error
}

// Counter tracks the "active investors" figure shown per creator.
type Counter struct {
	store KV
	mu    sync.Mutex
}

func New(store KV) *Counter {
	return &Counter{store: store}
}

// Baseline is the starting value for a creator that has no stored count yet.
func Baseline(creatorID string) int64 {
	return baselineBase + yield.Seed(creatorID)%baselineSpan
}

// Count returns the stored value, persisting the baseline on first read.
func (c *Counter) Count(ctx context.Context, creatorID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx, creatorID)
}

// Increment adds one investor and returns the new value.
func (c *Counter) Increment(ctx context.Context, creatorID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.load(ctx, creatorID)
	if err != nil {
		return 0, err
	}
	next := current + 1
	if err := c.store.Set(ctx, key(creatorID), next); err != nil {
		return 0, fmt.Errorf("store counter %q: %w", creatorID, err)
	}
	slog.Debug("active investors incremented", "creator_id", creatorID, "value", next)
	return next, nil
}

func (c *Counter) load(ctx context.Context, creatorID string) (int64, error) {
	if strings.TrimSpace(creatorID) == "" {
		return 0, ErrEmptyCreator
	}
	v, ok, err := c.store.Get(ctx, key(creatorID))
	if err != nil {
		return 0, fmt.Errorf("read counter %q: %w", creatorID, err)
	}
	if ok {
		return v, nil
	}

	v = Baseline(creatorID)
	if err := c.store.Set(ctx, key(creatorID), v); err != nil {
		return 0, fmt.Errorf("seed counter %q: %w", creatorID, err)
	}
	return v, nil
}

func key(creatorID string) string {
	return keyPrefix + creatorID
}
