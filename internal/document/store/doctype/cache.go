package doctype

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"veridoc/internal/document/models"
	platformredis "veridoc/internal/platform/redis"
)

const (
	cacheKey = "veridoc:doctypes"
	cacheTTL = 5 * time.Minute
)

// Store is the document type persistence contract the cache decorates.
type Store interface {
	Create(ctx context.Context, dt *models.DocumentType) error
	List(ctx context.Context) ([]*models.DocumentType, error)
	ExistsByLabel(ctx context.Context, label string) (bool, error)
}

// Cached is a read-through Redis decorator for a document type Store.
// A nil client makes every method a passthrough.
type Cached struct {
	inner  Store
	client *platformredis.Client
	logger *slog.Logger
}

func NewCached(inner Store, client *platformredis.Client, logger *slog.Logger) *Cached {
	return &Cached{inner: inner, client: client, logger: logger}
}

func (c *Cached) Create(ctx context.Context, dt *models.DocumentType) error {
	if err := c.inner.Create(ctx, dt); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *Cached) List(ctx context.Context) ([]*models.DocumentType, error) {
	if c.client == nil {
		return c.inner.List(ctx)
	}

	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var cached []*models.DocumentType
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		c.invalidate(ctx)
	}

	types, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(types); err == nil {
		if err := c.client.Set(ctx, cacheKey, encoded, cacheTTL).Err(); err != nil {
			c.logWarn(ctx, "failed to cache document types", err)
		}
	}
	return types, nil
}

func (c *Cached) ExistsByLabel(ctx context.Context, label string) (bool, error) {
	return c.inner.ExistsByLabel(ctx, label)
}

func (c *Cached) invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		c.logWarn(ctx, "failed to invalidate document type cache", err)
	}
}

func (c *Cached) logWarn(ctx context.Context, msg string, err error) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, "error", err)
	}
}
