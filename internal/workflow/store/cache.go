package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	platformredis "veridoc/internal/platform/redis"
	"veridoc/internal/workflow/models"
)

const (
	cacheKey = "veridoc:workflows"
	cacheTTL = 5 * time.Minute
)

// Store is the workflow persistence contract the cache decorates.
type Store interface {
	Create(ctx context.Context, wf *models.Workflow) error
	List(ctx context.Context) ([]*models.Workflow, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// Cached is a read-through Redis decorator for a workflow Store. List hits
// Redis first and falls back to the inner store on miss or Redis failure;
// Create writes through and invalidates. A nil client makes every method a
// passthrough.
type Cached struct {
	inner  Store
	client *platformredis.Client
	logger *slog.Logger
}

func NewCached(inner Store, client *platformredis.Client, logger *slog.Logger) *Cached {
	return &Cached{inner: inner, client: client, logger: logger}
}

func (c *Cached) Create(ctx context.Context, wf *models.Workflow) error {
	if err := c.inner.Create(ctx, wf); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *Cached) List(ctx context.Context) ([]*models.Workflow, error) {
	if c.client == nil {
		return c.inner.List(ctx)
	}

	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var cached []*models.Workflow
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		// Unreadable cache entry; drop it and reload.
		c.invalidate(ctx)
	}

	workflows, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(workflows); err == nil {
		if err := c.client.Set(ctx, cacheKey, encoded, cacheTTL).Err(); err != nil {
			c.logWarn(ctx, "failed to cache workflows", err)
		}
	}
	return workflows, nil
}

func (c *Cached) ExistsByName(ctx context.Context, name string) (bool, error) {
	return c.inner.ExistsByName(ctx, name)
}

func (c *Cached) invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		c.logWarn(ctx, "failed to invalidate workflow cache", err)
	}
}

func (c *Cached) logWarn(ctx context.Context, msg string, err error) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, "error", err)
	}
}
