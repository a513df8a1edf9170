package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"task_manager/internal/logger"
	"task_manager/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL = 5 * time.Minute
	redisPingWait   = 2 * time.Second
)

// NewRedisClient connects to redis and pings it once.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), redisPingWait)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}

// CachedTasks is a read-through cache in front of a TaskRepo. Listings are
// cached per user under a generation number; any write bumps the generation so
// stale lists are never read again and simply expire.
// Redis failures fall through to the wrapped store.
type CachedTasks struct {
	TaskRepo
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

var _ TaskRepo = (*CachedTasks)(nil)

func NewCachedTasks(inner TaskRepo, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CachedTasks {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedTasks{TaskRepo: inner, rdb: rdb, ttl: ttl, log: log}
}

func generationKey(userID string) string {
	return "tasks:gen:" + userID
}

func listKey(userID string, gen int64, f models.TaskFilter) string {
	return fmt.Sprintf("tasks:%s:%d:%s|%s|%s", userID, gen, f.Status, f.Priority, f.SortBy)
}

func (c *CachedTasks) warn(msg string, kv ...interface{}) {
	if c.log != nil {
		c.log.Warnw(msg, kv...)
	}
}

func (c *CachedTasks) generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *CachedTasks) List(ctx context.Context, userID string, f models.TaskFilter) ([]models.Task, error) {
	// time-windowed stats queries change key every call; don't cache them
	if !f.CreatedSince.IsZero() {
		return c.TaskRepo.List(ctx, userID, f)
	}

	gen, err := c.generation(ctx, userID)
	if err != nil {
		c.warn("task_cache_generation_failed", "user_id", userID, "err", err)
		return c.TaskRepo.List(ctx, userID, f)
	}

	key := listKey(userID, gen, f)
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var tasks []models.Task
		if err := json.Unmarshal(raw, &tasks); err == nil {
			return tasks, nil
		}
		c.warn("task_cache_decode_failed", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		c.warn("task_cache_get_failed", "key", key, "err", err)
	}

	tasks, err := c.TaskRepo.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(tasks); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.warn("task_cache_set_failed", "key", key, "err", err)
		}
	}
	return tasks, nil
}

func (c *CachedTasks) invalidate(ctx context.Context, userID string) {
	// generation keys never expire so a counter can't restart under a live list
	if err := c.rdb.Incr(ctx, generationKey(userID)).Err(); err != nil {
		c.warn("task_cache_invalidate_failed", "user_id", userID, "err", err)
	}
}

func (c *CachedTasks) Create(ctx context.Context, t *models.Task) error {
	if err := c.TaskRepo.Create(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx, t.UserID)
	return nil
}

func (c *CachedTasks) Update(ctx context.Context, t models.Task) error {
	if err := c.TaskRepo.Update(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx, t.UserID)
	return nil
}

func (c *CachedTasks) Delete(ctx context.Context, userID, id string) error {
	if err := c.TaskRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}
