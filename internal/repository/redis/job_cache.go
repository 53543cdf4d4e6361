package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Niku17/JobSift/internal/domain/entity"
)

// JobCache keeps the public job view hot under job:<id>. It is a
// read-through cache: a miss returns (nil, nil) and the caller falls
// back to the store.
type JobCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewJobCache(client *redis.Client, ttl time.Duration) *JobCache {
	return &JobCache{Client: client, TTL: ttl}
}

func (c *JobCache) Get(ctx context.Context, jobID string) (*entity.Job, error) {
	raw, err := c.Client.Get(ctx, "job:"+jobID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var job entity.Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *JobCache) Set(ctx context.Context, job *entity.Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, "job:"+job.ID, raw, c.TTL).Err()
}

func (c *JobCache) Invalidate(ctx context.Context, jobID string) error {
	return c.Client.Del(ctx, "job:"+jobID).Err()
}
