package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tanishamittal108/PulseAI/db"
)

type SummaryRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSummaryRepository(rdb redis.Cmdable, ttl time.Duration) *SummaryRepository {
	return &SummaryRepository{rdb: rdb, ttl: ttl}
}

func (r *SummaryRepository) Get(ctx context.Context, key string) (string, bool, error) {
	summary, err := r.rdb.Get(ctx, db.SummaryKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, err
	}

	return summary, true, nil
}

func (r *SummaryRepository) Save(ctx context.Context, key string, summary string) error {
	return r.rdb.Set(ctx, db.SummaryKeyPrefix+key, summary, r.ttl).Err()
}
