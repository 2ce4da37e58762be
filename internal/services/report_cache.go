package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/loanledger/internal/ledger"
)

// FraudReport is the outcome of auditing every stored loan.
type FraudReport struct {
	GeneratedAt    time.Time            `json:"generated_at"`
	RecordsChecked int                  `json:"records_checked"`
	Authentic      bool                 `json:"authentic"`
	ChainValid     bool                 `json:"chain_valid"`
	Discrepancies  []ledger.Discrepancy `json:"discrepancies"`
	Cached         bool                 `json:"cached"`
}

// ReportCache keeps the latest fraud report between audits.
type ReportCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context) (*FraudReport, error)
	Set(ctx context.Context, report *FraudReport) error
	Invalidate(ctx context.Context) error
}

type RedisReportCache struct {
	redis *redis.Client
	key   string
	ttl   time.Duration
}

func NewRedisReportCache(redis *redis.Client, key string, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{
		redis: redis,
		key:   key,
		ttl:   ttl,
	}
}

func (c *RedisReportCache) Get(ctx context.Context) (*FraudReport, error) {
	data, err := c.redis.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var report FraudReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportCacheCorrupt, err)
	}
	report.Cached = true
	return &report, nil
}

func (c *RedisReportCache) Set(ctx context.Context, report *FraudReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, c.key, data, c.ttl).Err()
}

func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, c.key).Err()
}
