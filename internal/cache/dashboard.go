package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/config"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

const (
	dashboardKeyPrefix = "dashboard:report"
	scanBatchSize      = 100
)

// DashboardCache caches rendered report payloads keyed by report name and
// filter selection. Get decodes into dest and reports whether the key was
// present.
type DashboardCache interface {
	Get(ctx context.Context, report string, filter domain.FilterParams, dest any) (bool, error)
	Set(ctx context.Context, report string, filter domain.FilterParams, value any) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) Get(ctx context.Context, report string, filter domain.FilterParams, dest any) (bool, error) {
	key := buildReportKey(report, filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode %s report cache: %w", report, err)
	}

	return true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, report string, filter domain.FilterParams, value any) error {
	key := buildReportKey(report, filter)
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s report cache: %w", report, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, dashboardKeyPrefix, scanBatchSize)
}

func (n *noopDashboardCache) Get(ctx context.Context, report string, filter domain.FilterParams, dest any) (bool, error) {
	return false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, report string, filter domain.FilterParams, value any) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// buildReportKey hashes the normalized filter so equivalent selections share
// an entry.
func buildReportKey(report string, filter domain.FilterParams) string {
	filter = filter.Normalized()
	parts := []string{
		"range=" + strings.ToLower(filter.Range),
		"group=" + strings.ToLower(filter.Group),
		"region=" + strings.ToLower(filter.Region),
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s:%s", dashboardKeyPrefix, report, hex.EncodeToString(hash[:]))
}
