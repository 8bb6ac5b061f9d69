package insight

import (
	"context"
	"encoding/json"
	"time"

	"RevCycle/internal/domain/models"
	drepo "RevCycle/internal/domain/repository"
	icache "RevCycle/internal/service/cache"
)

// CachedSource decorates a DataSource with a TTL byte cache. Cache failures
// fall through to the underlying source.
type CachedSource struct {
	next  drepo.DataSource
	cache icache.BytesCache
	ttl   time.Duration
}

// NewCachedSource wraps next with a cache.
func NewCachedSource(next drepo.DataSource, cache icache.BytesCache, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, cache: cache, ttl: ttl}
}

func (s *CachedSource) GetHistoricalData(ctx context.Context, market, timeframe string) (*models.MarketData, error) {
	key := cacheKey(market, timeframe)

	if b, ok, err := s.cache.GetBytes(ctx, key); err == nil && ok {
		var data models.MarketData
		if err := json.Unmarshal(b, &data); err == nil {
			return &data, nil
		}
	}

	data, err := s.next.GetHistoricalData(ctx, market, timeframe)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(data); err == nil {
		_ = s.cache.SetBytes(ctx, key, b, s.ttl)
	}
	return data, nil
}

func cacheKey(market, timeframe string) string {
	return "history:" + market + "|" + timeframe
}

var _ drepo.DataSource = (*CachedSource)(nil)
