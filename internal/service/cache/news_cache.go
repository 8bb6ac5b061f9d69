package cache

import (
	"sync"

	"RevCycle/internal/domain/models"
)

// NewsCache keeps the most recent headlines per market in a bounded ring.
type NewsCache struct {
	mu    sync.RWMutex
	limit int
	m     map[string][]*models.NewsItem
}

func NewNewsCache(limit int) *NewsCache {
	if limit <= 0 {
		limit = 50
	}
	return &NewsCache{limit: limit, m: make(map[string][]*models.NewsItem)}
}

// Append records a headline, evicting the oldest past the limit.
func (c *NewsCache) Append(market string, item *models.NewsItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := append(c.m[market], item)
	if len(items) > c.limit {
		items = items[len(items)-c.limit:]
	}
	c.m[market] = items
}

// Latest returns a copy of the stored headlines, newest last.
func (c *NewsCache) Latest(market string) []*models.NewsItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := c.m[market]
	out := make([]*models.NewsItem, len(items))
	copy(out, items)
	return out
}
