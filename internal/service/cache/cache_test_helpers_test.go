package cache

import (
	"strconv"
	"time"

	"RevCycle/internal/domain/models"
)

func newsItem(prefix string, i int) *models.NewsItem {
	return &models.NewsItem{
		Market:    "BTC/USDT",
		Headline:  prefix + "-" + strconv.Itoa(i),
		Timestamp: time.Now(),
	}
}
