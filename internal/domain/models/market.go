package models

import (
	"strings"
	"time"
)

// MarketRow is one historical observation keyed by timestamp. The numeric
// columns are passed through opaquely; only News is consumed by the core.
type MarketRow struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	News      string    `json:"news"`
}

// MarketData is the tabular historical data set returned by the data source
// for one market/timeframe. It lives for the duration of a single cycle.
type MarketData struct {
	Market    string      `json:"market"`
	Timeframe string      `json:"timeframe"`
	Rows      []MarketRow `json:"rows"`
}

// NewsFeed concatenates the news column into a single text for sentiment
// scoring.
func (d *MarketData) NewsFeed() string {
	parts := make([]string, 0, len(d.Rows))
	for _, r := range d.Rows {
		if r.News != "" {
			parts = append(parts, r.News)
		}
	}
	return strings.Join(parts, "\n")
}

// Closes returns the close-price series fed to the trend predictor.
func (d *MarketData) Closes() []float64 {
	closes := make([]float64, len(d.Rows))
	for i, r := range d.Rows {
		closes[i] = r.Close
	}
	return closes
}

// NewsItem is one live headline from the news feed stream.
type NewsItem struct {
	Market    string    `json:"market"`
	Headline  string    `json:"headline"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}
