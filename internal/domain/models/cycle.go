package models

import "time"

// ForecastSummary condenses a predicted series into mean and spread.
// Confidence is the population standard deviation of the series; the name is
// historical and deliberately kept even though it measures dispersion.
type ForecastSummary struct {
	Forecast   float64   `json:"forecast"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// PricingInput carries the signals consumed by price calculation. Zero
// values mean "no signal" and contribute nothing to the price.
type PricingInput struct {
	SentimentScore float64 `json:"sentiment_score"`
	Forecast       float64 `json:"forecast"`
}

// CycleResult is the consolidated outcome of one revenue cycle. Constructed
// once, never mutated; ownership passes to the caller.
type CycleResult struct {
	Market         string    `json:"market"`
	Timeframe      string    `json:"timeframe"`
	OptimalPrice   float64   `json:"optimal_price"`
	MarketForecast float64   `json:"market_forecast"`
	Confidence     float64   `json:"confidence"`
	SentimentScore float64   `json:"sentiment_score"`
	Timestamp      time.Time `json:"timestamp"`
}

// PriceConstraints is the current clamp range of the pricing strategist.
type PriceConstraints struct {
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
}
