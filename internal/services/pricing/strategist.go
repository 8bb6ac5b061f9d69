package pricing

import (
	"math"

	"RevCycle/internal/domain/models"
	"RevCycle/pkg/logger"
)

const (
	basePrice       = 1.0
	sentimentWeight = 0.1
	trendImpact     = 0.05
)

// Strategist maps sentiment and forecast sign to a clamped price. Not safe
// for concurrent use; callers serialize access externally.
type Strategist struct {
	l        *logger.Logger
	minPrice float64
	maxPrice float64
}

// NewStrategist creates a strategist with the given price constraints.
func NewStrategist(minPrice, maxPrice float64, l *logger.Logger) *Strategist {
	return &Strategist{
		l:        l,
		minPrice: minPrice,
		maxPrice: maxPrice,
	}
}

// CalculateOptimalPrice computes the price from sentiment and forecast sign.
// The output always lies in [minPrice, maxPrice]; clamping is the only bound
// on extreme sentiment values.
func (s *Strategist) CalculateOptimalPrice(input models.PricingInput) float64 {
	price := basePrice + input.SentimentScore*sentimentWeight
	if input.Forecast > 0 {
		price += trendImpact
	}

	price = math.Max(s.minPrice, math.Min(price, s.maxPrice))

	s.l.Debug("price calculated",
		logger.Float64("sentiment", input.SentimentScore),
		logger.Float64("forecast", input.Forecast),
		logger.Float64("price", price),
	)
	return price
}

// UpdateConstraints replaces the bounds. Nil leaves a bound unchanged; min
// is clamped to >= 0. The resulting min <= max relation is not checked.
func (s *Strategist) UpdateConstraints(newMin, newMax *float64) {
	if newMin != nil {
		s.minPrice = math.Max(*newMin, 0.0)
	}
	if newMax != nil {
		s.maxPrice = math.Min(*newMax, math.Inf(1))
	}
}

// Constraints returns the current bounds.
func (s *Strategist) Constraints() models.PriceConstraints {
	return models.PriceConstraints{MinPrice: s.minPrice, MaxPrice: s.maxPrice}
}
