package market

import (
	"context"
	"errors"
	"time"

	"RevCycle/internal/domain/models"
	drepo "RevCycle/internal/domain/repository"
	"RevCycle/pkg/logger"
	"RevCycle/pkg/util"
)

// ErrInvalidDataFormat is returned when the data source hands back something
// that is not a tabular row set.
var ErrInvalidDataFormat = errors.New("invalid data format returned from API")

// Analyzer fetches market data and turns collaborator output into forecast
// summaries. Failures are logged and returned to the caller unchanged; there
// is no retry and no fallback at this layer.
type Analyzer struct {
	source    drepo.DataSource
	sentiment drepo.SentimentScorer
	predictor drepo.TrendPredictor
	l         *logger.Logger
}

// NewAnalyzer creates a market analyzer over the injected collaborators.
func NewAnalyzer(source drepo.DataSource, sentiment drepo.SentimentScorer, predictor drepo.TrendPredictor, l *logger.Logger) *Analyzer {
	return &Analyzer{
		source:    source,
		sentiment: sentiment,
		predictor: predictor,
		l:         l,
	}
}

// FetchMarketData fetches historical data for a given market and timeframe.
// The returned value must be a tabular row set; anything else fails with
// ErrInvalidDataFormat.
func (a *Analyzer) FetchMarketData(ctx context.Context, market, timeframe string) (*models.MarketData, error) {
	data, err := a.source.GetHistoricalData(ctx, market, timeframe)
	if err != nil {
		a.l.Error("failed to fetch market data", logger.String("market", market), logger.Error(err))
		return nil, err
	}
	if data == nil || len(data.Rows) == 0 {
		a.l.Error("failed to fetch market data", logger.String("market", market), logger.Error(ErrInvalidDataFormat))
		return nil, ErrInvalidDataFormat
	}
	return data, nil
}

// AnalyzeSentiment scores a news feed, convention [-1, 1]. Pure delegation;
// collaborator errors propagate as-is.
func (a *Analyzer) AnalyzeSentiment(ctx context.Context, newsFeed string) (float64, error) {
	return a.sentiment.Analyze(ctx, newsFeed)
}

// PredictMarketTrend obtains a predicted series and condenses it into a
// forecast summary. Confidence is the population standard deviation of the
// series, not a statistical confidence interval.
func (a *Analyzer) PredictMarketTrend(ctx context.Context, data *models.MarketData) (models.ForecastSummary, error) {
	predicted, err := a.predictor.Predict(ctx, data)
	if err != nil {
		a.l.Error("prediction failed", logger.String("market", data.Market), logger.Error(err))
		return models.ForecastSummary{}, err
	}
	return models.ForecastSummary{
		Forecast:   util.Mean(predicted),
		Confidence: util.StdDev(predicted),
		Timestamp:  time.Now(),
	}, nil
}
