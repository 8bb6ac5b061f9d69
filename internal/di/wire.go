//go:build wireinject
// +build wireinject

package di

import (
	"RevCycle/pkg/config"
	"RevCycle/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideBytesCache,

		// Collaborators
		ProvideInsightClient,
		ProvideDataSource,
		ProvideSentimentScorer,
		ProvideTrendPredictor,

		// Core services
		ProvideMarketAnalyzer,
		ProvidePricingStrategist,
		ProvideRevenueEngine,

		// Repositories
		ProvideCycleStore,
		ProvideCyclePublisher,

		// Use cases
		ProvideCycleProcessor,
		ProvideNewsCache,
		ProvideNewsCollector,
		ProvideScheduler,

		// HTTP + application
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
