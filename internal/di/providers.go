package di

import (
	"context"
	"fmt"
	"time"

	drepo "RevCycle/internal/domain/repository"
	"RevCycle/internal/handler/api"
	internalrepo "RevCycle/internal/repository"
	icache "RevCycle/internal/service/cache"
	"RevCycle/internal/service/insight"
	"RevCycle/internal/service/newsfeed"
	"RevCycle/internal/service/predictor"
	"RevCycle/internal/service/ratelimit"
	"RevCycle/internal/services/market"
	"RevCycle/internal/services/pricing"
	"RevCycle/internal/usecase"
	pkgch "RevCycle/pkg/clickhouse"
	"RevCycle/pkg/config"
	pkgkafka "RevCycle/pkg/kafka"
	"RevCycle/pkg/logger"
	"RevCycle/pkg/metrics"
	"RevCycle/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	lc := &logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return logger.New(lc)
}

// ProvideMetrics creates the Prometheus recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideBytesCache selects the configured cache backend.
func ProvideBytesCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Type == "redis" {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideInsightClient creates the insight API client (data + sentiment).
func ProvideInsightClient(cfg *config.Config) *insight.Client {
	return insight.New(cfg.Insight.BaseURL, cfg.Insight.APIKey, cfg.Insight.Timeout)
}

// ProvideDataSource wraps the insight client with the history cache.
func ProvideDataSource(client *insight.Client, cache icache.BytesCache, cfg *config.Config) drepo.DataSource {
	return insight.NewCachedSource(client, cache, cfg.Insight.CacheTTL)
}

// ProvideSentimentScorer exposes the insight client as a sentiment scorer.
func ProvideSentimentScorer(client *insight.Client) drepo.SentimentScorer {
	return client
}

// ProvideTrendPredictor creates the trend prediction client.
func ProvideTrendPredictor(cfg *config.Config) drepo.TrendPredictor {
	return predictor.New(cfg.Predictor.BaseURL, cfg.Predictor.Timeout)
}

// ProvideMarketAnalyzer wires the analyzer over its collaborators.
func ProvideMarketAnalyzer(source drepo.DataSource, scorer drepo.SentimentScorer, pred drepo.TrendPredictor, l *logger.Logger) *market.Analyzer {
	return market.NewAnalyzer(source, scorer, pred, l)
}

// ProvidePricingStrategist creates the strategist from configured bounds.
func ProvidePricingStrategist(cfg *config.Config, l *logger.Logger) *pricing.Strategist {
	return pricing.NewStrategist(cfg.Pricing.MinPrice, cfg.Pricing.MaxPrice, l)
}

// ProvideRevenueEngine creates the cycle orchestrator.
func ProvideRevenueEngine(analyzer *market.Analyzer, strategist *pricing.Strategist, m drepo.Metrics, l *logger.Logger) *usecase.RevenueEngine {
	return usecase.NewRevenueEngine(analyzer, strategist, m, l)
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", db),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.cycles (
            ts DateTime,
            market String,
            timeframe String,
            sentiment Float64,
            forecast Float64,
            confidence Float64,
            price Float64
        ) ENGINE=MergeTree ORDER BY (market, ts)`, db),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideCycleStore creates the ClickHouse-backed cycle store.
func ProvideCycleStore(chClient *pkgch.Client, cfg *config.Config) drepo.CycleStore {
	return internalrepo.NewClickHouseCycleStore(chClient.DB(), cfg.ClickHouse.Database+".cycles")
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatch(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideCyclePublisher creates the Kafka cycle publisher.
func ProvideCyclePublisher(producer *pkgkafka.Producer, cfg *config.Config) drepo.CyclePublisher {
	return internalrepo.NewKafkaCyclePublisher(producer, cfg.Kafka.Topic)
}

// ProvideCycleProcessor routes results to the configured backend.
func ProvideCycleProcessor(pub drepo.CyclePublisher, store drepo.CycleStore, m drepo.Metrics, cfg *config.Config) *usecase.CycleProcessor {
	return usecase.NewCycleProcessor(pub, store, m, cfg.Backend.Type)
}

// ProvideNewsCache creates the bounded per-market headline cache.
func ProvideNewsCache() *icache.NewsCache {
	return icache.NewNewsCache(50)
}

// ProvideNewsCollector creates the live headline collector, or nil when the
// feed is disabled.
func ProvideNewsCollector(cfg *config.Config, news *icache.NewsCache, m drepo.Metrics) *usecase.NewsCollector {
	if !cfg.NewsFeed.Enabled {
		return nil
	}
	stream := newsfeed.New(
		cfg.Insight.APIKey,
		cfg.NewsFeed.WebSocketURL,
		cfg.NewsFeed.Markets,
		cfg.NewsFeed.ReconnectDelay,
		cfg.NewsFeed.PingInterval,
	)
	return usecase.NewNewsCollector(stream, news, m)
}

// ProvideScheduler creates the periodic cycle runner, or nil when disabled.
func ProvideScheduler(engine *usecase.RevenueEngine, proc *usecase.CycleProcessor, m drepo.Metrics, l *logger.Logger, cfg *config.Config) *usecase.CycleScheduler {
	if !cfg.Scheduler.Enabled || cfg.Scheduler.Interval <= 0 {
		return nil
	}
	return usecase.NewCycleScheduler(engine, proc, m, l, cfg.Scheduler.Markets, cfg.Scheduler.Timeframe, cfg.Scheduler.Interval)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	l *logger.Logger,
	engine *usecase.RevenueEngine,
	proc *usecase.CycleProcessor,
	store drepo.CycleStore,
	news *icache.NewsCache,
	cfg *config.Config,
) *api.CyclesHandler {
	return api.NewCyclesHandler(l, engine, proc, store, news, ratelimit.New(), cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	handler *api.CyclesHandler,
	scheduler *usecase.CycleScheduler,
	collector *usecase.NewsCollector,
	chClient *pkgch.Client,
	proc *usecase.CycleProcessor,
) *server.App {
	return server.New(cfg, l, handler, scheduler, collector, chClient, proc)
}
