package usecase

import (
	"context"

	"RevCycle/internal/domain/models"
	drepo "RevCycle/internal/domain/repository"
)

// NewsCollector drains the live headline stream into the news cache so the
// API can serve the most recent headlines per market. A stream failure
// triggers a reconnect, after which reading resumes on fresh channels.
type NewsCollector struct {
	stream  drepo.NewsStream
	cache   drepo.NewsCache
	metrics drepo.Metrics

	cancel context.CancelFunc
	done   chan struct{}
}

// NewNewsCollector creates a new NewsCollector instance.
func NewNewsCollector(stream drepo.NewsStream, cache drepo.NewsCache, metrics drepo.Metrics) *NewsCollector {
	return &NewsCollector{stream: stream, cache: cache, metrics: metrics}
}

// IsConnected returns true if the news stream is connected.
func (c *NewsCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

// Start connects, subscribes and launches the consume loop.
func (c *NewsCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.run(ctx)
	return nil
}

// run reads one connection at a time. Each pass obtains fresh channels from
// Read; when the connection dies the loop reconnects and reads again. A
// failed reconnect falls through to the next pass, which fails fast and
// lands back here, paced by the stream's reconnect delay.
func (c *NewsCollector) run(ctx context.Context) {
	defer close(c.done)
	for {
		itemCh, errCh := c.stream.Read(ctx)
		if !c.drain(ctx, itemCh, errCh) {
			return
		}
		if ctx.Err() != nil {
			return
		}
		c.metrics.RecordError("news_stream")
		_ = c.stream.Reconnect(ctx)
	}
}

// drain consumes one connection's channels until the connection dies.
// Returns false when the collector context is done, true when the stream
// needs a reconnect. A closed channel means the stream goroutine exited, so
// the connection is treated as dead rather than selected on forever.
func (c *NewsCollector) drain(ctx context.Context, itemCh <-chan *models.NewsItem, errCh <-chan error) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-errCh:
			return true
		case item, ok := <-itemCh:
			if !ok {
				return true
			}
			if item == nil {
				continue
			}
			c.cache.Append(item.Market, item)
			c.metrics.RecordNewsItem(item.Market)
		}
	}
}

// Stop cancels the consume loop, closes the stream and waits for the loop
// to drain.
func (c *NewsCollector) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	err := c.stream.Close()
	if c.done != nil {
		<-c.done
	}
	return err
}
