package newsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"RevCycle/internal/domain/models"
	drepo "RevCycle/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements a NewsStream backed by the insight WebSocket feed.
// Reconnect and Close are called from other goroutines than the read and
// ping loops, so the connection state is guarded by a mutex. The mutex also
// serializes writers, which gorilla/websocket requires.
type Client struct {
	apiKey         string
	websocketURL   string
	markets        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
}

// New creates a new news feed stream.
func New(apiKey, websocketURL string, markets []string, reconnectDelay, pingInterval time.Duration) drepo.NewsStream {
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		markets:        markets,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("newsfeed connect: %w", err)
	}
	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()
	return nil
}

// Subscribe subscribes to configured markets.
func (c *Client) Subscribe(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil || !c.connected {
		return fmt.Errorf("newsfeed not connected")
	}
	for _, m := range c.markets {
		msg := map[string]string{"type": "subscribe", "market": m}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", m, err)
		}
	}
	return nil
}

func (c *Client) current() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

type wsHeadline struct {
	Market   string `json:"market"`
	Headline string `json:"headline"`
	Source   string `json:"source"`
	T        int64  `json:"t"` // ms
}

type wsMessage struct {
	Type string       `json:"type"`
	Data []wsHeadline `json:"data"`
}

// Read streams NewsItem events and errors for the current connection. The
// channels close when the connection dies; callers reconnect and call Read
// again for fresh channels.
func (c *Client) Read(ctx context.Context) (<-chan *models.NewsItem, <-chan error) {
	items := make(chan *models.NewsItem, 256)
	errs := make(chan error, 1)
	conn := c.current()

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.mu.Lock()
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
				c.mu.Unlock()
			}
		}
	}()

	// read loop
	go func() {
		defer close(items)
		defer close(errs)
		if conn == nil {
			errs <- fmt.Errorf("newsfeed conn nil")
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			default:
				_, b, err := conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("newsfeed read: %w", err)
					return
				}
				var m wsMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-headline frames
					continue
				}
				if m.Type != "headline" {
					continue
				}
				for _, d := range m.Data {
					item := &models.NewsItem{
						Market:    d.Market,
						Headline:  d.Headline,
						Source:    d.Source,
						Timestamp: time.UnixMilli(d.T),
					}
					select {
					case items <- item:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return items, errs
}

// Reconnect closes and reconnects after the configured delay.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.reconnectDelay):
	}
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}
