package insight

import (
	"context"
	"time"

	"RevCycle/internal/domain/models"
	drepo "RevCycle/internal/domain/repository"
	xhttp "RevCycle/pkg/http"
)

// Client talks to the external insight service, which provides both
// historical market data and sentiment scoring behind one API key. The
// client does not interpret failures; callers decide what an error means.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

// New creates an insight client.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type historyRow struct {
	Timestamp int64   `json:"ts"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	News      string  `json:"news"`
}

type historyResponse struct {
	Market    string       `json:"market"`
	Timeframe string       `json:"timeframe"`
	Rows      []historyRow `json:"rows"`
}

// GetHistoricalData fetches historical rows for a market and timeframe.
func (c *Client) GetHistoricalData(ctx context.Context, market, timeframe string) (*models.MarketData, error) {
	var resp historyResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v1/history",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
		},
		QueryParams: map[string][]string{
			"market":    {market},
			"timeframe": {timeframe},
		},
	}, &resp)
	if err != nil {
		return nil, err
	}

	rows := make([]models.MarketRow, len(resp.Rows))
	for i, r := range resp.Rows {
		rows[i] = models.MarketRow{
			Timestamp: time.Unix(r.Timestamp, 0),
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
			News:      r.News,
		}
	}
	return &models.MarketData{
		Market:    market,
		Timeframe: timeframe,
		Rows:      rows,
	}, nil
}

type sentimentRequest struct {
	Text string `json:"text"`
}

type sentimentResponse struct {
	Score float64 `json:"score"`
}

// Analyze scores a news feed, convention [-1, 1].
func (c *Client) Analyze(ctx context.Context, text string) (float64, error) {
	var resp sentimentResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/v1/sentiment",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
			"Content-Type":  "application/json",
		},
		Body: sentimentRequest{Text: text},
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Score, nil
}

var (
	_ drepo.DataSource      = (*Client)(nil)
	_ drepo.SentimentScorer = (*Client)(nil)
)
