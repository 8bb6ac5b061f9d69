package predictor

import (
	"context"
	"time"

	"RevCycle/internal/domain/models"
	drepo "RevCycle/internal/domain/repository"
	xhttp "RevCycle/pkg/http"
)

// Client talks to the external trend prediction model service.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates a predictor client.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type predictRequest struct {
	Market string    `json:"market"`
	Closes []float64 `json:"closes"`
}

type predictResponse struct {
	Predicted []float64 `json:"predicted"`
}

// Predict returns the predicted numeric series for the given data.
func (c *Client) Predict(ctx context.Context, data *models.MarketData) ([]float64, error) {
	var resp predictResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/v1/predict",
		Body: predictRequest{
			Market: data.Market,
			Closes: data.Closes(),
		},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Predicted, nil
}

var _ drepo.TrendPredictor = (*Client)(nil)
