package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

// Client charges through an external processor over HTTP. Calls run behind a
// circuit breaker so a struggling processor fails fast instead of piling up
// requests.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
}

type chargeRequest struct {
	CardholderName string          `json:"cardholderName"`
	CardNumber     string          `json:"cardNumber"`
	Expiry         string          `json:"expiry"`
	CVV            string          `json:"cvv"`
	Amount         decimal.Decimal `json:"amount"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second).
			SetRetryCount(0),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "payment",
			MaxRequests: 3,
			Interval:    15 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}),
	}
}

func (c *Client) Charge(ctx context.Context, card Card, amount decimal.Decimal) (*Receipt, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var receipt Receipt
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(chargeRequest{
				CardholderName: card.HolderName,
				CardNumber:     card.Number,
				Expiry:         card.Expiry,
				CVV:            card.CVV,
				Amount:         amount,
			}).
			SetResult(&receipt).
			Post("/charge")
		if err != nil {
			return nil, err
		}
		switch resp.StatusCode() {
		case http.StatusOK, http.StatusCreated:
			return &receipt, nil
		case http.StatusPaymentRequired:
			return nil, ErrDeclined
		default:
			return nil, fmt.Errorf("processor returned status %d", resp.StatusCode())
		}
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("payment processor unavailable: %w", err)
		}
		return nil, err
	}
	return result.(*Receipt), nil
}
