// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Client talks to a curved instance over HTTP. Transport failures and 5xx
// responses are retried with exponential backoff; 4xx responses are not,
// those are the caller's problem.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	maxTries   uint
	retryDelay time.Duration
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithRetry(maxTries uint, delay time.Duration) Option {
	return func(c *Client) {
		c.maxTries = maxTries
		c.retryDelay = delay
	}
}

func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.Named("client"),
		maxTries:   3,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// retryable reports whether the request should be attempted again.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true // transport error
}

func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	var payload []byte
	if reqBody != nil {
		var err error
		payload, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	backoffPolicy := backoff.NewExponentialBackOff()
	backoffPolicy.InitialInterval = c.retryDelay
	backoffPolicy.MaxInterval = c.retryDelay * 10

	notify := func(err error, duration time.Duration) {
		c.logger.Info("Retrying request after error",
			zap.String("path", path),
			zap.Error(err),
			zap.Duration("backoff", duration))
	}

	operation := func() ([]byte, error) {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 300 {
			apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
			if !retryable(apiErr) {
				return nil, backoff.Permanent(apiErr)
			}
			return nil, apiErr
		}

		return data, nil
	}

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoffPolicy),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(notify))
	if err != nil {
		return err
	}

	if respBody != nil {
		if err := json.Unmarshal(data, respBody); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		return string(data)
	}
	return body.Error
}

// InitializeCurve creates a bonding curve for a mint.
func (c *Client) InitializeCurve(ctx context.Context, authority, mint solana.PublicKey, initialPrice, slope uint64) (*InitializeCurveResult, error) {
	req := map[string]string{
		"authority":     authority.String(),
		"token_mint":    mint.String(),
		"initial_price": formatUint64(initialPrice),
		"slope":         formatUint64(slope),
	}
	var res InitializeCurveResult
	if err := c.do(ctx, http.MethodPost, "/v1/curves", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Curve fetches the current curve snapshot for a mint.
func (c *Client) Curve(ctx context.Context, mint solana.PublicKey) (*CurveSnapshot, error) {
	var res CurveSnapshot
	if err := c.do(ctx, http.MethodGet, "/v1/curves/"+mint.String(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Quote previews a trade without executing it.
func (c *Client) Quote(ctx context.Context, mint solana.PublicKey, side string, amount uint64) (*QuoteResult, error) {
	path := fmt.Sprintf("/v1/curves/%s/quote?side=%s&amount=%s", mint, side, formatUint64(amount))
	var res QuoteResult
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Buy executes a purchase for the given account.
func (c *Client) Buy(ctx context.Context, account, mint solana.PublicKey, amount uint64) (*TradeResult, error) {
	return c.trade(ctx, "/buy", account, mint, amount)
}

// Sell executes a sale for the given account.
func (c *Client) Sell(ctx context.Context, account, mint solana.PublicKey, amount uint64) (*TradeResult, error) {
	return c.trade(ctx, "/sell", account, mint, amount)
}

func (c *Client) trade(ctx context.Context, action string, account, mint solana.PublicKey, amount uint64) (*TradeResult, error) {
	req := map[string]string{
		"account": account.String(),
		"amount":  formatUint64(amount),
	}
	var res TradeResult
	if err := c.do(ctx, http.MethodPost, "/v1/curves/"+mint.String()+action, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateParameters changes a curve's pricing as its authority.
func (c *Client) UpdateParameters(ctx context.Context, authority, mint solana.PublicKey, initialPrice, slope uint64) error {
	req := map[string]string{
		"authority":     authority.String(),
		"initial_price": formatUint64(initialPrice),
		"slope":         formatUint64(slope),
	}
	return c.do(ctx, http.MethodPut, "/v1/curves/"+mint.String()+"/parameters", req, nil)
}
