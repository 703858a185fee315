package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lp-rebalance-calc/internal/api"
	"lp-rebalance-calc/internal/estimate"

	"go.uber.org/zap"
)

// ErrRejected marks a request the service refused on input validation.
var ErrRejected = errors.New("estimate rejected")

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (c *Client) Estimate(ctx context.Context, req estimate.Request) (estimate.Result, error) {
	var res estimate.Result
	err := c.do(ctx, http.MethodPost, "/v1/estimate", req, &res)
	return res, err
}

func (c *Client) Assumptions(ctx context.Context) (api.AssumptionsResponse, error) {
	var out api.AssumptionsResponse
	err := c.do(ctx, http.MethodGet, "/v1/assumptions", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, req, out any) error {
	var body io.Reader
	if req != nil {
		payload, err := json.Marshal(req)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if req != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		msg := strings.TrimSpace(string(raw))
		var apiErr api.ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		c.log.Debug("api request failed", zap.String("path", path), zap.Int("status", resp.StatusCode), zap.String("error", msg))
		if resp.StatusCode == http.StatusBadRequest {
			return fmt.Errorf("%s: %w", msg, ErrRejected)
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode, msg)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
