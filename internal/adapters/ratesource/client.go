// Package ratesource fetches live market rates from an open.er-api compatible endpoint.
package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// latestResponse is the payload of GET {base}/latest/{FROM}.
type latestResponse struct {
	Result    string                 `json:"result"`
	BaseCode  string                 `json:"base_code"`
	ErrorType string                 `json:"error-type"`
	Rates     map[string]json.Number `json:"rates"`
}

// Client is a cached HTTP rate source.
type Client struct {
	http    *resty.Client
	cache   *cache.Cache
	group   singleflight.Group
	timeout time.Duration
}

var _ gateways.RateSource = (*Client)(nil)

// NewClient creates a rate source client. Rates are cached for ttl per currency pair.
func NewClient(baseURL string, timeout, ttl time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		cache:   cache.New(ttl, 2*ttl),
		timeout: timeout,
	}
}

// Name identifies the source on stored snapshots.
func (c *Client) Name() string {
	return "open.er-api"
}

// GetLiveRate returns the market rate from -> to, serving repeated lookups within the TTL from cache.
func (c *Client) GetLiveRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	key := from + ":" + to
	if v, ok := c.cache.Get(key); ok {
		return v.(decimal.Decimal), nil
	}

	// The shared fetch outlives any single caller; each caller still stops waiting on its own ctx.
	ch := c.group.DoChan(key, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, c.timeout)
			defer cancel()
		}
		rate, err := c.fetch(fctx, from, to)
		if err != nil {
			return nil, err
		}
		c.cache.SetDefault(key, rate)
		return rate, nil
	})
	select {
	case <-ctx.Done():
		return decimal.Zero, fmt.Errorf("live rate lookup for %s abandoned: %w", key, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return decimal.Zero, res.Err
		}
		return res.Val.(decimal.Decimal), nil
	}
}

func (c *Client) fetch(ctx context.Context, from, to string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var payload latestResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("from", from).
		SetResult(&payload).
		Get("/latest/{from}")
	if err != nil {
		logger.Error("Rate source request failed", slog.String("pair", from+to), slog.String("error", err.Error()))
		return decimal.Zero, apperrors.NewUpstreamError("failed to fetch live rate", err)
	}
	if resp.IsError() {
		return decimal.Zero, apperrors.NewUpstreamError(fmt.Sprintf("rate source returned status %d", resp.StatusCode()), nil)
	}
	if payload.Result != "success" {
		return decimal.Zero, apperrors.NewUpstreamError(fmt.Sprintf("rate source reported %q (%s)", payload.Result, payload.ErrorType), nil)
	}

	raw, ok := payload.Rates[to]
	if !ok {
		return decimal.Zero, apperrors.NewUpstreamError(fmt.Sprintf("rate source has no %s rate for %s", to, from), nil)
	}
	rate, err := decimal.NewFromString(raw.String())
	if err != nil || !rate.IsPositive() {
		return decimal.Zero, apperrors.NewUpstreamError(fmt.Sprintf("rate source returned invalid rate %q", raw.String()), err)
	}

	logger.Debug("Fetched live rate", slog.String("pair", from+to), slog.String("rate", rate.String()))
	return rate, nil
}
