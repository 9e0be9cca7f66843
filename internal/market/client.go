// Package market fetches mandi price data and derives trends from it.
package market

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kisanportal/kisan/internal/api"
)

// PriceFetcher is implemented by *Client and by test doubles.
type PriceFetcher interface {
	FetchPrices(ctx context.Context, query PriceQuery) (PriceSeries, error)
	FetchCommodities(ctx context.Context) ([]Commodity, error)
}

var _ PriceFetcher = (*Client)(nil)

// Client talks to the market-data API.
type Client struct {
	api *api.Client
}

// NewClient builds a Client for baseURL.
func NewClient(baseURL, token string) (*Client, error) {
	c, err := api.NewClient(baseURL, token)
	if err != nil {
		return nil, fmt.Errorf("market client: %w", err)
	}
	return &Client{api: c}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.api.BaseURL()
}

// PriceQuery selects a price series.
type PriceQuery struct {
	Commodity string
	State     string
	Market    string
	Days      int
}

// FetchPrices retrieves the price series for a commodity.
func (c *Client) FetchPrices(ctx context.Context, query PriceQuery) (PriceSeries, error) {
	if c == nil {
		return PriceSeries{}, fmt.Errorf("client is nil")
	}
	commodity := strings.TrimSpace(query.Commodity)
	if commodity == "" {
		return PriceSeries{}, fmt.Errorf("commodity required")
	}
	values := url.Values{}
	values.Set("commodity", commodity)
	if state := strings.TrimSpace(query.State); state != "" {
		values.Set("state", state)
	}
	if mkt := strings.TrimSpace(query.Market); mkt != "" {
		values.Set("market", mkt)
	}
	if query.Days > 0 {
		values.Set("days", strconv.Itoa(query.Days))
	}
	var payload PriceSeries
	if err := c.api.Get(ctx, "/api/prices", values, &payload); err != nil {
		return PriceSeries{}, err
	}
	if payload.Commodity == "" {
		payload.Commodity = commodity
	}
	return payload, nil
}

// FetchCommodities retrieves the commodity catalogue.
func (c *Client) FetchCommodities(ctx context.Context) ([]Commodity, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload commodityListResponse
	if err := c.api.Get(ctx, "/api/commodities", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}
