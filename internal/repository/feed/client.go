// Package feed pulls listings from an HTTP JSON endpoint.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/realty/internal/config"
	"github.com/mamadbah2/realty/internal/domain/models"
	"github.com/mamadbah2/realty/internal/repository/file"
)

// Client fetches the listings feed.
type Client struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewClient creates a configured feed client. The token, when set, is sent as a bearer token.
func NewClient(cfg config.FeedConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &Client{httpClient: client, url: cfg.URL, logger: logger}
}

// ListProperties downloads and decodes the feed.
func (c *Client) ListProperties(ctx context.Context) ([]models.Property, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("listings feed call: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("listings feed error: status %d", resp.StatusCode())
	}

	properties, err := file.Decode(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("listings feed: %w", err)
	}

	c.logger.Debug("listings feed fetched",
		zap.Int("count", len(properties)),
		zap.Duration("elapsed", resp.Time()),
	)
	return properties, nil
}
