package bgg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"boardgame-sync/core/utils"

	"go.uber.org/zap"
)

// bodyExcerptLimit bounds how much of an error body is logged and kept.
const bodyExcerptLimit = 512

// Client talks to the BGG XML API and implements the pending-export retry protocol.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewClient creates a catalog client. Zero limits fall back to the defaults.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.ThingBatchSize <= 0 {
		cfg.ThingBatchSize = defaultThingBatchSize
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		logger:     logger,
		sleep:      sleepContext,
	}
}

// Fetch issues a GET for path and returns the body once the upstream answers 200.
// A 202 means the export is still being prepared: the request is repeated after the
// fixed retry delay until MaxRetries pending answers have been seen.
func (c *Client) Fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.cfg.BaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	log := c.logger.With(zap.String("path", path))
	log.Debug("Requesting catalog", zap.String("url", endpoint))

	retries := 0
	for {
		status, body, err := c.get(ctx, endpoint)
		if err != nil {
			log.Error("Catalog request failed", zap.Error(err))
			return nil, &FetchError{Kind: ErrTransport, Path: path, Retries: retries, Err: err}
		}

		switch status {
		case http.StatusOK:
			log.Debug("Catalog response ready", zap.Int("bytes", len(body)), zap.Int("retries", retries))
			return body, nil

		case http.StatusAccepted:
			retries++
			if retries >= c.cfg.MaxRetries {
				log.Error("Catalog retry limit reached", zap.Int("max_retries", c.cfg.MaxRetries))
				return nil, &FetchError{Kind: ErrRetryExhausted, Path: path, Status: status, Retries: retries}
			}

			log.Info("Catalog export pending, retrying",
				zap.Int("retry", retries),
				zap.Duration("delay", c.cfg.RetryDelay),
			)
			if err := c.sleep(ctx, c.cfg.RetryDelay); err != nil {
				return nil, &FetchError{Kind: ErrTransport, Path: path, Retries: retries, Err: err}
			}

		default:
			excerpt := bodyExcerpt(body)
			log.Error("Catalog returned unexpected status",
				zap.Int("status", status),
				zap.String("body", excerpt),
			)
			return nil, &FetchError{Kind: ErrUnexpectedStatus, Path: path, Status: status, Retries: retries, Body: excerpt}
		}
	}
}

// Collection fetches the brief collection export for a query.
func (c *Client) Collection(ctx context.Context, query CollectionQuery) ([]byte, error) {
	return c.Fetch(ctx, "/collection", query.Values())
}

// Things fetches full thing entries for ids, split into batches the upstream accepts.
// Payloads are returned in batch order.
func (c *Client) Things(ctx context.Context, ids []string) ([][]byte, error) {
	batches := utils.Chunk(ids, c.cfg.ThingBatchSize)
	payloads := make([][]byte, 0, len(batches))

	for i, batch := range batches {
		body, err := c.Fetch(ctx, "/thing", url.Values{"id": {strings.Join(batch, ",")}})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch thing batch %d/%d: %w", i+1, len(batches), err)
		}
		payloads = append(payloads, body)
	}

	return payloads, nil
}

// Username returns the configured collection owner.
func (c *Client) Username() string {
	return c.cfg.Username
}

// IncludePreordered reports whether preordered expansions count as owned.
func (c *Client) IncludePreordered() bool {
	return c.cfg.IncludePreordered
}

func (c *Client) get(ctx context.Context, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, err
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func bodyExcerpt(body []byte) string {
	if len(body) > bodyExcerptLimit {
		return string(body[:bodyExcerptLimit]) + "..."
	}
	return string(body)
}
