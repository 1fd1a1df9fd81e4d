package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client performs table operations against one Airtable base.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the configured base.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger:     logger,
	}
}

// List returns every record of table matching opts, following pagination offsets.
func (c *Client) List(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	var records []Record
	offset := ""

	for page := 1; ; page++ {
		query := url.Values{}
		if opts.FilterByFormula != "" {
			query.Set("filterByFormula", opts.FilterByFormula)
		}
		for _, field := range opts.Fields {
			query.Add("fields[]", field)
		}
		if opts.PageSize > 0 {
			query.Set("pageSize", strconv.Itoa(opts.PageSize))
		}
		if offset != "" {
			query.Set("offset", offset)
		}

		var resp listResponse
		if err := c.do(ctx, http.MethodGet, table, query, nil, &resp); err != nil {
			return nil, err
		}
		records = append(records, resp.Records...)

		c.logger.Debug("Listed destination page",
			zap.String("table", table),
			zap.Int("page", page),
			zap.Int("records", len(resp.Records)),
		)

		if resp.Offset == "" {
			return records, nil
		}
		offset = resp.Offset
	}
}

// Create inserts records built from fields. With typecast the API converts
// values to the column types instead of rejecting mismatches.
func (c *Client) Create(ctx context.Context, table string, fields []Fields, typecast bool) ([]Record, error) {
	if err := checkBatch(len(fields)); err != nil {
		return nil, err
	}

	req := createRequest{Records: make([]Record, len(fields)), Typecast: typecast}
	for i, f := range fields {
		req.Records[i] = Record{Fields: f}
	}

	var resp recordsResponse
	if err := c.do(ctx, http.MethodPost, table, nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// Update changes only the given fields of each record.
func (c *Client) Update(ctx context.Context, table string, records []Record) ([]Record, error) {
	if err := checkBatch(len(records)); err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("airtable update %s: record without id", table)
		}
	}

	var resp recordsResponse
	if err := c.do(ctx, http.MethodPatch, table, nil, updateRequest{Records: records}, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// Destroy deletes the records with the given handles.
func (c *Client) Destroy(ctx context.Context, table string, ids []string) error {
	if err := checkBatch(len(ids)); err != nil {
		return err
	}

	query := url.Values{}
	for _, id := range ids {
		query.Add("records[]", id)
	}
	return c.do(ctx, http.MethodDelete, table, query, nil, nil)
}

func (c *Client) do(ctx context.Context, method, table string, query url.Values, payload, out any) error {
	endpoint := c.cfg.BaseURL + "/" + url.PathEscape(c.cfg.BaseID) + "/" + url.PathEscape(table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", method, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("airtable %s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("airtable %s %s: failed to read response: %w", method, table, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(method, table, resp.StatusCode, data)
		c.logger.Error("Destination API returned error",
			zap.String("method", method),
			zap.String("table", table),
			zap.Int("status", resp.StatusCode),
			zap.String("type", apiErr.Type),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("airtable %s %s: failed to decode response: %w", method, table, err)
	}
	return nil
}

func checkBatch(n int) error {
	if n > MaxBatchSize {
		return fmt.Errorf("%w: %d records, limit %d", ErrBatchTooLarge, n, MaxBatchSize)
	}
	return nil
}
