// ABOUTME: HTTP client for the remote tabular store holding all CRM records
// ABOUTME: Handles bearer auth, list/get/create/patch calls, and cursor pagination draining
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// Table names as configured on the remote base.
const (
	TableContacts   = "Contacts"
	TableCompanies  = "Companies"
	TableActivities = "Activities"
)

// Config holds the remote store credentials. The base ID and token are the
// only secrets this system carries; they select which base every call hits.
type Config struct {
	BaseID  string
	Token   string
	BaseURL string
}

// ConfigError reports a missing remote store setting. The web boundary turns
// it into a server-misconfiguration response rather than crashing.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("remote store is not configured: %s is not set", e.Missing)
}

// FromEnv reads the remote store settings from the process environment. It is
// called per request rather than at startup so a rotated token is picked up
// without a restart.
func FromEnv() (Config, error) {
	cfg := Config{
		BaseID:  os.Getenv("AIRTABLE_BASE_ID"),
		Token:   os.Getenv("AIRTABLE_API_KEY"),
		BaseURL: os.Getenv("AIRTABLE_BASE_URL"),
	}
	if cfg.BaseID == "" {
		return Config{}, &ConfigError{Missing: "AIRTABLE_BASE_ID"}
	}
	if cfg.Token == "" {
		return Config{}, &ConfigError{Missing: "AIRTABLE_API_KEY"}
	}
	return cfg, nil
}

// Record is one row of a remote table: an opaque identifier plus a mapping
// from physical field name to value. Field names are not fixed across bases,
// which is what the fallback writer exists to absorb.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type writeRequest struct {
	Fields map[string]any `json:"fields"`
}

// Client talks to one remote base.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient validates the config and returns a client. A missing base ID or
// token is a ConfigError, not a panic.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseID == "" {
		return nil, &ConfigError{Missing: "AIRTABLE_BASE_ID"}
	}
	if cfg.Token == "" {
		return nil, &ConfigError{Missing: "AIRTABLE_API_KEY"}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.cfg.BaseURL, c.cfg.BaseID, url.PathEscape(table))
}

func (c *Client) recordURL(table, id string) string {
	return fmt.Sprintf("%s/%s", c.tableURL(table), url.PathEscape(id))
}

// do performs one round-trip and maps any non-2xx response to an APIError
// carrying the remote status code and error body.
func (c *Client) do(ctx context.Context, method, rawURL string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote store call failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}

	return data, nil
}

// List fetches a single page of records. The returned offset is the opaque
// continuation cursor; empty means the last page.
func (c *Client) List(ctx context.Context, table string, params url.Values) ([]Record, string, error) {
	u := c.tableURL(table)
	if len(params) > 0 {
		u = u + "?" + params.Encode()
	}

	data, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}

	var page listResponse
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, "", fmt.Errorf("failed to decode record list: %w", err)
	}
	return page.Records, page.Offset, nil
}

// ListAll drains the table's cursor pagination and returns every record
// matching the formula. Any page failure aborts the whole read; records
// accumulated from earlier pages are discarded, never returned partially.
func (c *Client) ListAll(ctx context.Context, table, formula string, extra url.Values) ([]Record, error) {
	params := url.Values{}
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	if formula != "" {
		params.Set("filterByFormula", formula)
	}

	var all []Record
	for {
		records, offset, err := c.List(ctx, table, params)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
		if offset == "" {
			return all, nil
		}
		params.Set("offset", offset)
	}
}

// Get fetches a single record by identifier.
func (c *Client) Get(ctx context.Context, table, id string) (*Record, error) {
	data, err := c.do(ctx, http.MethodGet, c.recordURL(table, id), nil)
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &rec, nil
}

// Create writes a new record with the field set verbatim. Callers that do not
// know the base's physical field names should use CreateWithFallback.
func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	data, err := c.do(ctx, http.MethodPost, c.tableURL(table), writeRequest{Fields: fields})
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode created record: %w", err)
	}
	return &rec, nil
}

// Update patches the given fields on an existing record, leaving the rest of
// the record untouched.
func (c *Client) Update(ctx context.Context, table, id string, fields map[string]any) (*Record, error) {
	data, err := c.do(ctx, http.MethodPatch, c.recordURL(table, id), writeRequest{Fields: fields})
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode updated record: %w", err)
	}
	return &rec, nil
}
