// Package source implements fetchers for external integrations that expose
// their records over a JSON HTTP API.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
)

const (
	defaultTimeout = 10 * time.Second
	recordsPath    = "/records"

	// maxResponseBytes caps what a single fetch reads into memory.
	maxResponseBytes = 64 << 20
)

// Config describes one external integration endpoint.
type Config struct {
	Source  entity.Source
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// authTransport attaches the integration API key to every request.
type authTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(req)
}

// httpFetcher implements adapter.SourceFetcher over a JSON records endpoint.
type httpFetcher struct {
	cfg    Config
	client *http.Client
}

// NewHTTPFetcher creates a fetcher for the integration described by cfg.
func NewHTTPFetcher(cfg Config) adapter.SourceFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &httpFetcher{
		cfg: cfg,
		client: &http.Client{
			Transport: &authTransport{apiKey: cfg.APIKey, base: http.DefaultTransport},
			Timeout:   timeout,
		},
	}
}

// Source returns the tag stamped on records from this integration.
func (f *httpFetcher) Source() entity.Source {
	return f.cfg.Source
}

// Fetch retrieves the tenant's raw rows. The endpoint may answer with a bare
// JSON array or with an object wrapping the array in "data" or "records".
func (f *httpFetcher) Fetch(ctx context.Context, tenantID uuid.UUID) ([]entity.RawRecord, error) {
	endpoint, err := url.Parse(f.cfg.BaseURL + recordsPath)
	if err != nil {
		return nil, fmt.Errorf("invalid %s base url: %w", f.cfg.Source, err)
	}
	query := endpoint.Query()
	query.Set("tenant_id", tenantID.String())
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		slog.Error("Source request failed",
			"source", f.cfg.Source,
			"url", endpoint.String(),
			"error", err,
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s responded with status %d", f.cfg.Source, resp.StatusCode)
	}

	objects, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", f.cfg.Source, err)
	}

	rows := make([]entity.RawRecord, 0, len(objects))
	for _, obj := range objects {
		rows = append(rows, entity.NewRawRecordFromMap(obj))
	}

	slog.Debug("Fetched source records",
		"source", f.cfg.Source,
		"tenantID", tenantID,
		"count", len(rows),
	)
	return rows, nil
}

// decodeRecords keeps numbers as json.Number so amounts reach the
// normalizer without float rounding.
func decodeRecords(body []byte) ([]map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []map[string]interface{}{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if trimmed[0] == '[' {
		var objects []map[string]interface{}
		if err := dec.Decode(&objects); err != nil {
			return nil, err
		}
		return objects, nil
	}

	var envelope struct {
		Data    []map[string]interface{} `json:"data"`
		Records []map[string]interface{} `json:"records"`
	}
	if err := dec.Decode(&envelope); err != nil {
		return nil, err
	}
	if envelope.Data != nil {
		return envelope.Data, nil
	}
	if envelope.Records != nil {
		return envelope.Records, nil
	}
	return []map[string]interface{}{}, nil
}
