package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

func newServer(t *testing.T, status int, body string, seen *http.Request) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = *r.Clone(context.Background())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	tenantID := uuid.New()

	t.Run("bare array with exact decimals", func(t *testing.T) {
		var seen http.Request
		server := newServer(t, http.StatusOK, `[{"Date":"2024-01-05","Amount":1234.10,"Description":"Invoice 7"}]`, &seen)

		fetcher := NewHTTPFetcher(Config{
			Source:  entity.SourceSchedulingSystem,
			BaseURL: server.URL,
			APIKey:  "secret",
		})

		rows, err := fetcher.Fetch(context.Background(), tenantID)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		amount, ok := rows[0].Lookup("Amount")
		require.True(t, ok)
		n, isNumber := amount.Number()
		require.True(t, isNumber)
		assert.True(t, decimal.RequireFromString("1234.10").Equal(n))

		assert.Equal(t, "/records", seen.URL.Path)
		assert.Equal(t, tenantID.String(), seen.URL.Query().Get("tenant_id"))
		assert.Equal(t, "Bearer secret", seen.Header.Get("Authorization"))
	})

	t.Run("data envelope", func(t *testing.T) {
		server := newServer(t, http.StatusOK, `{"data":[{"name":"Rent","amount":"-900"},{"name":"Fees","amount":-10}]}`, nil)

		rows, err := NewHTTPFetcher(Config{Source: entity.SourceBankingAggregator, BaseURL: server.URL}).
			Fetch(context.Background(), tenantID)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		name, _ := rows[0].Lookup("name")
		assert.Equal(t, "Rent", name.String())
	})

	t.Run("records envelope", func(t *testing.T) {
		server := newServer(t, http.StatusOK, `{"records":[{"name":"A"}]}`, nil)

		rows, err := NewHTTPFetcher(Config{Source: entity.SourceBankingAggregator, BaseURL: server.URL}).
			Fetch(context.Background(), tenantID)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("empty body yields no rows", func(t *testing.T) {
		server := newServer(t, http.StatusOK, "", nil)

		rows, err := NewHTTPFetcher(Config{Source: entity.SourceBankingAggregator, BaseURL: server.URL}).
			Fetch(context.Background(), tenantID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("non-200 status fails", func(t *testing.T) {
		server := newServer(t, http.StatusBadGateway, `{"error":"upstream"}`, nil)

		_, err := NewHTTPFetcher(Config{Source: entity.SourceBankingAggregator, BaseURL: server.URL}).
			Fetch(context.Background(), tenantID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("malformed json fails", func(t *testing.T) {
		server := newServer(t, http.StatusOK, `[{"name":`, nil)

		_, err := NewHTTPFetcher(Config{Source: entity.SourceBankingAggregator, BaseURL: server.URL}).
			Fetch(context.Background(), tenantID)
		require.Error(t, err)
	})

	t.Run("timeout fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(server.Close)

		_, err := NewHTTPFetcher(Config{
			Source:  entity.SourceBankingAggregator,
			BaseURL: server.URL,
			Timeout: 20 * time.Millisecond,
		}).Fetch(context.Background(), tenantID)
		require.Error(t, err)
	})
}

func TestHTTPFetcher_Source(t *testing.T) {
	fetcher := NewHTTPFetcher(Config{Source: entity.SourceSchedulingSystem, BaseURL: "http://example.invalid"})
	assert.Equal(t, entity.SourceSchedulingSystem, fetcher.Source())
}
