package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

func TestPrometheusMetrics_Counters(t *testing.T) {
	m := NewPrometheusMetrics()

	m.ObserveImport(entity.SourceCSV, 3, 1, 10*time.Millisecond)
	m.ObserveImport(entity.SourceCSV, 2, 0, 5*time.Millisecond)
	m.ObserveSkippedRow(entity.SourceCSV, "unparseable_date")
	m.ObserveSourceFetch(entity.SourceBankingAggregator, true, time.Millisecond)
	m.ObserveSourceFetch(entity.SourceBankingAggregator, false, time.Millisecond)
	m.ObserveRollup(false, 120, time.Millisecond)
	m.ObserveRollup(true, 0, time.Millisecond)

	assert.Equal(t, float64(5), testutil.ToFloat64(m.recordsImported.WithLabelValues("csv")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rowsSkipped.WithLabelValues("csv", "unparseable_date")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sourceFetches.WithLabelValues("banking-aggregator", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sourceFetches.WithLabelValues("banking-aggregator", "failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rollups.WithLabelValues("true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rollups.WithLabelValues("false")))
}

func TestPrometheusMetrics_IndependentRegistries(t *testing.T) {
	a := NewPrometheusMetrics()
	b := NewPrometheusMetrics()

	a.ObserveSkippedRow(entity.SourceCSV, "unparseable_amount")

	assert.Equal(t, float64(1), testutil.ToFloat64(a.rowsSkipped.WithLabelValues("csv", "unparseable_amount")))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.rowsSkipped.WithLabelValues("csv", "unparseable_amount")))
}

func TestPrometheusMetrics_Handler(t *testing.T) {
	m := NewPrometheusMetrics()
	m.ObserveImport(entity.SourceSpreadsheet, 4, 0, time.Millisecond)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `pnl_records_imported_total{source="spreadsheet"} 4`)
}
