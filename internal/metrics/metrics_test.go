package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveChat(t *testing.T) {
	m := New()
	m.ObserveChat(OutcomeOK)
	m.ObserveChat(OutcomeOK)
	m.ObserveChat(OutcomeNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.chatRequests.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.chatRequests.WithLabelValues(OutcomeNotFound)))
}

func TestObserveProvider(t *testing.T) {
	m := New()
	m.ObserveProvider("groq", "llama", OutcomeError, 250*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerRequests.WithLabelValues("groq", "llama", OutcomeError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.providerLatency))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveChat(OutcomeOK)
	m.ObserveProvider("groq", "llama", OutcomeOK, time.Second)
}

func TestHandlerServesMetrics(t *testing.T) {
	m := New()
	m.ObserveChat(OutcomeOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "chathx_chat_requests_total"))
}
