package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanka-roy/c-hx-V01/internal/adapter/llm"
	"github.com/tanka-roy/c-hx-V01/internal/config"
	"github.com/tanka-roy/c-hx-V01/internal/metrics"
	"github.com/tanka-roy/c-hx-V01/internal/policy"
	"github.com/tanka-roy/c-hx-V01/internal/registry"
	"github.com/tanka-roy/c-hx-V01/internal/service"
	"github.com/tanka-roy/c-hx-V01/internal/transport/ws"
	"github.com/tanka-roy/c-hx-V01/tests/helpers"
)

func TestServerRoutes(t *testing.T) {
	cfg := &config.Config{MaxMessageLength: 1000, HistoryWindow: 10}
	db := helpers.NewTestSQLiteStore(t)
	reg, err := registry.New(registry.DefaultEntries(), "")
	require.NoError(t, err)
	policyEngine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)
	m := metrics.New()
	svc := service.New(db, llm.NewMockClient(reg), reg, cfg, policyEngine, m)
	e := NewServer(svc, ws.NewServer(cfg, svc), m)

	id := helpers.NewTestConversation(t, db, "routing", "hi", "hello")

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/models", "", http.StatusOK},
		{http.MethodPost, "/api/chat", `{"message":"route me"}`, http.StatusOK},
		{http.MethodGet, "/api/conversations", "", http.StatusOK},
		{http.MethodGet, "/api/conversations/search/route", "", http.StatusOK},
		{http.MethodGet, "/api/conversations/" + id + "/messages", "", http.StatusOK},
		{http.MethodDelete, "/api/conversations/" + id, "", http.StatusOK},
		{http.MethodDelete, "/api/conversations/" + id, "", http.StatusNotFound},
		{http.MethodDelete, "/api/conversations", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, "%s %s", tc.method, tc.path)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `chathx_chat_requests_total{outcome="ok"} 1`)
}
