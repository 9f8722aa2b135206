package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/orac/internal/config"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/memory"
	"github.com/sandevgo/orac/internal/service/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticStreams struct{}

func (staticStreams) Snapshots() []core.Snapshot {
	return []core.Snapshot{
		{Source: core.SourceMarket, Status: "S&P 500: 4210.25 (up)", Timestamp: time.Now(), Market: &core.MarketData{
			SP500: 4210.25, Trend: "up", Volatility: 2,
			Stocks: map[string]core.StockQuote{"AAPL": {Price: 190.5, Change: 1.25}},
		}},
		{Source: core.SourceWeather, Status: "72°F, Sunny", Timestamp: time.Now()},
		{Source: core.SourceNews, Status: "Tech stocks surge on AI breakthrough", Timestamp: time.Now()},
	}
}

func newTestServer(t *testing.T, opts ...oracle.Option) (*Server, *oracle.Oracle) {
	t.Helper()
	o := oracle.New(staticStreams{}, memory.NewSession(0, 0), append([]oracle.Option{oracle.WithThinkDelay(0)}, opts...)...)
	cfg := &config.HTTPConfig{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second}
	return NewServer(context.Background(), cfg, o), o
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decode(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ORAC", body["service"])
}

func TestQuery(t *testing.T) {
	s, o := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/query", queryRequest{Query: "What's Apple stock doing today?"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body queryResponse
	decode(t, rec, &body)
	assert.Equal(t, "Stock Analysis: AAPL", body.Prediction.Scenario)
	assert.Contains(t, body.Reply.Content, "🤖 ORAC Analysis: Here's the latest on AAPL")
	assert.Len(t, body.Context, 3)
	assert.NotZero(t, body.MemoryID)

	items, err := o.Memory(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, body.MemoryID, items[0].ID)
}

func TestQuery_WithMode(t *testing.T) {
	s, o := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/query", queryRequest{Query: "What's the current market outlook?", Mode: "analyst"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body queryResponse
	decode(t, rec, &body)
	assert.Equal(t, "Technical Market Analysis", body.Prediction.Scenario)
	assert.Equal(t, core.ModeAnalyst, body.Reply.Mode)
	assert.Equal(t, core.ModeAssistant, o.Mode())
}

func TestQuery_ConcurrentModesStayPerRequest(t *testing.T) {
	s, o := newTestServer(t, oracle.WithThinkDelay(50*time.Millisecond))
	modes := []core.Mode{core.ModeAssistant, core.ModeAnalyst, core.ModeStrategist}

	got := make([]core.Mode, len(modes))
	var wg sync.WaitGroup
	for i, mode := range modes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := do(t, s, http.MethodPost, "/api/v1/query", queryRequest{Query: "What's the market outlook?", Mode: string(mode)})
			if rec.Code != http.StatusOK {
				return
			}
			var body queryResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err == nil {
				got[i] = body.Reply.Mode
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, modes, got)

	items, err := o.Memory(context.Background())
	require.NoError(t, err)
	stored := make([]core.Mode, 0, len(items))
	for _, item := range items {
		stored = append(stored, item.Mode)
	}
	assert.ElementsMatch(t, modes, stored)
	assert.Equal(t, core.ModeAssistant, o.Mode())
}

func TestQuery_Rejects(t *testing.T) {
	s, o := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/query", queryRequest{Query: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "query is empty")

	rec = do(t, s, http.MethodPost, "/api/v1/query", queryRequest{Query: "hi", Mode: "oracle"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", bytes.NewBufferString("{not json"))
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	msgs, err := o.Conversation(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestModeEndpoints(t *testing.T) {
	s, o := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/mode", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mode":"assistant"`)

	rec = do(t, s, http.MethodPut, "/api/v1/mode", modeRequest{Mode: "Strategist"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, core.ModeStrategist, o.Mode())

	rec = do(t, s, http.MethodPut, "/api/v1/mode", modeRequest{Mode: "wizard"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/v1/mode", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, core.ModeStrategist, o.Mode())
}

func TestStateEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/prediction", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	do(t, s, http.MethodPost, "/api/v1/query", queryRequest{Query: "Plan a weekend trip based on weather"})

	rec = do(t, s, http.MethodGet, "/api/v1/prediction", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Travel Planning")

	var mem struct {
		Items []core.MemoryItem `json:"items"`
		Total int               `json:"total"`
	}
	decode(t, do(t, s, http.MethodGet, "/api/v1/memory", nil), &mem)
	assert.Equal(t, 1, mem.Total)

	var conv struct {
		Messages []core.Message `json:"messages"`
	}
	decode(t, do(t, s, http.MethodGet, "/api/v1/conversation", nil), &conv)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, core.RoleUser, conv.Messages[0].Role)

	rec = do(t, s, http.MethodPost, "/api/v1/reset", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	decode(t, do(t, s, http.MethodGet, "/api/v1/memory", nil), &mem)
	assert.Equal(t, 0, mem.Total)
}

func TestStreamsAndExamples(t *testing.T) {
	s, _ := newTestServer(t)

	var streams struct {
		Streams []core.Snapshot `json:"streams"`
	}
	decode(t, do(t, s, http.MethodGet, "/api/v1/streams", nil), &streams)
	require.Len(t, streams.Streams, 3)
	assert.Equal(t, core.SourceMarket, streams.Streams[0].Source)

	var examples struct {
		Examples []string `json:"examples"`
	}
	decode(t, do(t, s, http.MethodGet, "/api/v1/examples", nil), &examples)
	assert.Equal(t, oracle.Examples, examples.Examples)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(core.ErrEmptyQuery))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(context.Canceled))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
