package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fjacquet/finsight/internal/categorizer"
	"fjacquet/finsight/internal/insights"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"
	"fjacquet/finsight/internal/store"
	"fjacquet/finsight/internal/voice"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer creates a server over an in-memory store.
func testServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	logger := logging.NewMockLogger()
	txStore := store.NewMemoryStore(logger)
	matcher := voice.NewMatcher(categorizer.NewDefaultClassifier(logger), logger)
	executor := voice.NewExecutor(txStore, nil, logger)
	manager := voice.NewManager(matcher, executor, voice.ManagerConfig{HistorySize: 10}, logger)
	t.Cleanup(manager.CloseAll)

	srv := New(Config{
		AllowedOrigins: []string{"http://app.test"},
		Store:          txStore,
		Engine:         insights.NewEngine(insights.DefaultOptions(), logger),
		Voice:          manager,
		Logger:         logger,
	})
	return srv, txStore
}

func do(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func seed(t *testing.T, s *store.MemoryStore, userID string, txType models.TransactionType, amount, category, date string) {
	t.Helper()
	_, err := s.Create(context.Background(), models.Transaction{
		UserID:   userID,
		Type:     txType,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     date,
	})
	require.NoError(t, err)
}

func TestAPI_Health(t *testing.T) {
	srv, _ := testServer(t)

	rr := do(t, srv, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestAPI_TransactionLifecycle(t *testing.T) {
	srv, _ := testServer(t)

	rr := do(t, srv, http.MethodPost, "/api/v1/users/u1/transactions", map[string]string{
		"type": "expense", "amount": "42.10", "category": "Food", "date": "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created models.Transaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UserID)

	rr = do(t, srv, http.MethodPatch, "/api/v1/users/u1/transactions/"+created.ID, map[string]string{"category": "Dining"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, srv, http.MethodGet, "/api/v1/users/u1/transactions", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []models.Transaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Dining", list[0].Category)

	rr = do(t, srv, http.MethodDelete, "/api/v1/users/u1/transactions/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, srv, http.MethodDelete, "/api/v1/users/u1/transactions/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPI_CreateTransaction_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{name: "zero amount", body: map[string]string{"type": "expense", "amount": "0", "category": "Food", "date": "2024-03-01"}},
		{name: "bad type", body: map[string]string{"type": "gift", "amount": "5", "category": "Food", "date": "2024-03-01"}},
		{name: "unknown field", body: map[string]string{"colour": "red"}},
	}

	srv, _ := testServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, srv, http.MethodPost, "/api/v1/users/u1/transactions", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), "error")
		})
	}
}

func TestAPI_InsightsAndHealthScore(t *testing.T) {
	srv, txStore := testServer(t)

	rr := do(t, srv, http.MethodGet, "/api/v1/users/u1/insights", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var empty insights.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &empty))
	assert.False(t, empty.HasData)

	rr = do(t, srv, http.MethodGet, "/api/v1/users/u1/health-score", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"userId":"u1","score":null,"available":false}`, rr.Body.String())

	seed(t, txStore, "u1", models.TypeIncome, "1000", "Salary", "2024-03-01")
	for _, day := range []string{"02", "03", "04", "05"} {
		seed(t, txStore, "u1", models.TypeExpense, "100", "Food", "2024-03-"+day)
	}

	rr = do(t, srv, http.MethodGet, "/api/v1/users/u1/insights", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var report insights.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.True(t, report.HasData)
	require.NotNil(t, report.HealthScore)
	assert.Equal(t, 100, *report.HealthScore)
	assert.NotNil(t, report.Insights)

	rr = do(t, srv, http.MethodGet, "/api/v1/users/u1/health-score", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"userId":"u1","score":100,"available":true}`, rr.Body.String())
}

func TestAPI_VoiceTranscriptExecutes(t *testing.T) {
	srv, txStore := testServer(t)

	rr := do(t, srv, http.MethodPost, "/api/v1/users/u1/voice/transcripts", map[string]string{"transcript": "add expense 25 for lunch"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp eventsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Executed)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, voice.EventTranscript, resp.Events[0].Type)
	assert.Equal(t, voice.EventCommand, resp.Events[1].Type)

	txs, err := txStore.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Food", txs[0].Category)

	rr = do(t, srv, http.MethodGet, "/api/v1/users/u1/voice/history", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var history []voice.HistoryEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "add expense 25 for lunch", history[0].Command)
}

func TestAPI_VoiceDestructiveCommandNeedsConfirmation(t *testing.T) {
	srv, txStore := testServer(t)
	seed(t, txStore, "u1", models.TypeExpense, "10", "Food", "2024-03-01")

	rr := do(t, srv, http.MethodPost, "/api/v1/users/u1/voice/transcripts", map[string]string{"transcript": "delete last transaction"})
	require.Equal(t, http.StatusOK, rr.Code)
	var resp eventsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Executed)
	assert.Equal(t, voice.EventSecurityCheck, resp.Events[len(resp.Events)-1].Type)

	rr = do(t, srv, http.MethodGet, "/api/v1/users/u1/voice/state", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var state voiceStateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	require.NotNil(t, state.Pending)
	assert.Equal(t, voice.CommandDeleteLast, state.Pending.Command.Type)
	assert.False(t, state.Supported)

	txs, _ := txStore.List(context.Background(), "u1")
	assert.Len(t, txs, 1, "nothing deleted before confirmation")

	rr = do(t, srv, http.MethodPost, "/api/v1/users/u1/voice/confirm", map[string]bool{"confirm": true})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Executed)

	txs, _ = txStore.List(context.Background(), "u1")
	assert.Empty(t, txs)

	rr = do(t, srv, http.MethodPost, "/api/v1/users/u1/voice/confirm", map[string]bool{"confirm": true})
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAPI_VoiceInterimAndErrors(t *testing.T) {
	srv, _ := testServer(t)

	interim := false
	rr := do(t, srv, http.MethodPost, "/api/v1/users/u1/voice/transcripts", transcriptRequest{Transcript: "add exp", Final: &interim})
	require.Equal(t, http.StatusAccepted, rr.Code)
	var partial eventsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &partial))
	assert.False(t, partial.Executed)
	require.Len(t, partial.Events, 1)
	assert.Equal(t, voice.EventTranscript, partial.Events[0].Type)
	assert.Equal(t, "add exp", partial.Events[0].Transcript)
	assert.False(t, partial.Events[0].Final)

	rr = do(t, srv, http.MethodPost, "/api/v1/users/u1/voice/transcripts", map[string]string{"transcript": "  "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, srv, http.MethodPost, "/api/v1/users/u1/voice/errors", map[string]string{"code": "network"})
	require.Equal(t, http.StatusOK, rr.Code)
	var ev voice.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ev))
	assert.Equal(t, voice.EventError, ev.Type)
	assert.Equal(t, voice.SpeechErrorMessage("network"), ev.Message)

	rr = do(t, srv, http.MethodPost, "/api/v1/users/u1/voice/transcripts", map[string]string{"transcript": "sing me a song"})
	require.Equal(t, http.StatusOK, rr.Code)
	var resp eventsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Executed)
	assert.Equal(t, voice.EventUnknownCommand, resp.Events[len(resp.Events)-1].Type)
}

func TestAPI_VoiceCommands(t *testing.T) {
	srv, _ := testServer(t)

	rr := do(t, srv, http.MethodGet, "/api/v1/voice/commands", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var groups []voice.HelpGroup
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &groups))
	assert.Equal(t, voice.HelpCatalogue(), groups)
}

func TestAPI_CORS(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/users/u1/insights", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	assert.Equal(t, "http://app.test", rr.Header().Get("Access-Control-Allow-Origin"))
}
