package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, llm LLMClient, renderer ReportRenderer) *chi.Mux {
	t.Helper()
	h := NewHandler(newTestService(t, llm, renderer), zap.NewNop())
	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleChatOK(t *testing.T) {
	r := newTestRouter(t, &mockLLM{}, &mockRenderer{})

	rec := postJSON(t, r, "/chat", ChatRequest{
		Message:      "I'm a 29 year old woman",
		PatientData:  NewPatientRecord(),
		CurrentStage: StageDemographics,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 20, resp.Progress)
	assert.Equal(t, StageSymptoms, resp.CurrentStage)
	assert.Equal(t, 29, resp.UpdatedPatientData.Demographics.Age)
}

func TestHandleChatDefaultsEmptyStage(t *testing.T) {
	r := newTestRouter(t, &mockLLM{}, &mockRenderer{})

	rec := postJSON(t, r, "/chat", map[string]any{
		"message":     "I'm a 29 year old woman",
		"patientData": NewPatientRecord(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StageSymptoms, resp.CurrentStage)
}

func TestHandleChatBadBody(t *testing.T) {
	r := newTestRouter(t, &mockLLM{}, &mockRenderer{})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["error"])
}

func TestHandleChatUnknownStage(t *testing.T) {
	r := newTestRouter(t, &mockLLM{}, &mockRenderer{})

	rec := postJSON(t, r, "/chat", ChatRequest{
		Message:      "hello",
		PatientData:  NewPatientRecord(),
		CurrentStage: Stage("triage"),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChatLLMFailure(t *testing.T) {
	r := newTestRouter(t, &mockLLM{
		ChatFunc: func(context.Context, string, []Message, string, string) (string, error) {
			return "", errors.New("upstream unavailable")
		},
	}, &mockRenderer{})

	rec := postJSON(t, r, "/chat", ChatRequest{
		Message:      "hello",
		PatientData:  NewPatientRecord(),
		CurrentStage: StageDemographics,
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Failed to process request", resp["error"])
}

func TestHandleReportOK(t *testing.T) {
	r := newTestRouter(t, &mockLLM{}, &mockRenderer{})

	rec := postJSON(t, r, "/report", ReportRequest{PatientData: NewPatientRecord()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "health-screening-report.pdf")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestHandleReportFailure(t *testing.T) {
	r := newTestRouter(t, &mockLLM{
		ReportAnalysisFunc: func(context.Context, string, string) (string, error) {
			return "", errors.New("rate limited")
		},
	}, &mockRenderer{})

	rec := postJSON(t, r, "/report", ReportRequest{PatientData: NewPatientRecord()})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Failed to generate report", resp["error"])
}
