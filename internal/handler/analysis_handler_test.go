package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"marketmood/internal/config"
	"marketmood/internal/model"
	"marketmood/internal/orchestrator"
)

type fakeRunner struct {
	outcome *orchestrator.CycleResult
	runErr  error
	history []model.AnalysisRecord
	histErr error
	running bool
	limit   int
}

func (f *fakeRunner) RunCycle(ctx context.Context) (*orchestrator.CycleResult, error) {
	return f.outcome, f.runErr
}

func (f *fakeRunner) GetHistory(ctx context.Context, limit int) ([]model.AnalysisRecord, error) {
	f.limit = limit
	return f.history, f.histErr
}

func (f *fakeRunner) IsRunning() bool { return f.running }

func testConfig() *config.Config {
	return &config.Config{
		Port:          "8080",
		LLMProvider:   config.ProviderOpenAI,
		LookbackHours: 6,
		CronSchedule:  "58 * * * *",
		ResultsTable:  "sentiment_analyses",
	}
}

func newTestRouter(runner CycleRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAnalysisHandler(runner, testConfig(), model.AnalysisMeta{Provider: "openai", Model: "gpt-4o-mini", WindowHours: 6})
	r.GET("/", h.GetRoot)
	r.POST("/analyze", h.Analyze)
	r.GET("/history", h.GetHistory)
	r.GET("/status", h.GetStatus)
	return r
}

func TestGetRoot(t *testing.T) {
	r := newTestRouter(&fakeRunner{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res RootResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "marketmood", res.Service)
}

func TestAnalyze_Completed(t *testing.T) {
	runner := &fakeRunner{outcome: &orchestrator.CycleResult{
		Status:  orchestrator.StatusCompleted,
		Message: "analysis completed",
		Result: &model.SaveResult{
			ID:               7,
			AnalysisTime:     time.Now(),
			OverallSentiment: model.SentimentBullish,
			Intensity:        model.IntensityHigh,
			VerdictCreatedAt: time.Now(),
		},
	}}

	r := newTestRouter(runner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/analyze", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res AnalyzeResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, true, res.Success)
	assert.NotEqual(t, nil, res.Result)
	assert.Equal(t, int64(7), res.Result.ID)
	assert.Equal(t, model.SentimentBullish, res.Result.OverallSentiment)
}

func TestAnalyze_SkippedNoData(t *testing.T) {
	runner := &fakeRunner{outcome: &orchestrator.CycleResult{
		Status:  orchestrator.StatusSkippedNoData,
		Message: "no new tweets to analyze",
	}}

	r := newTestRouter(runner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/analyze", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res AnalyzeResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, true, res.Success)
	assert.Equal(t, nil, res.Result)
	assert.Equal(t, "no new tweets to analyze", res.Message)
}

func TestAnalyze_CycleError(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("provider timeout")}

	r := newTestRouter(runner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/analyze", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var res map[string]any
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, false, res["success"])
	assert.Equal(t, "provider timeout", res["error"])
}

func TestGetHistory(t *testing.T) {
	now := time.Now()
	runner := &fakeRunner{history: []model.AnalysisRecord{
		{
			ID:           2,
			ServerTime:   now,
			AnalysisTime: now,
			Verdict: model.SentimentVerdict{
				OverallSentiment:   model.SentimentNeutral,
				SentimentIntensity: model.IntensityLow,
				Analysis:           "Quiet weekend.",
				Summary:            "Nothing moving.",
				CreatedAt:          now,
			},
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		{
			ID:           1,
			ServerTime:   now.Add(-time.Hour),
			AnalysisTime: now.Add(-time.Hour),
			Verdict: model.SentimentVerdict{
				OverallSentiment:   model.SentimentBearish,
				SentimentIntensity: model.IntensityModerate,
				Analysis:           "Exchange fears.",
				Summary:            "Bearish on exchange news.",
				CreatedAt:          now.Add(-time.Hour),
			},
		},
	}}

	r := newTestRouter(runner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/history?limit=5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, runner.limit)

	var res HistoryResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, true, res.Success)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, model.SentimentNeutral, res.Analyses[0].OverallSentiment)
}

func TestGetHistory_DefaultLimit(t *testing.T) {
	runner := &fakeRunner{}

	r := newTestRouter(runner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/history", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, runner.limit)
}

func TestGetHistory_StoreError(t *testing.T) {
	runner := &fakeRunner{histErr: errors.New("DB down")}

	r := newTestRouter(runner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/history", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetStatus(t *testing.T) {
	runner := &fakeRunner{running: true}

	r := newTestRouter(runner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/status", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res StatusResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, true, res.IsRunning)
	assert.Equal(t, 6, res.Configuration.LookbackHours)
	assert.Equal(t, "58 * * * *", res.Configuration.CronSchedule)
	assert.Equal(t, "gpt-4o-mini", res.Configuration.Model)
}
