package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"marketmood/internal/config"
	"marketmood/internal/model"
	"marketmood/internal/orchestrator"
)

// CycleRunner is the orchestrator surface the API needs.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*orchestrator.CycleResult, error)
	GetHistory(ctx context.Context, limit int) ([]model.AnalysisRecord, error)
	IsRunning() bool
}

type AnalysisHandler struct {
	runner    CycleRunner
	cfg       *config.Config
	meta      model.AnalysisMeta
	startedAt time.Time
}

func NewAnalysisHandler(runner CycleRunner, cfg *config.Config, meta model.AnalysisMeta) *AnalysisHandler {
	return &AnalysisHandler{
		runner:    runner,
		cfg:       cfg,
		meta:      meta,
		startedAt: time.Now(),
	}
}

// GetRoot serves the service descriptor.
func (h *AnalysisHandler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Service: "marketmood",
		Version: config.ServiceVersion,
		Endpoints: map[string]string{
			"POST /analyze": "trigger one analysis cycle",
			"GET /history":  "recent analyses, newest first (?limit=N)",
			"GET /status":   "running flag, configuration and uptime",
		},
	})
}

// Analyze triggers one cycle synchronously and reports its outcome. Skip
// outcomes (already running, no data) are successes with a null result;
// only thrown errors map to 500.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	outcome, err := h.runner.RunCycle(c.Request.Context())
	if err != nil {
		slog.Error("error running analysis cycle", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "analysis cycle failed",
			"error":   err.Error(),
		})
		return
	}

	res := AnalyzeResponse{
		Success: true,
		Message: outcome.Message,
	}
	if outcome.Result != nil {
		r := toSaveResultResponse(*outcome.Result)
		res.Result = &r
	}
	c.JSON(http.StatusOK, res)
}

// GetHistory returns the most recent analyses, newest first.
func (h *AnalysisHandler) GetHistory(c *gin.Context) {
	limit := getQueryInt("limit", 10, c)

	records, err := h.runner.GetHistory(c.Request.Context(), limit)
	if err != nil {
		slog.Error("error fetching analysis history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to fetch history",
			"error":   err.Error(),
		})
		return
	}

	analyses := make([]AnalysisResponse, 0, len(records))
	for _, rec := range records {
		analyses = append(analyses, toAnalysisResponse(rec))
	}

	c.JSON(http.StatusOK, HistoryResponse{
		Success:  true,
		Count:    len(analyses),
		Analyses: analyses,
	})
}

// GetStatus reports the running flag, configuration, and uptime.
func (h *AnalysisHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		IsRunning: h.runner.IsRunning(),
		Configuration: ConfigurationResponse{
			Provider:      h.meta.Provider,
			Model:         h.meta.Model,
			LookbackHours: h.cfg.LookbackHours,
			CronSchedule:  h.cfg.CronSchedule,
			ResultsTable:  h.cfg.ResultsTable,
		},
		Uptime: time.Since(h.startedAt).Round(time.Second).String(),
	})
}

func getQueryInt(key string, fallback int, c *gin.Context) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
