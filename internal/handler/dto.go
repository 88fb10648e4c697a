package handler

import (
	"time"

	"marketmood/internal/model"
)

type RootResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type AnalyzeResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Result  *SaveResultResponse `json:"result"`
}

type SaveResultResponse struct {
	ID               int64  `json:"id"`
	AnalysisTime     string `json:"analysis_time"`
	OverallSentiment string `json:"overall_sentiment"`
	Intensity        string `json:"sentiment_intensity"`
	VerdictCreatedAt string `json:"verdict_created_at"`
}

type HistoryResponse struct {
	Success  bool               `json:"success"`
	Count    int                `json:"count"`
	Analyses []AnalysisResponse `json:"analyses"`
}

type AnalysisResponse struct {
	ID                 int64              `json:"id"`
	ServerTime         string             `json:"server_time"`
	AnalysisTime       string             `json:"analysis_time"`
	InputData          model.InputSummary `json:"input_data"`
	OverallSentiment   string             `json:"overall_sentiment"`
	SentimentIntensity string             `json:"sentiment_intensity"`
	Analysis           string             `json:"analysis"`
	Summary            string             `json:"summary"`
	KeyEvents          []string           `json:"key_events"`
	VerdictCreatedAt   string             `json:"verdict_created_at"`
	ServiceVersion     string             `json:"service_version"`
	Model              string             `json:"model"`
	Provider           string             `json:"provider"`
}

type StatusResponse struct {
	IsRunning     bool                  `json:"isRunning"`
	Configuration ConfigurationResponse `json:"configuration"`
	Uptime        string                `json:"uptime"`
}

type ConfigurationResponse struct {
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	LookbackHours int    `json:"lookback_hours"`
	CronSchedule  string `json:"cron_schedule"`
	ResultsTable  string `json:"results_table"`
}

func toSaveResultResponse(r model.SaveResult) SaveResultResponse {
	return SaveResultResponse{
		ID:               r.ID,
		AnalysisTime:     r.AnalysisTime.Format(time.RFC3339),
		OverallSentiment: r.OverallSentiment,
		Intensity:        r.Intensity,
		VerdictCreatedAt: r.VerdictCreatedAt.Format(time.RFC3339),
	}
}

func toAnalysisResponse(rec model.AnalysisRecord) AnalysisResponse {
	keyEvents := rec.Verdict.KeyEvents
	if keyEvents == nil {
		keyEvents = []string{}
	}
	return AnalysisResponse{
		ID:                 rec.ID,
		ServerTime:         rec.ServerTime.Format(time.RFC3339),
		AnalysisTime:       rec.AnalysisTime.Format(time.RFC3339),
		InputData:          rec.InputData,
		OverallSentiment:   rec.Verdict.OverallSentiment,
		SentimentIntensity: rec.Verdict.SentimentIntensity,
		Analysis:           rec.Verdict.Analysis,
		Summary:            rec.Verdict.Summary,
		KeyEvents:          keyEvents,
		VerdictCreatedAt:   rec.Verdict.CreatedAt.Format(time.RFC3339),
		ServiceVersion:     rec.ServiceVersion,
		Model:              rec.Model,
		Provider:           rec.Provider,
	}
}
