package model

import "time"

// Sentiment levels the model is asked to choose between.
const (
	SentimentVeryBearish = "very_bearish"
	SentimentBearish     = "bearish"
	SentimentNeutral     = "neutral"
	SentimentBullish     = "bullish"
	SentimentVeryBullish = "very_bullish"
)

// Intensity levels.
const (
	IntensityLow      = "low"
	IntensityModerate = "moderate"
	IntensityHigh     = "high"
	IntensityExtreme  = "extreme"
)

// SentimentLevels lists the accepted overall_sentiment values.
var SentimentLevels = []string{
	SentimentVeryBearish,
	SentimentBearish,
	SentimentNeutral,
	SentimentBullish,
	SentimentVeryBullish,
}

// IntensityLevels lists the accepted sentiment_intensity values.
var IntensityLevels = []string{
	IntensityLow,
	IntensityModerate,
	IntensityHigh,
	IntensityExtreme,
}

// SentimentVerdict is the structured judgment parsed out of the LLM answer.
// OverallSentiment, SentimentIntensity, Analysis and Summary must all be
// present after parsing; CreatedAt is defaulted when the model omits it.
type SentimentVerdict struct {
	OverallSentiment   string    `json:"overall_sentiment"`
	SentimentIntensity string    `json:"sentiment_intensity"`
	Analysis           string    `json:"analysis"`
	Summary            string    `json:"summary"`
	KeyEvents          []string  `json:"key_events"`
	CreatedAt          time.Time `json:"createdAt"`
}

// InputSummary describes what went into one analysis.
type InputSummary struct {
	TweetsAnalyzed  int `json:"tweetsAnalyzed"`
	ThreadsAnalyzed int `json:"threadsAnalyzed"`
	TotalEngagement int `json:"totalEngagement"`
	TimeRangeHours  int `json:"timeRangeHours"`
}

// AnalysisRecord is one persisted analysis with provenance. Records are
// append-only and retrieved newest-first.
type AnalysisRecord struct {
	ID             int64
	ServerTime     time.Time
	AnalysisTime   time.Time
	InputData      InputSummary
	Verdict        SentimentVerdict
	ServiceVersion string
	Model          string
	Provider       string
}

// SaveResult is what a completed cycle hands back to its caller.
type SaveResult struct {
	ID               int64     `json:"id"`
	AnalysisTime     time.Time `json:"analysis_time"`
	OverallSentiment string    `json:"overall_sentiment"`
	Intensity        string    `json:"sentiment_intensity"`
	VerdictCreatedAt time.Time `json:"verdict_created_at"`
}

// AnalysisMeta carries the provenance recorded alongside each verdict.
type AnalysisMeta struct {
	Provider    string
	Model       string
	WindowHours int
}
