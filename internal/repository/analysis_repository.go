package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"marketmood/internal/config"
	"marketmood/internal/model"
)

// ErrStorage marks persistence failures. A verdict that cannot be saved
// must fail the whole cycle, so these are never swallowed.
var ErrStorage = errors.New("analysis storage error")

const defaultHistoryLimit = 10

type AnalysisRepository struct {
	db    *sql.DB
	table string
}

// NewAnalysisRepository writes to and reads from the given results table.
// The table name comes from configuration, so it is quoted rather than
// interpolated raw.
func NewAnalysisRepository(db *sql.DB, table string) *AnalysisRepository {
	if table == "" {
		table = "sentiment_analyses"
	}
	return &AnalysisRepository{db: db, table: pq.QuoteIdentifier(table)}
}

// SaveAnalysis appends one analysis record built from the batch and the
// verdict, returning the caller-facing summary of what was written. The
// server timestamp is assigned by the database.
func (r *AnalysisRepository) SaveAnalysis(ctx context.Context, batch model.Batch, verdict *model.SentimentVerdict, meta model.AnalysisMeta) (*model.SaveResult, error) {
	keyEvents, err := json.Marshal(verdict.KeyEvents)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding key events: %w", ErrStorage, err)
	}

	analysisTime := time.Now().UTC()

	var id int64
	err = r.db.QueryRowContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			analysis_time,
			tweets_analyzed, threads_analyzed, total_engagement, time_range_hours,
			overall_sentiment, sentiment_intensity, analysis, summary, key_events, verdict_created_at,
			service_version, model, provider
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`, r.table),
		analysisTime,
		len(batch.Posts), len(batch.ThreadItems), batch.TotalEngagement, meta.WindowHours,
		verdict.OverallSentiment, verdict.SentimentIntensity, verdict.Analysis, verdict.Summary, keyEvents, verdict.CreatedAt,
		config.ServiceVersion, meta.Model, meta.Provider,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("%w: inserting analysis: %w", ErrStorage, err)
	}

	return &model.SaveResult{
		ID:               id,
		AnalysisTime:     analysisTime,
		OverallSentiment: verdict.OverallSentiment,
		Intensity:        verdict.SentimentIntensity,
		VerdictCreatedAt: verdict.CreatedAt,
	}, nil
}

// RecentAnalyses returns up to limit records, newest insertion first.
// A non-positive limit falls back to the default of 10.
func (r *AnalysisRepository) RecentAnalyses(ctx context.Context, limit int) ([]model.AnalysisRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, created_at, analysis_time,
		       tweets_analyzed, threads_analyzed, total_engagement, time_range_hours,
		       overall_sentiment, sentiment_intensity, analysis, summary, key_events, verdict_created_at,
		       service_version, model, provider
		FROM %s
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, r.table), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying history: %w", ErrStorage, err)
	}
	defer rows.Close()

	var records []model.AnalysisRecord
	for rows.Next() {
		var rec model.AnalysisRecord
		var keyEventsJSON []byte
		err := rows.Scan(
			&rec.ID, &rec.ServerTime, &rec.AnalysisTime,
			&rec.InputData.TweetsAnalyzed, &rec.InputData.ThreadsAnalyzed,
			&rec.InputData.TotalEngagement, &rec.InputData.TimeRangeHours,
			&rec.Verdict.OverallSentiment, &rec.Verdict.SentimentIntensity,
			&rec.Verdict.Analysis, &rec.Verdict.Summary, &keyEventsJSON, &rec.Verdict.CreatedAt,
			&rec.ServiceVersion, &rec.Model, &rec.Provider,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning history row: %w", ErrStorage, err)
		}
		if err := json.Unmarshal(keyEventsJSON, &rec.Verdict.KeyEvents); err != nil {
			return nil, fmt.Errorf("%w: decoding key events: %w", ErrStorage, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading history rows: %w", ErrStorage, err)
	}

	return records, nil
}
