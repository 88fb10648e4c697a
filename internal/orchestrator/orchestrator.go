// Package orchestrator sequences one analysis cycle and guarantees that at
// most one cycle runs at a time.
package orchestrator

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"

	"marketmood/internal/aggregator"
	"marketmood/internal/model"
)

// CycleStatus is the outcome of one RunCycle invocation.
type CycleStatus string

const (
	StatusCompleted      CycleStatus = "completed"
	StatusSkippedNoData  CycleStatus = "skipped_no_data"
	StatusSkippedRunning CycleStatus = "skipped_already_running"
)

// CycleResult is what RunCycle hands back on any non-error path.
type CycleResult struct {
	Status  CycleStatus
	Message string
	Result  *model.SaveResult
}

// Collector gathers and classifies the tweet window. Store failures are
// absorbed upstream; an empty result means nothing to analyze.
type Collector interface {
	Collect(ctx context.Context, windowHours int) ([]model.Post, []model.ThreadItem)
}

// Analyzer produces a validated verdict for a batch.
type Analyzer interface {
	Analyze(ctx context.Context, batch model.Batch) (*model.SentimentVerdict, error)
}

// ResultStore persists verdicts and serves history.
type ResultStore interface {
	SaveAnalysis(ctx context.Context, batch model.Batch, verdict *model.SentimentVerdict, meta model.AnalysisMeta) (*model.SaveResult, error)
	RecentAnalyses(ctx context.Context, limit int) ([]model.AnalysisRecord, error)
}

// LatestPublisher receives the serialized result of each completed cycle.
// Publish failures never fail the cycle.
type LatestPublisher func(ctx context.Context, payload string) error

type Orchestrator struct {
	collector Collector
	analyzer  Analyzer
	store     ResultStore
	publish   LatestPublisher
	meta      model.AnalysisMeta

	running atomic.Bool
}

// New wires one orchestrator. publish may be nil.
func New(collector Collector, analyzer Analyzer, store ResultStore, publish LatestPublisher, meta model.AnalysisMeta) *Orchestrator {
	return &Orchestrator{
		collector: collector,
		analyzer:  analyzer,
		store:     store,
		publish:   publish,
		meta:      meta,
	}
}

// RunCycle executes one collect → aggregate → analyze → save sequence.
// If a cycle is already in flight the call returns immediately with a
// skipped outcome and does no work; concurrent triggers are dropped, not
// queued. The running flag is cleared on every exit path.
func (o *Orchestrator) RunCycle(ctx context.Context) (*CycleResult, error) {
	if !o.running.CompareAndSwap(false, true) {
		slog.Info("analysis cycle already running, skipping trigger")
		return &CycleResult{
			Status:  StatusSkippedRunning,
			Message: "analysis cycle already running",
		}, nil
	}
	defer o.running.Store(false)

	posts, threads := o.collector.Collect(ctx, o.meta.WindowHours)
	if len(posts) == 0 && len(threads) == 0 {
		slog.Info("no tweets in window, skipping cycle", "window_hours", o.meta.WindowHours)
		return &CycleResult{
			Status:  StatusSkippedNoData,
			Message: "no new tweets to analyze",
		}, nil
	}

	batch := aggregator.Aggregate(posts, threads)

	verdict, err := o.analyzer.Analyze(ctx, batch)
	if err != nil {
		slog.Error("analysis stage failed, aborting cycle",
			"error", err, "posts", len(posts), "threads", len(threads))
		return nil, err
	}

	result, err := o.store.SaveAnalysis(ctx, batch, verdict, o.meta)
	if err != nil {
		slog.Error("save stage failed, aborting cycle",
			"error", err, "overall_sentiment", verdict.OverallSentiment)
		return nil, err
	}

	slog.Info("analysis cycle completed",
		"analysis_id", result.ID,
		"overall_sentiment", result.OverallSentiment,
		"intensity", result.Intensity,
		"posts", len(posts), "threads", len(threads),
		"total_engagement", batch.TotalEngagement)

	o.publishLatest(ctx, result)

	return &CycleResult{
		Status:  StatusCompleted,
		Message: "analysis completed",
		Result:  result,
	}, nil
}

// GetHistory delegates to the result store.
func (o *Orchestrator) GetHistory(ctx context.Context, limit int) ([]model.AnalysisRecord, error) {
	return o.store.RecentAnalyses(ctx, limit)
}

// IsRunning reports whether a cycle is currently in flight.
func (o *Orchestrator) IsRunning() bool {
	return o.running.Load()
}

func (o *Orchestrator) publishLatest(ctx context.Context, result *model.SaveResult) {
	if o.publish == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		slog.Warn("error serializing latest analysis for publish", "error", err)
		return
	}
	if err := o.publish(ctx, string(payload)); err != nil {
		slog.Warn("error publishing latest analysis", "error", err)
	}
}
