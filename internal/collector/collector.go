// Package collector reads the recent tweet window and classifies each row
// into a standalone post or a merged thread item.
package collector

import (
	"context"
	"log/slog"
	"time"

	"marketmood/internal/model"
)

// TweetSource is the read side of the tweet store.
type TweetSource interface {
	TweetsSince(ctx context.Context, cutoff time.Time) ([]model.RawTweet, error)
}

type Collector struct {
	source TweetSource
}

func New(source TweetSource) *Collector {
	return &Collector{source: source}
}

// Collect returns the classified posts and thread items collected within
// the last windowHours. Store failures are absorbed: the caller sees an
// empty result and treats it as "nothing to analyze", never as an error.
func (c *Collector) Collect(ctx context.Context, windowHours int) ([]model.Post, []model.ThreadItem) {
	cutoff := time.Now().UTC().Add(-time.Duration(windowHours) * time.Hour)

	tweets, err := c.source.TweetsSince(ctx, cutoff)
	if err != nil {
		slog.Error("error reading tweets from store, continuing with empty batch",
			"error", err, "window_hours", windowHours)
		return nil, nil
	}

	var posts []model.Post
	var threads []model.ThreadItem

	for _, t := range tweets {
		if t.TotalParts > 1 {
			threads = append(threads, classifyThread(t))
		} else {
			posts = append(posts, classifyPost(t))
		}
	}

	slog.Info("collected tweets",
		"total", len(tweets), "posts", len(posts), "threads", len(threads),
		"window_hours", windowHours)

	return posts, threads
}

// classifyThread merges a multi-part tweet. Combined text preference:
// combined_text, then full_text, then text.
func classifyThread(t model.RawTweet) model.ThreadItem {
	return model.ThreadItem{
		ID:          t.ID,
		Username:    t.Username,
		Text:        firstNonEmpty(t.CombinedText, t.FullText, t.Text),
		TotalParts:  t.TotalParts,
		CreatedAt:   t.CreatedAt,
		CollectedAt: t.CollectedAt,
		Likes:       t.Likes,
		Retweets:    t.Retweets,
		Hashtags:    emptyIfNil(t.Hashtags),
		Mentions:    emptyIfNil(t.Mentions),
	}
}

func classifyPost(t model.RawTweet) model.Post {
	return model.Post{
		ID:             t.ID,
		Username:       t.Username,
		Text:           firstNonEmpty(t.Text, t.FullText),
		CreatedAt:      t.CreatedAt,
		CollectedAt:    t.CollectedAt,
		Likes:          t.Likes,
		Retweets:       t.Retweets,
		Replies:        t.Replies,
		Quotes:         t.Quotes,
		Views:          t.Views,
		Hashtags:       emptyIfNil(t.Hashtags),
		Mentions:       emptyIfNil(t.Mentions),
		IsThread:       t.IsThread,
		ThreadID:       t.ThreadID,
		ThreadPosition: t.ThreadPosition,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
