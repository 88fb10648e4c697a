package model

import "time"

// RawTweet is one collected tweet row as stored by the ingestion service.
// Rows are read-only from this service's point of view.
type RawTweet struct {
	ID             string
	Username       string
	Text           string
	FullText       string
	CombinedText   string
	CreatedAt      time.Time
	CollectedAt    time.Time
	Likes          int
	Retweets       int
	Replies        int
	Quotes         int
	Views          int
	Hashtags       []string
	Mentions       []string
	IsThread       bool
	ThreadID       string
	ThreadPosition int
	TotalParts     int
}

// Post is a standalone tweet normalized for analysis.
type Post struct {
	ID             string
	Username       string
	Text           string
	CreatedAt      time.Time
	CollectedAt    time.Time
	Likes          int
	Retweets       int
	Replies        int
	Quotes         int
	Views          int
	Hashtags       []string
	Mentions       []string
	IsThread       bool
	ThreadID       string
	ThreadPosition int
}

// ThreadItem is a multi-part tweet pre-merged into one combined-text record.
// Thread items carry no reply count; the ingestion service does not record
// replies per thread.
type ThreadItem struct {
	ID          string
	Username    string
	Text        string
	TotalParts  int
	CreatedAt   time.Time
	CollectedAt time.Time
	Likes       int
	Retweets    int
	Hashtags    []string
	Mentions    []string
}

// Batch is the per-cycle collection of classified items plus engagement
// totals. Built fresh each run, never persisted.
type Batch struct {
	Posts           []Post
	ThreadItems     []ThreadItem
	TotalEngagement int
	TotalLikes      int
	TotalRetweets   int
}

// Empty reports whether the batch holds nothing to analyze.
func (b Batch) Empty() bool {
	return len(b.Posts) == 0 && len(b.ThreadItems) == 0
}
