// Package aggregator reduces classified tweets into the engagement totals
// fed to the prompt builder.
package aggregator

import "marketmood/internal/model"

// Aggregate builds the per-cycle batch. Pure and deterministic; empty
// inputs yield all-zero totals.
//
// Thread items contribute likes+retweets only. Posts additionally count
// replies; thread items have no reply count in the source data.
func Aggregate(posts []model.Post, threads []model.ThreadItem) model.Batch {
	batch := model.Batch{
		Posts:       posts,
		ThreadItems: threads,
	}

	for _, p := range posts {
		batch.TotalLikes += p.Likes
		batch.TotalRetweets += p.Retweets
		batch.TotalEngagement += p.Likes + p.Retweets + p.Replies
	}

	for _, t := range threads {
		batch.TotalLikes += t.Likes
		batch.TotalRetweets += t.Retweets
		batch.TotalEngagement += t.Likes + t.Retweets
	}

	return batch
}
