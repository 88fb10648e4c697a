package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"marketmood/internal/model"
)

type TweetRepository struct {
	db *sql.DB
}

func NewTweetRepository(db *sql.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

// TweetsSince returns every tweet collected at or after cutoff, newest
// collection first. There is deliberately no LIMIT: a cycle analyzes the
// whole window.
func (r *TweetRepository) TweetsSince(ctx context.Context, cutoff time.Time) ([]model.RawTweet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username,
		       COALESCE(text, ''), COALESCE(full_text, ''), COALESCE(combined_text, ''),
		       created_at, collected_at,
		       COALESCE(likes, 0), COALESCE(retweets, 0), COALESCE(replies, 0),
		       COALESCE(quotes, 0), COALESCE(views, 0),
		       COALESCE(hashtags, '[]'), COALESCE(mentions, '[]'),
		       COALESCE(is_thread, false), COALESCE(thread_id, ''),
		       COALESCE(thread_position, 0), COALESCE(total_parts, 0)
		FROM tweets
		WHERE collected_at >= $1
		ORDER BY collected_at DESC
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tweets []model.RawTweet
	for rows.Next() {
		var t model.RawTweet
		var hashtagsJSON, mentionsJSON []byte
		err := rows.Scan(
			&t.ID, &t.Username,
			&t.Text, &t.FullText, &t.CombinedText,
			&t.CreatedAt, &t.CollectedAt,
			&t.Likes, &t.Retweets, &t.Replies,
			&t.Quotes, &t.Views,
			&hashtagsJSON, &mentionsJSON,
			&t.IsThread, &t.ThreadID,
			&t.ThreadPosition, &t.TotalParts,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(hashtagsJSON, &t.Hashtags); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(mentionsJSON, &t.Mentions); err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tweets, nil
}
