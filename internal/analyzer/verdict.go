package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"marketmood/internal/model"
)

// ErrVerdictParse marks a model answer that is not valid JSON.
var ErrVerdictParse = errors.New("verdict parse error")

// ErrVerdictValidation marks a structurally valid answer missing required
// fields.
var ErrVerdictValidation = errors.New("verdict validation error")

var fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// ParseVerdict decodes the model answer in two stages: if the answer
// contains a fenced json block, only the block's contents are parsed and
// any surrounding commentary is ignored; otherwise the whole answer is
// parsed. The decoded verdict is then checked for the required fields.
func ParseVerdict(answer string) (*model.SentimentVerdict, error) {
	payload := strings.TrimSpace(answer)
	if m := fencedJSONRe.FindStringSubmatch(payload); m != nil {
		payload = strings.TrimSpace(m[1])
	}

	var verdict model.SentimentVerdict
	if err := json.Unmarshal([]byte(payload), &verdict); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerdictParse, err)
	}

	var missing []string
	if verdict.OverallSentiment == "" {
		missing = append(missing, "overall_sentiment")
	}
	if verdict.SentimentIntensity == "" {
		missing = append(missing, "sentiment_intensity")
	}
	if verdict.Analysis == "" {
		missing = append(missing, "analysis")
	}
	if verdict.Summary == "" {
		missing = append(missing, "summary")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields: %s", ErrVerdictValidation, strings.Join(missing, ", "))
	}

	return &verdict, nil
}
