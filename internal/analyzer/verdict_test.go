package analyzer

import (
	"errors"
	"testing"
)

const validVerdictJSON = `{
	"overall_sentiment": "bullish",
	"sentiment_intensity": "moderate",
	"analysis": "Positive reaction to the ETF inflows.",
	"summary": "Cautiously bullish on inflows.",
	"key_events": ["ETF inflows", "exchange outage resolved"]
}`

func TestParseVerdict_PlainJSON(t *testing.T) {
	verdict, err := ParseVerdict(validVerdictJSON)
	if err != nil {
		t.Fatalf("ParseVerdict: %v", err)
	}
	if verdict.OverallSentiment != "bullish" {
		t.Errorf("OverallSentiment = %q", verdict.OverallSentiment)
	}
	if len(verdict.KeyEvents) != 2 {
		t.Errorf("KeyEvents = %v", verdict.KeyEvents)
	}
}

func TestParseVerdict_FencedBlockWinsOverCommentary(t *testing.T) {
	answer := "Here is my judgment of the market:\n\n```json\n" + validVerdictJSON + "\n```\n\nLet me know if you need more detail."

	verdict, err := ParseVerdict(answer)
	if err != nil {
		t.Fatalf("ParseVerdict: %v", err)
	}
	if verdict.SentimentIntensity != "moderate" {
		t.Errorf("SentimentIntensity = %q", verdict.SentimentIntensity)
	}
}

func TestParseVerdict_MalformedJSON(t *testing.T) {
	_, err := ParseVerdict("the market feels bullish today")
	if !errors.Is(err, ErrVerdictParse) {
		t.Errorf("err = %v, want ErrVerdictParse", err)
	}
}

func TestParseVerdict_MalformedFencedBlock(t *testing.T) {
	_, err := ParseVerdict("```json\n{not valid\n```")
	if !errors.Is(err, ErrVerdictParse) {
		t.Errorf("err = %v, want ErrVerdictParse", err)
	}
}

func TestParseVerdict_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "missing overall_sentiment",
			input: `{"sentiment_intensity":"low","analysis":"a","summary":"s"}`,
		},
		{
			name:  "missing sentiment_intensity",
			input: `{"overall_sentiment":"neutral","analysis":"a","summary":"s"}`,
		},
		{
			name:  "missing analysis",
			input: `{"overall_sentiment":"neutral","sentiment_intensity":"low","summary":"s"}`,
		},
		{
			name:  "missing summary",
			input: `{"overall_sentiment":"neutral","sentiment_intensity":"low","analysis":"a"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVerdict(tt.input)
			if !errors.Is(err, ErrVerdictValidation) {
				t.Errorf("err = %v, want ErrVerdictValidation", err)
			}
		})
	}
}
