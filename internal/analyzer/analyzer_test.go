package analyzer

import (
	"context"
	"errors"
	"testing"

	"marketmood/internal/model"
	"marketmood/internal/prompt"
	"marketmood/pkg/llm"
)

type fakeProvider struct {
	answer string
	err    error
	calls  int
	user   string
}

func (f *fakeProvider) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.user = user
	return f.answer, f.err
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ModelName() string { return "fake-model" }

func testBatch() model.Batch {
	return model.Batch{
		Posts: []model.Post{{Username: "a", Text: "btc to the moon", Likes: 5}},
	}
}

func TestAnalyze_DefaultsCreatedAt(t *testing.T) {
	provider := &fakeProvider{answer: validVerdictJSON}
	a := New(provider, prompt.NewBuilder())

	verdict, err := a.Analyze(context.Background(), testBatch())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if verdict.CreatedAt.IsZero() {
		t.Error("CreatedAt should be defaulted when absent from the answer")
	}
}

func TestAnalyze_PromptReachesProvider(t *testing.T) {
	provider := &fakeProvider{answer: validVerdictJSON}
	a := New(provider, prompt.NewBuilder())

	if _, err := a.Analyze(context.Background(), testBatch()); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
	if provider.user == "" {
		t.Error("rendered prompt not passed to provider")
	}
}

func TestAnalyze_ProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.Join(llm.ErrProvider, errors.New("timeout"))}
	a := New(provider, prompt.NewBuilder())

	_, err := a.Analyze(context.Background(), testBatch())
	if !errors.Is(err, llm.ErrProvider) {
		t.Errorf("err = %v, want ErrProvider", err)
	}
}

func TestAnalyze_IncompleteAnswer(t *testing.T) {
	provider := &fakeProvider{answer: `{"overall_sentiment":"bullish"}`}
	a := New(provider, prompt.NewBuilder())

	_, err := a.Analyze(context.Background(), testBatch())
	if !errors.Is(err, ErrVerdictValidation) {
		t.Errorf("err = %v, want ErrVerdictValidation", err)
	}
}
