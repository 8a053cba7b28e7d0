package puzzle

import (
	"context"
	"strings"
	"testing"

	"ai-quizforge-be/pkg/llm"
)

// scriptedProvider returns canned responses keyed by a substring of the prompt.
type scriptedProvider struct {
	responses map[string]string
}

func (s *scriptedProvider) respond(prompt string) (*llm.Result, error) {
	for key, content := range s.responses {
		if strings.Contains(prompt, key) {
			return &llm.Result{Content: content, Usage: llm.Usage{InputTokens: 10, OutputTokens: 20}}, nil
		}
	}
	return &llm.Result{Content: "no script for prompt"}, nil
}

func (s *scriptedProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (*llm.Result, error) {
	return s.respond(history[len(history)-1].Content)
}

func (s *scriptedProvider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Result, error) {
	return s.Chat(ctx, history, opts...)
}

func (s *scriptedProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (*llm.Result, error) {
	return s.respond(prompt)
}

func TestPipelineRun(t *testing.T) {
	provider := &scriptedProvider{responses: map[string]string{
		"Break down": `{"knowledge_point": "French Revolution", "sub_points": [
			{"content": "Robespierre", "category": "person", "recommended_types": ["clue"]},
			{"content": "Key dates", "category": "time", "recommended_types": ["matching"]}
		]}`,
		"guessing game": `{"answer": "Robespierre", "clues": ["Led the Terror", "Jacobin", "Guillotined 1794"], "explanation": "..."}`,
		// The matching response is structurally invalid: one left item.
		"matching puzzle": `{"left_items": [{"id": "l1", "content": "1789"}], "right_items": [{"id": "r1", "content": "Bastille"}, {"id": "r2", "content": "Terror"}], "correct_pairs": [{"left_id": "l1", "right_id": "r1"}]}`,
	}}

	pipeline := NewPipeline(NewGenerator(provider, "openai/gpt-4o"))

	var logs []Log
	result, err := pipeline.Run(context.Background(), PipelineRequest{
		KnowledgePoint: "French Revolution",
		Difficulty:     DifficultyMedium,
		Language:       "en",
	}, func(l Log) { logs = append(logs, l) })

	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Questions) != 1 {
		t.Fatalf("expected 1 question (matching step invalid), got %d", len(result.Questions))
	}
	if result.Questions[0].Type != TypeClue {
		t.Errorf("question type = %s, want clue", result.Questions[0].Type)
	}
	if len(result.Breakdown.SubPoints) != 2 {
		t.Errorf("breakdown sub-points = %d, want 2", len(result.Breakdown.SubPoints))
	}

	// Expected step sequence: breakdown running/success, generate[0]
	// running/success, generate[1] running/error, terminal complete record.
	var steps []string
	for _, l := range logs {
		steps = append(steps, l.Step+":"+string(l.Status))
	}
	want := []string{
		"breakdown:running", "breakdown:success",
		"generate[0]:running", "generate[0]:success",
		"generate[1]:running", "generate[1]:error",
		"complete:success",
	}
	if len(steps) != len(want) {
		t.Fatalf("log sequence %v, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("log[%d] = %s, want %s", i, steps[i], want[i])
		}
	}

	final := logs[len(logs)-1]
	if final.Result == nil || len(final.Result.Questions) != 1 {
		t.Error("terminal log record should carry the complete result payload")
	}
	errLog := logs[5]
	if errLog.Error == "" {
		t.Error("failed step should carry its error message")
	}
}

func TestPipelineBreakdownFailure(t *testing.T) {
	provider := &scriptedProvider{responses: map[string]string{
		"Break down": `not json at all`,
	}}
	pipeline := NewPipeline(NewGenerator(provider, "openai/gpt-4o"))

	var logs []Log
	_, err := pipeline.Run(context.Background(), PipelineRequest{
		KnowledgePoint: "X",
		Difficulty:     DifficultyEasy,
		Language:       "en",
	}, func(l Log) { logs = append(logs, l) })

	if err == nil {
		t.Fatal("expected error when breakdown fails")
	}
	last := logs[len(logs)-1]
	if last.Step != "breakdown" || last.Status != LogError {
		t.Errorf("last log = %s:%s, want breakdown:error", last.Step, last.Status)
	}
}
