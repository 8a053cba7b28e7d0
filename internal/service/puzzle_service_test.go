package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"ai-quizforge-be/internal/dto"
	"ai-quizforge-be/internal/pkg/apperror"
	"ai-quizforge-be/pkg/llm"
	"ai-quizforge-be/pkg/puzzle"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// promptKeyedProvider answers with the canned response whose key appears in
// the prompt.
type promptKeyedProvider struct {
	responses map[string]string
}

func (p *promptKeyedProvider) respond(prompt string) (*llm.Result, error) {
	for key, content := range p.responses {
		if strings.Contains(prompt, key) {
			return &llm.Result{Content: content, Usage: llm.Usage{InputTokens: 10, OutputTokens: 20}}, nil
		}
	}
	return &llm.Result{Content: "no script for prompt"}, nil
}

func (p *promptKeyedProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (*llm.Result, error) {
	return p.respond(prompt)
}

func (p *promptKeyedProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (*llm.Result, error) {
	return p.respond(history[len(history)-1].Content)
}

func (p *promptKeyedProvider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Result, error) {
	return p.Chat(ctx, history, opts...)
}

func newPuzzleService(provider llm.LLMProvider) IPuzzleService {
	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	generator := puzzle.NewGenerator(provider, "openai/gpt-4o")
	return NewPuzzleService(generator, pubSub, nopLogger{})
}

func collectLogs(t *testing.T, msgs <-chan *message.Message) []puzzle.Log {
	t.Helper()
	var records []puzzle.Log
	timeout := time.After(5 * time.Second)
	for {
		select {
		case msg := <-msgs:
			var record puzzle.Log
			require.NoError(t, json.Unmarshal(msg.Payload, &record))
			msg.Ack()
			records = append(records, record)
			if record.Step == "complete" || (record.Step == "breakdown" && record.Status == puzzle.LogError) {
				return records
			}
		case <-timeout:
			t.Fatal("timed out waiting for terminal pipeline record")
		}
	}
}

func TestPuzzlePipelineStream(t *testing.T) {
	provider := &promptKeyedProvider{responses: map[string]string{
		"Break down": `{"knowledge_point": "French Revolution", "sub_points": [
			{"content": "Robespierre", "category": "person", "recommended_types": ["clue"]}
		]}`,
		"guessing game": `{"answer": "Robespierre", "clues": ["Led the Terror", "Jacobin", "Guillotined 1794"], "explanation": "..."}`,
	}}
	svc := newPuzzleService(provider)

	runID := svc.NewRunID()
	msgs, err := svc.SubscribeLogs(context.Background(), runID)
	require.NoError(t, err)
	svc.StartPipeline(runID, &dto.PipelineRequest{KnowledgePoint: "French Revolution"})

	records := collectLogs(t, msgs)

	var steps []string
	for _, record := range records {
		steps = append(steps, record.Step+":"+string(record.Status))
	}
	assert.Equal(t, []string{
		"breakdown:running", "breakdown:success",
		"generate[0]:running", "generate[0]:success",
		"complete:success",
	}, steps)

	terminal := records[len(records)-1]
	require.NotNil(t, terminal.Result)
	require.Len(t, terminal.Result.Questions, 1)
	assert.Equal(t, puzzle.TypeClue, terminal.Result.Questions[0].Type)
}

func TestPuzzlePipelineStreamBreakdownFailure(t *testing.T) {
	// No scripted breakdown response: the decode fails and the run ends
	// with an error record instead of a complete one.
	svc := newPuzzleService(&promptKeyedProvider{responses: map[string]string{}})

	runID := svc.NewRunID()
	msgs, err := svc.SubscribeLogs(context.Background(), runID)
	require.NoError(t, err)
	svc.StartPipeline(runID, &dto.PipelineRequest{KnowledgePoint: "French Revolution"})

	records := collectLogs(t, msgs)
	terminal := records[len(records)-1]
	assert.Equal(t, "breakdown", terminal.Step)
	assert.Equal(t, puzzle.LogError, terminal.Status)
	assert.NotEmpty(t, terminal.Error)
}

func TestPuzzleGenerateUnknownType(t *testing.T) {
	svc := newPuzzleService(&promptKeyedProvider{responses: map[string]string{}})

	_, err := svc.Generate(context.Background(), "haiku", &dto.GeneratePuzzleRequest{KnowledgePoint: "Rome"})
	require.Error(t, err)
	var validationErr *apperror.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
