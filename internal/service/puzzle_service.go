package service

import (
	"context"
	"encoding/json"

	"ai-quizforge-be/internal/constant"
	"ai-quizforge-be/internal/dto"
	"ai-quizforge-be/internal/pkg/apperror"
	"ai-quizforge-be/internal/pkg/logger"
	"ai-quizforge-be/pkg/puzzle"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPuzzleService interface {
	Generate(ctx context.Context, typ string, req *dto.GeneratePuzzleRequest) (*dto.GeneratePuzzleResponse, error)
	Breakdown(ctx context.Context, req *dto.BreakdownRequest) (*dto.BreakdownResponse, error)
	// NewRunID mints the identifier for a streaming pipeline run.
	NewRunID() string
	// SubscribeLogs must be called before StartPipeline so no step record
	// is missed.
	SubscribeLogs(ctx context.Context, runID string) (<-chan *message.Message, error)
	// StartPipeline launches the run in the background; step records arrive
	// on the subscribed topic, ending with a terminal record carrying the
	// full result.
	StartPipeline(runID string, req *dto.PipelineRequest)
}

type puzzleService struct {
	generator *puzzle.Generator
	pipeline  *puzzle.Pipeline
	pubSub    *gochannel.GoChannel
	logger    logger.ILogger
}

// NewPuzzleService wires the streaming pipeline onto pubSub. The bus must
// block publishes until subscriber ack, otherwise step records reach the
// relay out of emit order.
func NewPuzzleService(generator *puzzle.Generator, pubSub *gochannel.GoChannel, log logger.ILogger) IPuzzleService {
	return &puzzleService{
		generator: generator,
		pipeline:  puzzle.NewPipeline(generator),
		pubSub:    pubSub,
		logger:    log,
	}
}

func (s *puzzleService) Generate(ctx context.Context, typ string, req *dto.GeneratePuzzleRequest) (*dto.GeneratePuzzleResponse, error) {
	questionType := puzzle.QuestionType(typ)
	if !puzzle.ValidType(questionType) {
		return nil, apperror.NewValidation("Unknown question type: %s", typ)
	}

	difficulty := puzzle.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = puzzle.DifficultyMedium
	}
	language := req.Language
	if language == "" {
		language = "en"
	}

	question, usage, err := s.generator.GenerateOne(ctx, questionType, req.KnowledgePoint, difficulty, language)
	if err != nil {
		return nil, err
	}

	return &dto.GeneratePuzzleResponse{
		Question:     question,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
	}, nil
}

func (s *puzzleService) Breakdown(ctx context.Context, req *dto.BreakdownRequest) (*dto.BreakdownResponse, error) {
	language := req.Language
	if language == "" {
		language = "en"
	}

	breakdown, usage, err := s.generator.Breakdown(ctx, req.KnowledgePoint, language)
	if err != nil {
		return nil, err
	}

	return &dto.BreakdownResponse{
		Breakdown:    breakdown,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
	}, nil
}

func (s *puzzleService) NewRunID() string {
	return watermill.NewUUID()
}

func (s *puzzleService) SubscribeLogs(ctx context.Context, runID string) (<-chan *message.Message, error) {
	return s.pubSub.Subscribe(ctx, constant.TopicPipelineLogPrefix+runID)
}

func (s *puzzleService) StartPipeline(runID string, req *dto.PipelineRequest) {
	topic := constant.TopicPipelineLogPrefix + runID

	difficulty := puzzle.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = puzzle.DifficultyMedium
	}
	language := req.Language
	if language == "" {
		language = "en"
	}

	go func() {
		// The run outlives the HTTP handler that triggered it; the SSE
		// relay drains the topic until the terminal record.
		ctx := context.Background()

		emit := func(log puzzle.Log) {
			payload, err := json.Marshal(log)
			if err != nil {
				s.logger.Error("PuzzleService", "Failed to marshal pipeline log", map[string]interface{}{
					"run_id": runID, "error": err.Error(),
				})
				return
			}
			msg := message.NewMessage(watermill.NewUUID(), payload)
			if err := s.pubSub.Publish(topic, msg); err != nil {
				s.logger.Error("PuzzleService", "Failed to publish pipeline log", map[string]interface{}{
					"run_id": runID, "error": err.Error(),
				})
			}
		}

		_, err := s.pipeline.Run(ctx, puzzle.PipelineRequest{
			KnowledgePoint: req.KnowledgePoint,
			Difficulty:     difficulty,
			Language:       language,
		}, emit)
		if err != nil {
			s.logger.Warn("PuzzleService", "Pipeline run failed", map[string]interface{}{
				"run_id": runID, "error": err.Error(),
			})
		}
	}()
}
