package service

import (
	"context"
	"encoding/json"

	"ai-quizforge-be/internal/dto"
	"ai-quizforge-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	generation IGenerationService
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	generation IGenerationService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		generation: generation,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.GenerateQuestionsMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("ConsumerService", "Starting question generation", map[string]interface{}{
		"session_id": payload.SessionId,
	})

	if err := cs.generation.GenerateQuestions(ctx, payload.SessionId); err != nil {
		// The run already persisted its own failure state; retrying the
		// message would collide with the per-session lock or a terminal
		// status, so ack either way.
		cs.logger.Error("ConsumerService", "Question generation failed", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
	}
	msg.Ack()
}
