package contract

import (
	"context"

	"ai-quizforge-be/internal/entity"
	"ai-quizforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuizSessionRepository interface {
	Create(ctx context.Context, session *entity.QuizSession) error
	Update(ctx context.Context, session *entity.QuizSession) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMsg string) error
	// AddUsage increments the cumulative accounting columns server-side so
	// concurrent generation rounds never lose updates.
	AddUsage(ctx context.Context, id uuid.UUID, inputTokens, outputTokens int64, cost string) error
	AddElapsed(ctx context.Context, id uuid.UUID, deltaMs int64) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuizSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
