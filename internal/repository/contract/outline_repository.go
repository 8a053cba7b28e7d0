package contract

import (
	"context"

	"ai-quizforge-be/internal/entity"
	"ai-quizforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OutlineRepository interface {
	Create(ctx context.Context, outline *entity.Outline) error
	CreateBulk(ctx context.Context, outlines []*entity.Outline) error
	Update(ctx context.Context, outline *entity.Outline) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMsg string) error
	SetUsage(ctx context.Context, id uuid.UUID, inputTokens, outputTokens int64, cost string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Outline, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Outline, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
