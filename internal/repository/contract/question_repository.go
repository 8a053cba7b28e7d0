package contract

import (
	"context"

	"ai-quizforge-be/internal/entity"
	"ai-quizforge-be/internal/repository/specification"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	CreateBulk(ctx context.Context, questions []*entity.Question) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
