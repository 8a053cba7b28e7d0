package contract

import (
	"context"

	"ai-quizforge-be/internal/entity"
	"ai-quizforge-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}
