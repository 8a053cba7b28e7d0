package unitofwork

import (
	"context"

	"ai-quizforge-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	QuizSessionRepository() contract.QuizSessionRepository
	OutlineRepository() contract.OutlineRepository
	QuestionRepository() contract.QuestionRepository
	NotificationRepository() contract.NotificationRepository
}
