package implementation

import (
	"context"
	"errors"

	"ai-quizforge-be/internal/entity"
	"ai-quizforge-be/internal/mapper"
	"ai-quizforge-be/internal/model"
	"ai-quizforge-be/internal/repository/contract"
	"ai-quizforge-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuizMapper
}

func NewQuizSessionRepository(db *gorm.DB) contract.QuizSessionRepository {
	return &QuizSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuizMapper(),
	}
}

func (r *QuizSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuizSessionRepositoryImpl) Create(ctx context.Context, session *entity.QuizSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *QuizSessionRepositoryImpl) Update(ctx context.Context, session *entity.QuizSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *QuizSessionRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMsg string) error {
	return r.db.WithContext(ctx).Model(&model.QuizSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    status,
			"error_msg": errorMsg,
		}).Error
}

func (r *QuizSessionRepositoryImpl) AddUsage(ctx context.Context, id uuid.UUID, inputTokens, outputTokens int64, cost string) error {
	return r.db.WithContext(ctx).Model(&model.QuizSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"input_tokens":  gorm.Expr("input_tokens + ?", inputTokens),
			"output_tokens": gorm.Expr("output_tokens + ?", outputTokens),
			"cost":          gorm.Expr("cost + ?", cost),
		}).Error
}

func (r *QuizSessionRepositoryImpl) AddElapsed(ctx context.Context, id uuid.UUID, deltaMs int64) error {
	return r.db.WithContext(ctx).Model(&model.QuizSession{}).
		Where("id = ?", id).
		Update("elapsed_ms", gorm.Expr("elapsed_ms + ?", deltaMs)).Error
}

func (r *QuizSessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.QuizSession{}, id).Error
}

func (r *QuizSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuizSession, error) {
	var m model.QuizSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *QuizSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizSession, error) {
	var models []*model.QuizSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.QuizSession, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SessionToEntity(m)
	}
	return entities, nil
}

func (r *QuizSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.QuizSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
