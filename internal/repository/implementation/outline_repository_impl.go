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

type OutlineRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuizMapper
}

func NewOutlineRepository(db *gorm.DB) contract.OutlineRepository {
	return &OutlineRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuizMapper(),
	}
}

func (r *OutlineRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OutlineRepositoryImpl) Create(ctx context.Context, outline *entity.Outline) error {
	m := r.mapper.OutlineToModel(outline)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*outline = *r.mapper.OutlineToEntity(m)
	return nil
}

func (r *OutlineRepositoryImpl) CreateBulk(ctx context.Context, outlines []*entity.Outline) error {
	if len(outlines) == 0 {
		return nil
	}
	models := make([]*model.Outline, len(outlines))
	for i, o := range outlines {
		models[i] = r.mapper.OutlineToModel(o)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*outlines[i] = *r.mapper.OutlineToEntity(m)
	}
	return nil
}

func (r *OutlineRepositoryImpl) Update(ctx context.Context, outline *entity.Outline) error {
	m := r.mapper.OutlineToModel(outline)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*outline = *r.mapper.OutlineToEntity(m)
	return nil
}

func (r *OutlineRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMsg string) error {
	return r.db.WithContext(ctx).Model(&model.Outline{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    status,
			"error_msg": errorMsg,
		}).Error
}

func (r *OutlineRepositoryImpl) SetUsage(ctx context.Context, id uuid.UUID, inputTokens, outputTokens int64, cost string) error {
	return r.db.WithContext(ctx).Model(&model.Outline{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"input_tokens":  inputTokens,
			"output_tokens": outputTokens,
			"cost":          cost,
		}).Error
}

func (r *OutlineRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Outline, error) {
	var m model.Outline
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.OutlineToEntity(&m), nil
}

func (r *OutlineRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Outline, error) {
	var models []*model.Outline
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Outline, len(models))
	for i, m := range models {
		entities[i] = r.mapper.OutlineToEntity(m)
	}
	return entities, nil
}

func (r *OutlineRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Outline{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
