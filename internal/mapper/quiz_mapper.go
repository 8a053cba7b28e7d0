package mapper

import (
	"encoding/json"
	"time"

	"ai-quizforge-be/internal/entity"
	"ai-quizforge-be/internal/model"

	"gorm.io/datatypes"
)

type QuizMapper struct{}

func NewQuizMapper() *QuizMapper {
	return &QuizMapper{}
}

// Session Mappers

func (m *QuizMapper) SessionToEntity(s *model.QuizSession) *entity.QuizSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.QuizSession{
		Id:                  s.Id,
		UserId:              s.UserId,
		Title:               s.Title,
		Model:               s.Model,
		NumOutlines:         s.NumOutlines,
		QuestionsPerOutline: s.QuestionsPerOutline,
		Status:              s.Status,
		OutlinePrompt:       s.OutlinePrompt,
		QuizPrompt:          s.QuizPrompt,
		ErrorMsg:            s.ErrorMsg,
		ElapsedMs:           s.ElapsedMs,
		InputTokens:         s.InputTokens,
		OutputTokens:        s.OutputTokens,
		Cost:                s.Cost,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *QuizMapper) SessionToModel(s *entity.QuizSession) *model.QuizSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.QuizSession{
		Id:                  s.Id,
		UserId:              s.UserId,
		Title:               s.Title,
		Model:               s.Model,
		NumOutlines:         s.NumOutlines,
		QuestionsPerOutline: s.QuestionsPerOutline,
		Status:              s.Status,
		OutlinePrompt:       s.OutlinePrompt,
		QuizPrompt:          s.QuizPrompt,
		ErrorMsg:            s.ErrorMsg,
		ElapsedMs:           s.ElapsedMs,
		InputTokens:         s.InputTokens,
		OutputTokens:        s.OutputTokens,
		Cost:                s.Cost,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

// Outline Mappers

func (m *QuizMapper) OutlineToEntity(o *model.Outline) *entity.Outline {
	if o == nil {
		return nil
	}

	return &entity.Outline{
		Id:           o.Id,
		SessionId:    o.SessionId,
		Title:        o.Title,
		OrderIndex:   o.OrderIndex,
		Status:       o.Status,
		ErrorMsg:     o.ErrorMsg,
		InputTokens:  o.InputTokens,
		OutputTokens: o.OutputTokens,
		Cost:         o.Cost,
		CreatedAt:    o.CreatedAt,
	}
}

func (m *QuizMapper) OutlineToModel(o *entity.Outline) *model.Outline {
	if o == nil {
		return nil
	}

	return &model.Outline{
		Id:           o.Id,
		SessionId:    o.SessionId,
		Title:        o.Title,
		OrderIndex:   o.OrderIndex,
		Status:       o.Status,
		ErrorMsg:     o.ErrorMsg,
		InputTokens:  o.InputTokens,
		OutputTokens: o.OutputTokens,
		Cost:         o.Cost,
		CreatedAt:    o.CreatedAt,
	}
}

// Question Mappers

func (m *QuizMapper) QuestionToEntity(q *model.Question) *entity.Question {
	if q == nil {
		return nil
	}

	var options []string
	if len(q.Options) > 0 {
		// A row that fails to decode keeps nil options rather than
		// poisoning the whole read; the entity consumer sees the gap.
		_ = json.Unmarshal(q.Options, &options)
	}

	return &entity.Question{
		Id:          q.Id,
		SessionId:   q.SessionId,
		OutlineId:   q.OutlineId,
		Content:     q.Content,
		Type:        q.Type,
		Options:     options,
		Answer:      q.Answer,
		Explanation: q.Explanation,
		CreatedAt:   q.CreatedAt,
	}
}

func (m *QuizMapper) QuestionToModel(q *entity.Question) *model.Question {
	if q == nil {
		return nil
	}

	raw, _ := json.Marshal(q.Options)

	return &model.Question{
		Id:          q.Id,
		SessionId:   q.SessionId,
		OutlineId:   q.OutlineId,
		Content:     q.Content,
		Type:        q.Type,
		Options:     datatypes.JSON(raw),
		Answer:      q.Answer,
		Explanation: q.Explanation,
		CreatedAt:   q.CreatedAt,
	}
}
