package mapper

import (
	"testing"
	"time"

	"ai-quizforge-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionOptionsRoundTrip(t *testing.T) {
	m := NewQuizMapper()
	q := &entity.Question{
		Id:          uuid.New(),
		SessionId:   uuid.New(),
		OutlineId:   uuid.New(),
		Content:     "What is the powerhouse of the cell?",
		Type:        "multiple_choice",
		Options:     []string{"Mitochondria", "Nucleus", "Ribosome", "Golgi"},
		Answer:      "A",
		Explanation: "classic",
		CreatedAt:   time.Now(),
	}

	back := m.QuestionToEntity(m.QuestionToModel(q))
	require.NotNil(t, back)
	assert.Equal(t, q.Options, back.Options)
	assert.Equal(t, q.Answer, back.Answer)
	assert.Equal(t, q.Content, back.Content)
}

func TestSessionMapperNilSafe(t *testing.T) {
	m := NewQuizMapper()
	assert.Nil(t, m.SessionToEntity(nil))
	assert.Nil(t, m.SessionToModel(nil))
	assert.Nil(t, m.QuestionToEntity(nil))
	assert.Nil(t, m.OutlineToModel(nil))
}

func TestSessionUpdatedAtMapping(t *testing.T) {
	m := NewQuizMapper()
	now := time.Now()
	e := &entity.QuizSession{Id: uuid.New(), UpdatedAt: &now, Cost: "0.000450"}

	model := m.SessionToModel(e)
	assert.Equal(t, now, model.UpdatedAt)
	assert.Equal(t, "0.000450", model.Cost)

	back := m.SessionToEntity(model)
	require.NotNil(t, back.UpdatedAt)
	assert.Equal(t, now.Unix(), back.UpdatedAt.Unix())
}
