package dto

import (
	"strings"
	"testing"

	"ai-quizforge-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
)

func TestCreateSessionRequestValidation(t *testing.T) {
	valid := CreateSessionRequest{
		Title:               "Photosynthesis",
		NumOutlines:         3,
		QuestionsPerOutline: 10,
	}
	assert.NoError(t, serverutils.ValidateRequest(valid))

	t.Run("boundaries accepted", func(t *testing.T) {
		req := valid
		req.NumOutlines = 10
		req.QuestionsPerOutline = 3
		assert.NoError(t, serverutils.ValidateRequest(req))

		req.Title = strings.Repeat("a", 200)
		assert.NoError(t, serverutils.ValidateRequest(req))
	})

	t.Run("out of range rejected", func(t *testing.T) {
		req := valid
		req.NumOutlines = 2
		assert.Error(t, serverutils.ValidateRequest(req))

		req = valid
		req.NumOutlines = 11
		assert.Error(t, serverutils.ValidateRequest(req))

		req = valid
		req.QuestionsPerOutline = 11
		assert.Error(t, serverutils.ValidateRequest(req))
	})

	t.Run("title constraints", func(t *testing.T) {
		req := valid
		req.Title = ""
		assert.Error(t, serverutils.ValidateRequest(req))

		req.Title = strings.Repeat("a", 201)
		assert.Error(t, serverutils.ValidateRequest(req))
	})

	t.Run("zero counts pass through for defaulting", func(t *testing.T) {
		req := CreateSessionRequest{Title: "Photosynthesis"}
		assert.NoError(t, serverutils.ValidateRequest(req))
	})
}

func TestListSessionsRequestValidation(t *testing.T) {
	assert.NoError(t, serverutils.ValidateRequest(ListSessionsRequest{Status: "completed"}))
	assert.NoError(t, serverutils.ValidateRequest(ListSessionsRequest{}))
	assert.Error(t, serverutils.ValidateRequest(ListSessionsRequest{Status: "done"}))
	assert.Error(t, serverutils.ValidateRequest(ListSessionsRequest{Limit: 101}))
}

func TestGeneratePuzzleRequestValidation(t *testing.T) {
	assert.NoError(t, serverutils.ValidateRequest(GeneratePuzzleRequest{KnowledgePoint: "French Revolution"}))
	assert.NoError(t, serverutils.ValidateRequest(GeneratePuzzleRequest{KnowledgePoint: "x", Difficulty: "hard"}))
	assert.Error(t, serverutils.ValidateRequest(GeneratePuzzleRequest{}))
	assert.Error(t, serverutils.ValidateRequest(GeneratePuzzleRequest{KnowledgePoint: "x", Difficulty: "extreme"}))
}
