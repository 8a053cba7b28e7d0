package dto

import "ai-quizforge-be/pkg/puzzle"

type GeneratePuzzleRequest struct {
	KnowledgePoint string `json:"knowledge_point" validate:"required,max=500"`
	Difficulty     string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Language       string `json:"language" validate:"omitempty,max=32"`
}

type GeneratePuzzleResponse struct {
	Question     *puzzle.Question `json:"question"`
	InputTokens  int64            `json:"input_tokens"`
	OutputTokens int64            `json:"output_tokens"`
}

type BreakdownRequest struct {
	KnowledgePoint string `json:"knowledge_point" validate:"required,max=500"`
	Language       string `json:"language" validate:"omitempty,max=32"`
}

type BreakdownResponse struct {
	Breakdown    *puzzle.Breakdown `json:"breakdown"`
	InputTokens  int64             `json:"input_tokens"`
	OutputTokens int64             `json:"output_tokens"`
}

type PipelineRequest struct {
	KnowledgePoint string `json:"knowledge_point" validate:"required,max=500"`
	Difficulty     string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Language       string `json:"language" validate:"omitempty,max=32"`
}
