package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title               string `json:"title" validate:"required,max=200"`
	Model               string `json:"model" validate:"omitempty"`
	NumOutlines         int    `json:"num_outlines" validate:"omitempty,gte=3,lte=10"`
	QuestionsPerOutline int    `json:"questions_per_outline" validate:"omitempty,gte=3,lte=10"`
	// Custom prompt mode: both must be supplied together and are used as-is,
	// with no placeholder substitution.
	OutlinePrompt string `json:"outline_prompt" validate:"omitempty,max=4000"`
	QuizPrompt    string `json:"quiz_prompt" validate:"omitempty,max=4000"`
	AutoGenerate  bool   `json:"auto_generate"`
}

type CreateSessionResponse struct {
	SessionId uuid.UUID         `json:"session_id"`
	Status    string            `json:"status"`
	Outlines  []OutlineResponse `json:"outlines"`
}

type ListSessionsRequest struct {
	Status string `json:"status" query:"status" validate:"omitempty,oneof=pending generating_outline generating_questions completed failed cancelled"`
	Model  string `json:"model" query:"model"`
	Search string `json:"search" query:"search"`
	Limit  int    `json:"limit" query:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset int    `json:"offset" query:"offset" validate:"omitempty,gte=0"`
}

type SessionResponse struct {
	Id                  uuid.UUID  `json:"id"`
	Title               string     `json:"title"`
	Model               string     `json:"model"`
	NumOutlines         int        `json:"num_outlines"`
	QuestionsPerOutline int        `json:"questions_per_outline"`
	Status              string     `json:"status"`
	ErrorMsg            string     `json:"error_msg,omitempty"`
	ElapsedMs           int64      `json:"elapsed_ms"`
	InputTokens         int64      `json:"input_tokens"`
	OutputTokens        int64      `json:"output_tokens"`
	Cost                string     `json:"cost"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at"`
}

type ListSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int64             `json:"total"`
}

type OutlineResponse struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	OrderIndex   int       `json:"order_index"`
	Status       string    `json:"status"`
	ErrorMsg     string    `json:"error_msg,omitempty"`
	InputTokens  int64     `json:"input_tokens"`
	OutputTokens int64     `json:"output_tokens"`
	Cost         string    `json:"cost"`
}

type QuestionResponse struct {
	Id          uuid.UUID `json:"id"`
	OutlineId   uuid.UUID `json:"outline_id"`
	Content     string    `json:"content"`
	Type        string    `json:"type"`
	Options     []string  `json:"options"`
	Answer      string    `json:"answer"`
	Explanation string    `json:"explanation,omitempty"`
}

// OutlineDetailResponse nests an outline's questions for the detail view.
type OutlineDetailResponse struct {
	OutlineResponse
	Questions []QuestionResponse `json:"questions"`
}

type SessionDetailResponse struct {
	Session  SessionResponse         `json:"session"`
	Outlines []OutlineDetailResponse `json:"outlines"`
}

type SessionQuestionsResponse struct {
	SessionId uuid.UUID          `json:"session_id"`
	Questions []QuestionResponse `json:"questions"`
}

type GenerateQuestionsRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}

// GenerateQuestionsMessage is the watermill payload for async Stage B runs.
type GenerateQuestionsMessage struct {
	SessionId uuid.UUID `json:"session_id"`
	UserId    uuid.UUID `json:"user_id"`
}

type DeleteSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type CancelSessionResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
