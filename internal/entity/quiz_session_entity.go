package entity

import (
	"time"

	"github.com/google/uuid"
)

// QuizSession is one user-initiated topic-to-quiz generation job and its
// aggregate metadata. Token and cost fields are cumulative across generation
// rounds and only ever increase.
type QuizSession struct {
	Id                  uuid.UUID
	UserId              uuid.UUID
	Title               string
	Model               string // canonical provider/modelId
	NumOutlines         int
	QuestionsPerOutline int
	Status              string
	OutlinePrompt       string // custom prompt mode, empty = default template
	QuizPrompt          string
	ErrorMsg            string
	ElapsedMs           int64
	InputTokens         int64
	OutputTokens        int64
	Cost                string // decimal string
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}
