package puzzle

import "encoding/json"

// QuestionType enumerates the puzzle-style question formats.
type QuestionType string

const (
	TypeClue       QuestionType = "clue"
	TypeFillBlank  QuestionType = "fill_blank"
	TypeGuessImage QuestionType = "guess_image"
	TypeEventOrder QuestionType = "event_order"
	TypeMatching   QuestionType = "matching"
)

// AllTypes in a stable order, used by validation and route registration.
var AllTypes = []QuestionType{TypeClue, TypeFillBlank, TypeGuessImage, TypeEventOrder, TypeMatching}

func ValidType(t QuestionType) bool {
	for _, v := range AllTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Category tags what kind of thing a sub-point is about.
type Category string

const (
	CategoryPerson    Category = "person"
	CategoryEvent     Category = "event"
	CategoryConcept   Category = "concept"
	CategoryPlace     Category = "place"
	CategoryInvention Category = "invention"
	CategoryProcess   Category = "process"
	CategoryTime      Category = "time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is the response-shaped result of one generation call. Puzzle
// questions are never persisted; they exist only in the reply payload.
type Question struct {
	Type           QuestionType    `json:"type"`
	KnowledgePoint string          `json:"knowledge_point"`
	Difficulty     Difficulty      `json:"difficulty"`
	Language       string          `json:"language"`
	Payload        json.RawMessage `json:"payload"`
}

// ClueQuestion: the player guesses the answer from progressively revealed clues.
type ClueQuestion struct {
	Answer      string   `json:"answer" validate:"required"`
	Clues       []string `json:"clues" validate:"min=3,dive,required"`
	Explanation string   `json:"explanation"`
}

type Blank struct {
	Position int    `json:"position" validate:"min=0"`
	Answer   string `json:"answer" validate:"required"`
}

// FillBlankQuestion: a sentence with one or more blanked-out words.
type FillBlankQuestion struct {
	Text        string  `json:"text" validate:"required"`
	Blanks      []Blank `json:"blanks" validate:"min=1,dive"`
	Explanation string  `json:"explanation"`
}

// GuessImageQuestion: the player identifies the subject of a described image.
type GuessImageQuestion struct {
	ImagePrompt string   `json:"image_prompt" validate:"required"`
	Answer      string   `json:"answer" validate:"required"`
	Hints       []string `json:"hints" validate:"dive,required"`
	Explanation string   `json:"explanation"`
}

type OrderedEvent struct {
	ID      string `json:"id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// EventOrderQuestion: shuffled events the player puts back in order.
type EventOrderQuestion struct {
	Events       []OrderedEvent `json:"events" validate:"min=3,dive"`
	CorrectOrder []string       `json:"correct_order" validate:"min=3,dive,required"`
	Explanation  string         `json:"explanation"`
}

type MatchItem struct {
	ID      string `json:"id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type MatchPair struct {
	LeftID  string `json:"left_id" validate:"required"`
	RightID string `json:"right_id" validate:"required"`
}

// MatchingQuestion: two columns the player pairs up.
type MatchingQuestion struct {
	LeftItems    []MatchItem `json:"left_items" validate:"min=2,dive"`
	RightItems   []MatchItem `json:"right_items" validate:"min=2,dive"`
	CorrectPairs []MatchPair `json:"correct_pairs" validate:"min=1,dive"`
	Explanation  string      `json:"explanation"`
}

// SubPoint is one node of a knowledge-point breakdown.
type SubPoint struct {
	Content          string         `json:"content" validate:"required"`
	Category         Category       `json:"category" validate:"required,oneof=person event concept place invention process time"`
	RecommendedTypes []QuestionType `json:"recommended_types" validate:"min=1,dive,oneof=clue fill_blank guess_image event_order matching"`
}

// Breakdown is the result of the first pipeline phase.
type Breakdown struct {
	KnowledgePoint string     `json:"knowledge_point" validate:"required"`
	SubPoints      []SubPoint `json:"sub_points" validate:"min=1,dive"`
}
