package constant

// Session lifecycle. Terminal states are completed, failed and cancelled.
const (
	SessionStatusPending             = "pending"
	SessionStatusGeneratingOutline   = "generating_outline"
	SessionStatusGeneratingQuestions = "generating_questions"
	SessionStatusCompleted           = "completed"
	SessionStatusFailed              = "failed"
	SessionStatusCancelled           = "cancelled"
)

// SessionStatuses lists every valid session status, for filter validation.
var SessionStatuses = []string{
	SessionStatusPending,
	SessionStatusGeneratingOutline,
	SessionStatusGeneratingQuestions,
	SessionStatusCompleted,
	SessionStatusFailed,
	SessionStatusCancelled,
}

func TerminalSessionStatus(status string) bool {
	return status == SessionStatusCompleted ||
		status == SessionStatusFailed ||
		status == SessionStatusCancelled
}

// Outline lifecycle.
const (
	OutlineStatusPending    = "pending"
	OutlineStatusGenerating = "generating"
	OutlineStatusCompleted  = "completed"
	OutlineStatusFailed     = "failed"
)

const QuestionTypeMultipleChoice = "multiple_choice"

// Outline/question count bounds shared between the dto tags and prompts.
const (
	MinOutlines    = 3
	MaxOutlines    = 10
	DefaultCount   = 5
	MinQuestions   = 3
	MaxQuestions   = 10
	MaxTitleLength = 200
)

// Watermill topic for asynchronous question-generation triggers, and the
// prefix for per-run puzzle pipeline log topics.
const (
	TopicGenerateQuestions = "quiz.generate_questions"
	TopicPipelineLogPrefix = "puzzle.pipeline."
)

// NATS subjects for generation lifecycle events.
const (
	SubjectSessionCompleted = "quizforge.session.completed"
	SubjectSessionFailed    = "quizforge.session.failed"
)

// Notification types.
const (
	NotificationSessionCompleted = "session_completed"
	NotificationSessionFailed    = "session_failed"
)
