package puzzle

import (
	"context"
	"fmt"
	"time"
)

// LogStatus tracks one pipeline step's progress.
type LogStatus string

const (
	LogPending LogStatus = "pending"
	LogRunning LogStatus = "running"
	LogSuccess LogStatus = "success"
	LogError   LogStatus = "error"
)

// Log is one progress record emitted during the breakdown/generation flow.
// The terminal record carries the complete result payload.
type Log struct {
	Step       string          `json:"step"`
	Status     LogStatus       `json:"status"`
	Timestamp  time.Time       `json:"timestamp"`
	DurationMs int64           `json:"duration_ms,omitempty"`
	Details    string          `json:"details,omitempty"`
	Error      string          `json:"error,omitempty"`
	Result     *PipelineResult `json:"result,omitempty"`
}

// PipelineRequest drives one two-phase run.
type PipelineRequest struct {
	KnowledgePoint string
	Difficulty     Difficulty
	Language       string
}

// PipelineResult is the terminal payload: the breakdown plus one question per
// sub-point that generated successfully.
type PipelineResult struct {
	Breakdown *Breakdown `json:"breakdown"`
	Questions []Question `json:"questions"`
}

// Pipeline runs breakdown then per-sub-point generation, reporting each step
// through emit. A failed generation step is logged and skipped; it never
// halts the remaining steps.
type Pipeline struct {
	generator *Generator
}

func NewPipeline(generator *Generator) *Pipeline {
	return &Pipeline{generator: generator}
}

func (p *Pipeline) Run(ctx context.Context, req PipelineRequest, emit func(Log)) (*PipelineResult, error) {
	emit(Log{Step: "breakdown", Status: LogRunning, Timestamp: time.Now(),
		Details: fmt.Sprintf("breaking down %q", req.KnowledgePoint)})

	started := time.Now()
	breakdown, _, err := p.generator.Breakdown(ctx, req.KnowledgePoint, req.Language)
	if err != nil {
		emit(Log{Step: "breakdown", Status: LogError, Timestamp: time.Now(),
			DurationMs: time.Since(started).Milliseconds(), Error: err.Error()})
		return nil, err
	}
	emit(Log{Step: "breakdown", Status: LogSuccess, Timestamp: time.Now(),
		DurationMs: time.Since(started).Milliseconds(),
		Details:    fmt.Sprintf("%d sub-points", len(breakdown.SubPoints))})

	result := &PipelineResult{Breakdown: breakdown}
	for i, sub := range breakdown.SubPoints {
		typ := pickType(sub)
		step := fmt.Sprintf("generate[%d]", i)

		emit(Log{Step: step, Status: LogRunning, Timestamp: time.Now(),
			Details: fmt.Sprintf("%s question for %q", typ, sub.Content)})

		stepStart := time.Now()
		question, _, err := p.generator.GenerateOne(ctx, typ, sub.Content, req.Difficulty, req.Language)
		if err != nil {
			emit(Log{Step: step, Status: LogError, Timestamp: time.Now(),
				DurationMs: time.Since(stepStart).Milliseconds(), Error: err.Error()})
			continue
		}

		result.Questions = append(result.Questions, *question)
		emit(Log{Step: step, Status: LogSuccess, Timestamp: time.Now(),
			DurationMs: time.Since(stepStart).Milliseconds()})
	}

	emit(Log{Step: "complete", Status: LogSuccess, Timestamp: time.Now(),
		DurationMs: time.Since(started).Milliseconds(), Result: result})
	return result, nil
}

// pickType chooses the first recommended type the generator supports.
func pickType(sub SubPoint) QuestionType {
	for _, t := range sub.RecommendedTypes {
		if ValidType(t) {
			return t
		}
	}
	return TypeClue
}
