package puzzle

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-quizforge-be/pkg/llm"
	"ai-quizforge-be/pkg/prompt"
)

// Generator produces puzzle questions through the LLM gateway.
type Generator struct {
	provider llm.LLMProvider
	model    string
}

func NewGenerator(provider llm.LLMProvider, model string) *Generator {
	return &Generator{
		provider: provider,
		model:    model,
	}
}

// Breakdown runs the first pipeline phase: split a knowledge point into
// categorized sub-points with recommended question types.
func (g *Generator) Breakdown(ctx context.Context, knowledgePoint, language string) (*Breakdown, llm.Usage, error) {
	rendered := prompt.Render(breakdownPrompt, map[string]string{
		"knowledge_point": knowledgePoint,
		"language":        language,
	})

	result, err := g.provider.Generate(ctx, rendered, llm.WithModel(g.model))
	if err != nil {
		return nil, llm.Usage{}, fmt.Errorf("breakdown generation failed: %w", err)
	}

	var breakdown Breakdown
	if err := llm.DecodeJSON(result.Content, &breakdown); err != nil {
		return nil, result.Usage, err
	}
	if breakdown.KnowledgePoint == "" {
		breakdown.KnowledgePoint = knowledgePoint
	}
	if err := ValidateBreakdown(&breakdown); err != nil {
		return nil, result.Usage, err
	}
	return &breakdown, result.Usage, nil
}

// GenerateOne produces a single validated question of the requested type.
func (g *Generator) GenerateOne(ctx context.Context, typ QuestionType, knowledgePoint string, difficulty Difficulty, language string) (*Question, llm.Usage, error) {
	template, ok := typePrompts[typ]
	if !ok {
		return nil, llm.Usage{}, fmt.Errorf("unsupported question type %q", typ)
	}

	rendered := prompt.Render(template, map[string]string{
		"knowledge_point": knowledgePoint,
		"difficulty":      string(difficulty),
		"language":        language,
	})

	result, err := g.provider.Generate(ctx, rendered, llm.WithModel(g.model))
	if err != nil {
		return nil, llm.Usage{}, fmt.Errorf("%s generation failed: %w", typ, err)
	}

	payload, err := decodeAndValidate(typ, result.Content)
	if err != nil {
		return nil, result.Usage, err
	}

	return &Question{
		Type:           typ,
		KnowledgePoint: knowledgePoint,
		Difficulty:     difficulty,
		Language:       language,
		Payload:        payload,
	}, result.Usage, nil
}

func decodeAndValidate(typ QuestionType, content string) (json.RawMessage, error) {
	var value any
	switch typ {
	case TypeClue:
		q := &ClueQuestion{}
		if err := llm.DecodeJSON(content, q); err != nil {
			return nil, err
		}
		if err := ValidateClue(q); err != nil {
			return nil, err
		}
		value = q
	case TypeFillBlank:
		q := &FillBlankQuestion{}
		if err := llm.DecodeJSON(content, q); err != nil {
			return nil, err
		}
		if err := ValidateFillBlank(q); err != nil {
			return nil, err
		}
		value = q
	case TypeGuessImage:
		q := &GuessImageQuestion{}
		if err := llm.DecodeJSON(content, q); err != nil {
			return nil, err
		}
		if err := ValidateGuessImage(q); err != nil {
			return nil, err
		}
		value = q
	case TypeEventOrder:
		q := &EventOrderQuestion{}
		if err := llm.DecodeJSON(content, q); err != nil {
			return nil, err
		}
		if err := ValidateEventOrder(q); err != nil {
			return nil, err
		}
		value = q
	case TypeMatching:
		q := &MatchingQuestion{}
		if err := llm.DecodeJSON(content, q); err != nil {
			return nil, err
		}
		if err := ValidateMatching(q); err != nil {
			return nil, err
		}
		value = q
	default:
		return nil, fmt.Errorf("unsupported question type %q", typ)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
