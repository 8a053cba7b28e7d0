package puzzle

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError names one offending field path and why it failed.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SchemaError enumerates every failing field of a generated question, so the
// caller sees the whole shape problem at once instead of the first hit.
type SchemaError struct {
	Fields []FieldError `json:"fields"`
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Path + ": " + f.Message
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report paths using json tag names so errors match the wire shape.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "len":
		return fmt.Sprintf("must have exactly %s items", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func structErrors(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Path: "", Message: err.Error()}}
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace starts with the struct type name; drop it.
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		fields = append(fields, FieldError{Path: path, Message: messageFor(fe)})
	}
	return fields
}

// ValidateClue checks a clue question's structure.
func ValidateClue(q *ClueQuestion) error {
	if fields := structErrors(q); fields != nil {
		return &SchemaError{Fields: fields}
	}
	return nil
}

// ValidateFillBlank checks a fill-in-the-blank question's structure.
func ValidateFillBlank(q *FillBlankQuestion) error {
	if fields := structErrors(q); fields != nil {
		return &SchemaError{Fields: fields}
	}
	return nil
}

// ValidateGuessImage checks a guess-the-image question's structure.
func ValidateGuessImage(q *GuessImageQuestion) error {
	if fields := structErrors(q); fields != nil {
		return &SchemaError{Fields: fields}
	}
	return nil
}

// ValidateEventOrder checks structure plus the id cross-references: every
// ordered id must name an event and the order must cover each event once.
func ValidateEventOrder(q *EventOrderQuestion) error {
	fields := structErrors(q)

	if len(q.Events) > 0 && len(q.CorrectOrder) > 0 {
		known := make(map[string]bool, len(q.Events))
		for _, ev := range q.Events {
			known[ev.ID] = true
		}
		seen := make(map[string]bool, len(q.CorrectOrder))
		for i, id := range q.CorrectOrder {
			if !known[id] {
				fields = append(fields, FieldError{
					Path:    fmt.Sprintf("correct_order[%d]", i),
					Message: fmt.Sprintf("references unknown event id %q", id),
				})
			}
			if seen[id] {
				fields = append(fields, FieldError{
					Path:    fmt.Sprintf("correct_order[%d]", i),
					Message: fmt.Sprintf("duplicates event id %q", id),
				})
			}
			seen[id] = true
		}
		if len(q.CorrectOrder) != len(q.Events) {
			fields = append(fields, FieldError{
				Path:    "correct_order",
				Message: fmt.Sprintf("must order all %d events", len(q.Events)),
			})
		}
	}

	if fields != nil {
		return &SchemaError{Fields: fields}
	}
	return nil
}

// ValidateMatching checks structure plus that every pair references items
// that exist in their respective columns.
func ValidateMatching(q *MatchingQuestion) error {
	fields := structErrors(q)

	left := make(map[string]bool, len(q.LeftItems))
	for _, it := range q.LeftItems {
		left[it.ID] = true
	}
	right := make(map[string]bool, len(q.RightItems))
	for _, it := range q.RightItems {
		right[it.ID] = true
	}
	for i, p := range q.CorrectPairs {
		if p.LeftID != "" && !left[p.LeftID] {
			fields = append(fields, FieldError{
				Path:    fmt.Sprintf("correct_pairs[%d].left_id", i),
				Message: fmt.Sprintf("references unknown left item %q", p.LeftID),
			})
		}
		if p.RightID != "" && !right[p.RightID] {
			fields = append(fields, FieldError{
				Path:    fmt.Sprintf("correct_pairs[%d].right_id", i),
				Message: fmt.Sprintf("references unknown right item %q", p.RightID),
			})
		}
	}

	if fields != nil {
		return &SchemaError{Fields: fields}
	}
	return nil
}

// ValidateBreakdown checks the sub-point tree from the breakdown phase.
func ValidateBreakdown(b *Breakdown) error {
	if fields := structErrors(b); fields != nil {
		return &SchemaError{Fields: fields}
	}
	return nil
}
