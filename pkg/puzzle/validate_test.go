package puzzle

import (
	"strings"
	"testing"
)

func fieldPaths(t *testing.T, err error) []string {
	t.Helper()
	serr, ok := err.(*SchemaError)
	if !ok {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	paths := make([]string, len(serr.Fields))
	for i, f := range serr.Fields {
		paths[i] = f.Path
	}
	return paths
}

func hasPath(paths []string, want string) bool {
	for _, p := range paths {
		if p == want || strings.HasPrefix(p, want) {
			return true
		}
	}
	return false
}

func TestValidateMatching(t *testing.T) {
	valid := &MatchingQuestion{
		LeftItems:    []MatchItem{{ID: "l1", Content: "Newton"}, {ID: "l2", Content: "Darwin"}},
		RightItems:   []MatchItem{{ID: "r1", Content: "Gravity"}, {ID: "r2", Content: "Evolution"}},
		CorrectPairs: []MatchPair{{LeftID: "l1", RightID: "r1"}, {LeftID: "l2", RightID: "r2"}},
	}
	if err := ValidateMatching(valid); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	t.Run("single left item", func(t *testing.T) {
		q := &MatchingQuestion{
			LeftItems:    []MatchItem{{ID: "l1", Content: "Newton"}},
			RightItems:   valid.RightItems,
			CorrectPairs: []MatchPair{{LeftID: "l1", RightID: "r1"}},
		}
		err := ValidateMatching(q)
		if err == nil {
			t.Fatal("expected error")
		}
		paths := fieldPaths(t, err)
		if !hasPath(paths, "left_items") {
			t.Errorf("error paths %v missing left_items", paths)
		}
		if !strings.Contains(err.Error(), "at least 2") {
			t.Errorf("message should reference the minimum of 2: %v", err)
		}
	})

	t.Run("no pairs", func(t *testing.T) {
		q := &MatchingQuestion{LeftItems: valid.LeftItems, RightItems: valid.RightItems}
		err := ValidateMatching(q)
		if err == nil {
			t.Fatal("expected error")
		}
		if !hasPath(fieldPaths(t, err), "correct_pairs") {
			t.Errorf("error should cite correct_pairs: %v", err)
		}
	})

	t.Run("pair references unknown item", func(t *testing.T) {
		q := &MatchingQuestion{
			LeftItems:    valid.LeftItems,
			RightItems:   valid.RightItems,
			CorrectPairs: []MatchPair{{LeftID: "l1", RightID: "r9"}},
		}
		err := ValidateMatching(q)
		if err == nil {
			t.Fatal("expected error")
		}
		if !hasPath(fieldPaths(t, err), "correct_pairs[0].right_id") {
			t.Errorf("error should cite the dangling pair: %v", err)
		}
	})

	t.Run("empty item content and id collected together", func(t *testing.T) {
		q := &MatchingQuestion{
			LeftItems:    []MatchItem{{ID: "", Content: ""}, {ID: "l2", Content: "x"}},
			RightItems:   valid.RightItems,
			CorrectPairs: []MatchPair{{LeftID: "l2", RightID: "r1"}},
		}
		err := ValidateMatching(q)
		if err == nil {
			t.Fatal("expected error")
		}
		paths := fieldPaths(t, err)
		if len(paths) < 2 {
			t.Errorf("expected every failing field reported, got %v", paths)
		}
	})
}

func TestValidateClue(t *testing.T) {
	if err := ValidateClue(&ClueQuestion{
		Answer: "Marie Curie",
		Clues:  []string{"Two Nobel prizes", "Studied radioactivity", "Born in Warsaw"},
	}); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	err := ValidateClue(&ClueQuestion{Answer: "Marie Curie", Clues: []string{"one", "two"}})
	if err == nil {
		t.Fatal("expected error for 2 clues")
	}
	if !hasPath(fieldPaths(t, err), "clues") {
		t.Errorf("error should cite clues: %v", err)
	}
}

func TestValidateFillBlank(t *testing.T) {
	if err := ValidateFillBlank(&FillBlankQuestion{
		Text:   "Water boils at ____ degrees Celsius.",
		Blanks: []Blank{{Position: 0, Answer: "100"}},
	}); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	err := ValidateFillBlank(&FillBlankQuestion{Text: "No blanks here."})
	if err == nil {
		t.Fatal("expected error for zero blanks")
	}
	if !hasPath(fieldPaths(t, err), "blanks") {
		t.Errorf("error should cite blanks: %v", err)
	}
}

func TestValidateEventOrder(t *testing.T) {
	events := []OrderedEvent{
		{ID: "e1", Content: "Storming of the Bastille"},
		{ID: "e2", Content: "Execution of Louis XVI"},
		{ID: "e3", Content: "Napoleon crowned emperor"},
	}

	if err := ValidateEventOrder(&EventOrderQuestion{
		Events:       events,
		CorrectOrder: []string{"e1", "e2", "e3"},
	}); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	t.Run("too few events", func(t *testing.T) {
		err := ValidateEventOrder(&EventOrderQuestion{
			Events:       events[:2],
			CorrectOrder: []string{"e1", "e2"},
		})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown id in order", func(t *testing.T) {
		err := ValidateEventOrder(&EventOrderQuestion{
			Events:       events,
			CorrectOrder: []string{"e1", "e2", "e9"},
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if !hasPath(fieldPaths(t, err), "correct_order[2]") {
			t.Errorf("error should cite the unknown id: %v", err)
		}
	})

	t.Run("duplicate id in order", func(t *testing.T) {
		err := ValidateEventOrder(&EventOrderQuestion{
			Events:       events,
			CorrectOrder: []string{"e1", "e1", "e3"},
		})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestValidateBreakdown(t *testing.T) {
	if err := ValidateBreakdown(&Breakdown{
		KnowledgePoint: "French Revolution",
		SubPoints: []SubPoint{
			{Content: "Robespierre", Category: CategoryPerson, RecommendedTypes: []QuestionType{TypeClue}},
		},
	}); err != nil {
		t.Fatalf("valid breakdown rejected: %v", err)
	}

	err := ValidateBreakdown(&Breakdown{
		KnowledgePoint: "French Revolution",
		SubPoints: []SubPoint{
			{Content: "Robespierre", Category: "villain", RecommendedTypes: []QuestionType{TypeClue}},
		},
	})
	if err == nil {
		t.Fatal("expected error for bad category")
	}
	if !hasPath(fieldPaths(t, err), "sub_points[0].category") {
		t.Errorf("error should cite the category path: %v", err)
	}
}
