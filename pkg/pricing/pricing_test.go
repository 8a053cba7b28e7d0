package pricing

import (
	"testing"
)

func TestCost(t *testing.T) {
	tests := []struct {
		name         string
		model        string
		inputTokens  int64
		outputTokens int64
		want         string
		wantKnown    bool
	}{
		{
			name:         "gpt-4o one million each",
			model:        "openai/gpt-4o",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			want:         "12.500000",
			wantKnown:    true,
		},
		{
			name:         "gpt-4o-mini small counts stay exact",
			model:        "openai/gpt-4o-mini",
			inputTokens:  1000,
			outputTokens: 500,
			want:         "0.000450",
			wantKnown:    true,
		},
		{
			name:         "zero tokens",
			model:        "anthropic/claude-3.5-sonnet",
			inputTokens:  0,
			outputTokens: 0,
			want:         "0.000000",
			wantKnown:    true,
		},
		{
			name:      "unrecognized model",
			model:     "acme/unpriced-model",
			wantKnown: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := Cost(tt.model, tt.inputTokens, tt.outputTokens)
			if known != tt.wantKnown {
				t.Fatalf("known = %v, want %v", known, tt.wantKnown)
			}
			if known && got != tt.want {
				t.Errorf("Cost = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	got, err := Add("0.000450", "12.500000")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got != "12.500450" {
		t.Errorf("Add = %q, want 12.500450", got)
	}

	// Empty operands behave as zero so fresh sessions accumulate cleanly.
	got, err = Add("", "0.25")
	if err != nil {
		t.Fatalf("Add with empty: %v", err)
	}
	if got != "0.250000" {
		t.Errorf("Add = %q, want 0.250000", got)
	}

	if _, err := Add("not-a-number", "1"); err == nil {
		t.Error("expected error for malformed decimal")
	}
}
