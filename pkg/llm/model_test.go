package llm

import (
	"testing"
)

func TestParseModelRef(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantProvider string
		wantModelID  string
		wantErr      bool
	}{
		{
			name:         "simple pair",
			input:        "openai/gpt-4o",
			wantProvider: "openai",
			wantModelID:  "gpt-4o",
		},
		{
			name:         "model id with slash",
			input:        "meta-llama/llama-3.1-70b-instruct",
			wantProvider: "meta-llama",
			wantModelID:  "llama-3.1-70b-instruct",
		},
		{
			name:         "surrounding whitespace trimmed",
			input:        "  anthropic/claude-3.5-sonnet ",
			wantProvider: "anthropic",
			wantModelID:  "claude-3.5-sonnet",
		},
		{
			name:    "no slash",
			input:   "gpt-4o",
			wantErr: true,
		},
		{
			name:    "empty provider",
			input:   "/gpt-4o",
			wantErr: true,
		},
		{
			name:    "empty model id",
			input:   "openai/",
			wantErr: true,
		},
		{
			name:    "inner whitespace",
			input:   "open ai/gpt 4o",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseModelRef(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseModelRef(%q) expected error, got %+v", tt.input, ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModelRef(%q) unexpected error: %v", tt.input, err)
			}
			if ref.Provider != tt.wantProvider || ref.ModelID != tt.wantModelID {
				t.Errorf("ParseModelRef(%q) = %+v, want {%s %s}",
					tt.input, ref, tt.wantProvider, tt.wantModelID)
			}
			if got := ref.String(); got != tt.wantProvider+"/"+tt.wantModelID {
				t.Errorf("String() = %q", got)
			}
		})
	}
}
