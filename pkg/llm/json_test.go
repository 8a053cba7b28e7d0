package llm

import (
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "plain object",
			content: `{"title":"Calvin Cycle"}`,
			want:    "Calvin Cycle",
		},
		{
			name:    "fenced json block",
			content: "```json\n{\"title\":\"Light Reactions\"}\n```",
			want:    "Light Reactions",
		},
		{
			name:    "fenced without language tag",
			content: "```\n{\"title\":\"Osmosis\"}\n```",
			want:    "Osmosis",
		},
		{
			name:    "not json",
			content: "Sure! Here are your questions.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out payload
			err := DecodeJSON(tt.content, &out)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Title != tt.want {
				t.Errorf("title = %q, want %q", out.Title, tt.want)
			}
		})
	}
}
