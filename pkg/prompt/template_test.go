package prompt

import (
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]string
		want     string
	}{
		{
			name:     "single variable",
			template: "Generate an outline about {{topic}}.",
			vars:     map[string]string{"topic": "Photosynthesis"},
			want:     "Generate an outline about Photosynthesis.",
		},
		{
			name:     "repeated variable substituted globally",
			template: "{{topic}}: explain {{topic}} twice",
			vars:     map[string]string{"topic": "Osmosis"},
			want:     "Osmosis: explain Osmosis twice",
		},
		{
			name:     "multiple variables",
			template: "{{count}} chapters on {{topic}}",
			vars:     map[string]string{"count": "5", "topic": "Rome"},
			want:     "5 chapters on Rome",
		},
		{
			name:     "whitespace inside braces",
			template: "about {{ topic }}",
			vars:     map[string]string{"topic": "Mitosis"},
			want:     "about Mitosis",
		},
		{
			name:     "unknown placeholder left untouched",
			template: "about {{topic}} in {{language}}",
			vars:     map[string]string{"topic": "Mitosis"},
			want:     "about Mitosis in {{language}}",
		},
		{
			name:     "no placeholders",
			template: "plain prompt",
			vars:     map[string]string{"topic": "x"},
			want:     "plain prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.template, tt.vars); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}
