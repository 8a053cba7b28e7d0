package llm

import (
	"fmt"
	"strings"
)

// ModelRef is the canonical parsed form of a "provider/modelId" identifier.
// All model validation in the system goes through ParseModelRef so there is
// exactly one place that decides what a well-formed identifier looks like.
type ModelRef struct {
	Provider string
	ModelID  string
}

// ParseModelRef parses a "provider/modelId" string. The provider half may not
// contain slashes; the model half may (e.g. "meta-llama/llama-3.1-70b:free"
// style ids keep everything after the first slash).
func ParseModelRef(s string) (ModelRef, error) {
	s = strings.TrimSpace(s)
	provider, modelID, found := strings.Cut(s, "/")
	if !found {
		return ModelRef{}, fmt.Errorf("model %q must be in provider/modelId format", s)
	}
	if provider == "" || modelID == "" {
		return ModelRef{}, fmt.Errorf("model %q must be in provider/modelId format", s)
	}
	if strings.ContainsAny(provider, " \t") || strings.ContainsAny(modelID, " \t") {
		return ModelRef{}, fmt.Errorf("model %q may not contain whitespace", s)
	}
	return ModelRef{Provider: provider, ModelID: modelID}, nil
}

func (m ModelRef) String() string {
	return m.Provider + "/" + m.ModelID
}
