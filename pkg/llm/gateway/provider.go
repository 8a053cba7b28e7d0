package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ai-quizforge-be/pkg/llm"

	openai "github.com/sashabaranov/go-openai"
)

// GatewayProvider talks to an OpenAI-compatible LLM gateway. Model identifiers
// are "provider/modelId" strings passed through unchanged, so one endpoint
// routes to every upstream provider.
type GatewayProvider struct {
	client       *openai.Client
	defaultModel string
}

// Ensure GatewayProvider implements LLMProvider
var _ llm.LLMProvider = &GatewayProvider{}

func NewGatewayProvider(baseURL, apiKey, defaultModel string) *GatewayProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &GatewayProvider{
		client:       openai.NewClientWithConfig(cfg),
		defaultModel: defaultModel,
	}
}

func (p *GatewayProvider) buildRequest(history []llm.Message, opts ...llm.Option) (openai.ChatCompletionRequest, error) {
	options := &llm.Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}

	model := p.defaultModel
	if options.Model != "" {
		model = options.Model
	}
	if _, err := llm.ParseModelRef(model); err != nil {
		return openai.ChatCompletionRequest{}, err
	}

	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = openai.ChatMessageRoleAssistant
		}
		messages[i] = openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}
	if options.Schema != nil {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   options.SchemaName,
				Schema: options.Schema,
				Strict: true,
			},
		}
	}
	return req, nil
}

func (p *GatewayProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Result, error) {
	req, err := p.buildRequest(history, opts...)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("gateway returned no choices for model %s", req.Model)
	}

	return &llm.Result{
		Content: resp.Choices[0].Message.Content,
		Usage: llm.Usage{
			InputTokens:  int64(resp.Usage.PromptTokens),
			OutputTokens: int64(resp.Usage.CompletionTokens),
		},
	}, nil
}

// ChatStream accumulates the streamed deltas and returns only the final
// document. Partial values observed mid-stream are never exposed.
func (p *GatewayProvider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Result, error) {
	req, err := p.buildRequest(history, opts...)
	if err != nil {
		return nil, err
	}
	req.Stream = true
	req.StreamOptions = &openai.StreamOptions{IncludeUsage: true}

	stream, err := p.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("gateway stream failed: %w", err)
	}
	defer stream.Close()

	var content strings.Builder
	var usage llm.Usage
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gateway stream read failed: %w", err)
		}
		if len(chunk.Choices) > 0 {
			content.WriteString(chunk.Choices[0].Delta.Content)
		}
		// The usage summary arrives on the terminal chunk.
		if chunk.Usage != nil {
			usage.InputTokens = int64(chunk.Usage.PromptTokens)
			usage.OutputTokens = int64(chunk.Usage.CompletionTokens)
		}
	}

	return &llm.Result{
		Content: content.String(),
		Usage:   usage,
	}, nil
}

func (p *GatewayProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Result, error) {
	return p.Chat(ctx, []llm.Message{{Role: openai.ChatMessageRoleUser, Content: prompt}}, opts...)
}
