// Package llm wraps the OpenAI chat completion API for the two model
// interactions the intake service performs: conversational replies and the
// final report narrative.
package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"health-intake/internal/intake"
)

const (
	// Fallback copy when the model returns no choices.
	fallbackReply    = "I'm having trouble processing that. Could you please rephrase?"
	fallbackAnalysis = "Unable to generate analysis"
)

type Config struct {
	APIKey      string
	ChatModel   string
	ReportModel string
}

// OpenAIClient implements intake.LLMClient against the OpenAI API.
type OpenAIClient struct {
	client      *openai.Client
	chatModel   string
	reportModel string
}

func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = openai.GPT4
	}
	reportModel := cfg.ReportModel
	if reportModel == "" {
		reportModel = chatModel
	}
	return &OpenAIClient{
		client:      openai.NewClient(cfg.APIKey),
		chatModel:   chatModel,
		reportModel: reportModel,
	}, nil
}

// Chat sends the system prompt, the recent history, a context message
// carrying the serialized record/stage, and the latest user message, and
// returns the assistant reply.
func (c *OpenAIClient) Chat(ctx context.Context, systemPrompt string, history []intake.Message, contextMsg, userMsg string) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+3)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleAssistant
		if m.Type == "user" {
			role = openai.ChatMessageRoleUser
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: contextMsg},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userMsg},
	)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    msgs,
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return fallbackReply, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// ReportAnalysis generates the narrative analysis body for the PDF report.
func (c *OpenAIClient) ReportAnalysis(ctx context.Context, systemPrompt, analysisPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.reportModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: analysisPrompt},
		},
		MaxTokens:   2000,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("report completion request: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return fallbackAnalysis, nil
	}
	return resp.Choices[0].Message.Content, nil
}
