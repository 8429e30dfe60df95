// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/rampart/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ModelCaller implements ai.ModelCaller using OpenAI-compatible chat APIs.
type ModelCaller struct {
	client llms.Model
	logger *slog.Logger
}

// newModelCaller is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newModelCaller(config *ai.Config) (*ModelCaller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &ModelCaller{
		client: client,
		logger: slog.Default().With("component", "openai-caller"),
	}, nil
}

// NewModelCaller creates a new model caller using the provided configuration.
//
// Returns ai.ModelCaller interface to enforce abstraction.
func NewModelCaller(config *ai.Config) (ai.ModelCaller, error) {
	return newModelCaller(config)
}

// Call sends the messages to the chat model and returns its reply.
func (c *ModelCaller) Call(ctx context.Context, req ai.ModelRequest) (*ai.ModelResponse, error) {
	if len(req.Messages) == 0 {
		return nil, errors.New("model request has no messages")
	}

	content := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		content = append(content, llms.MessageContent{
			Role:  chatRole(m.Role),
			Parts: []llms.ContentPart{llms.TextPart(m.Content)},
		})
	}

	var opts []llms.CallOption
	if req.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	response, err := c.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		c.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return &ai.ModelResponse{}, nil
	}

	choice := response.Choices[0]
	return &ai.ModelResponse{
		Content:          choice.Content,
		PromptTokens:     generationInfoInt(choice.GenerationInfo, "PromptTokens"),
		CompletionTokens: generationInfoInt(choice.GenerationInfo, "CompletionTokens"),
	}, nil
}

func chatRole(role ai.Role) llms.ChatMessageType {
	switch role {
	case ai.RoleSystem:
		return llms.ChatMessageTypeSystem
	case ai.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

// generationInfoInt pulls an int field from GenerationInfo if the provider
// reported it; providers that omit usage yield 0.
func generationInfoInt(info map[string]any, key string) int {
	if info == nil {
		return 0
	}
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
