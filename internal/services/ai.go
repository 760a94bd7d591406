package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/yukikurage/workout-api/internal/models"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AIService asks a chat model to pick catalog exercises for a free-text goal.
type AIService struct {
	client chatCompleter
	model  string
}

type suggestion struct {
	ExerciseIDs []uint64 `json:"exercise_ids"`
}

// NewAIService creates an AIService backed by the OpenAI API.
func NewAIService(apiKey, model string) *AIService {
	if model == "" {
		model = openai.GPT4o
	}
	return &AIService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// SuggestExerciseIDs returns the catalog ids the model picked for text.
func (s *AIService) SuggestExerciseIDs(ctx context.Context, text string, catalog []models.Exercise) ([]uint64, error) {
	if s == nil || s.client == nil {
		return nil, ErrAIUnavailable
	}

	var lines strings.Builder
	for _, e := range catalog {
		fmt.Fprintf(&lines, "- %d: %s", e.ID, e.Name)
		if e.TargetMuscles != nil {
			fmt.Fprintf(&lines, " (muscles: %s)", *e.TargetMuscles)
		}
		if e.Difficulty != nil {
			fmt.Fprintf(&lines, " [difficulty: %s]", *e.Difficulty)
		}
		lines.WriteString("\n")
	}

	prompt := fmt.Sprintf(`You are a fitness coach. Pick the exercises from the catalog below that best serve the user's goal.

Catalog (id: name):
%s
User goal:
%s

Reply with JSON only, in the form {"exercise_ids": [1, 2, 3]}.
Use only ids from the catalog. Return an empty array when nothing fits.`, lines.String(), text)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %w", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response from openai", ErrUnavailable)
	}

	return parseSuggestion(resp.Choices[0].Message.Content)
}

func parseSuggestion(content string) ([]uint64, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var out suggestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &out); err != nil {
		return nil, fmt.Errorf("%w: failed to parse suggestion: %w", ErrUnavailable, err)
	}
	return out.ExerciseIDs, nil
}
