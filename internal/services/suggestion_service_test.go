package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	content string
	err     error
	request openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.request = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.content}},
		},
	}, nil
}

func TestSuggestExercisesFiltersToCatalog(t *testing.T) {
	store, db := setupTestStore(t)
	seedCatalog(t, db)
	alice := createTestUser(t, db, "alice")

	completer := &fakeCompleter{content: "```json\n{\"exercise_ids\": [3, 99, 1, 3]}\n```"}
	ai := &AIService{client: completer, model: "test-model"}
	svc := NewSuggestionService(store, ai)

	strength := uint64(1)
	exercises, err := svc.SuggestExercises(context.Background(), alice, SuggestInput{Text: "get stronger legs", GoalTypeID: &strength})
	require.NoError(t, err)

	ids := make([]uint64, 0, len(exercises))
	for _, e := range exercises {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []uint64{3, 1}, ids)
	assert.Equal(t, "test-model", completer.request.Model)
	assert.Contains(t, completer.request.Messages[0].Content, "get stronger legs")
	assert.Contains(t, completer.request.Messages[0].Content, "Squat")
	assert.NotContains(t, completer.request.Messages[0].Content, "Rowing")
}

func TestSuggestExercisesUnavailable(t *testing.T) {
	store, db := setupTestStore(t)
	alice := createTestUser(t, db, "alice")

	_, err := NewSuggestionService(store, nil).SuggestExercises(context.Background(), alice, SuggestInput{Text: "x"})
	assert.ErrorIs(t, err, ErrUnavailable)

	var ai *AIService
	_, err = ai.SuggestExerciseIDs(context.Background(), "x", nil)
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestSuggestExercisesErrors(t *testing.T) {
	store, db := setupTestStore(t)
	seedCatalog(t, db)
	alice := createTestUser(t, db, "alice")

	completer := &fakeCompleter{err: errors.New("rate limited")}
	svc := NewSuggestionService(store, &AIService{client: completer})

	_, err := svc.SuggestExercises(context.Background(), alice, SuggestInput{Text: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SuggestExercises(context.Background(), alice, SuggestInput{Text: "run"})
	assert.ErrorIs(t, err, ErrUnavailable)

	completer.err = nil
	completer.content = `{"exercise_ids": [42]}`
	_, err = svc.SuggestExercises(context.Background(), alice, SuggestInput{Text: "run"})
	assert.ErrorIs(t, err, ErrNoSuggestions)

	completer.content = "not json"
	_, err = svc.SuggestExercises(context.Background(), alice, SuggestInput{Text: "run"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestParseSuggestion(t *testing.T) {
	ids, err := parseSuggestion(`{"exercise_ids": [1, 2]}`)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, ids)

	ids, err = parseSuggestion(`{"exercise_ids": []}`)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

var _ ExerciseSuggester = (*AIService)(nil)
