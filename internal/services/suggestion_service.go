package services

import (
	"context"
	"strings"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/constants"
	"github.com/yukikurage/workout-api/internal/models"
	"github.com/yukikurage/workout-api/internal/repository"
)

// ExerciseSuggester picks catalog exercise ids for a free-text goal.
type ExerciseSuggester interface {
	SuggestExerciseIDs(ctx context.Context, text string, catalog []models.Exercise) ([]uint64, error)
}

// SuggestionService proposes exercises for a new goal.
type SuggestionService struct {
	store     repository.Store
	suggester ExerciseSuggester
}

// NewSuggestionService creates a new SuggestionService. suggester may be nil,
// in which case every call returns ErrAIUnavailable.
func NewSuggestionService(store repository.Store, suggester ExerciseSuggester) *SuggestionService {
	return &SuggestionService{store: store, suggester: suggester}
}

// SuggestInput is the free-text description of the goal.
type SuggestInput struct {
	Text       string
	GoalTypeID *uint64
}

// SuggestExercises returns catalog exercises matching the description, in
// the order the model ranked them. Ids that are not in the catalog are dropped.
func (s *SuggestionService) SuggestExercises(ctx context.Context, p auth.Principal, input SuggestInput) ([]models.Exercise, error) {
	if s.suggester == nil {
		return nil, ErrAIUnavailable
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrSuggestionText
	}
	if _, err := s.store.Users().FindByID(p.ID); err != nil {
		return nil, lookupFailure("find user", err, ErrUserNotFound)
	}

	catalog, err := s.store.Catalog().ListExercises(repository.ExerciseFilter{GoalTypeID: input.GoalTypeID})
	if err != nil {
		return nil, storeFailure("list exercises", err)
	}
	if len(catalog) == 0 {
		return nil, ErrNoExercises
	}

	ids, err := s.suggester.SuggestExerciseIDs(ctx, text, catalog)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]models.Exercise, len(catalog))
	for _, e := range catalog {
		byID[e.ID] = e
	}

	picked := make([]models.Exercise, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		exercise, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		picked = append(picked, exercise)
		if len(picked) == constants.MaxSuggestedExercises {
			break
		}
	}
	if len(picked) == 0 {
		return nil, ErrNoSuggestions
	}
	return picked, nil
}
