package services

import (
	"strings"
	"time"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/models"
	"github.com/yukikurage/workout-api/internal/repository"
)

// GoalService manages user-owned goals.
type GoalService struct {
	store repository.Store
	now   func() time.Time
}

// NewGoalService creates a new GoalService.
func NewGoalService(store repository.Store) *GoalService {
	return &GoalService{store: store, now: time.Now}
}

// CreateGoalInput holds the fields for a new goal.
type CreateGoalInput struct {
	Name                string
	StartDate           *time.Time
	EndDate             *time.Time
	RangeMin            *int
	RangeMax            *int
	SelectedExerciseIDs []uint64
	Completed           bool
	GoalTypeID          uint64
}

// GoalPatch holds the fields to overwrite. Nil fields are left unchanged;
// a non-nil empty SelectedExerciseIDs clears the selection.
type GoalPatch struct {
	Name                *string
	StartDate           *time.Time
	EndDate             *time.Time
	RangeMin            *int
	RangeMax            *int
	SelectedExerciseIDs []uint64
	Completed           *bool
	GoalTypeID          *uint64
}

// GoalDetails is a goal hydrated with the catalog exercises it selects.
// Selected ids with no catalog row are skipped.
type GoalDetails struct {
	Goal      models.Goal
	Exercises []models.Exercise
}

// CreateGoal validates the goal type and owner and persists a new goal.
func (s *GoalService) CreateGoal(p auth.Principal, input CreateGoalInput) (*models.Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGoalNameRequired
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	if err := validateTargetRange(input.RangeMin, input.RangeMax); err != nil {
		return nil, err
	}

	var goal *models.Goal
	err := inTransaction(s.store, func(tx repository.Store) error {
		goalType, err := tx.Catalog().FindGoalType(input.GoalTypeID)
		if err != nil {
			return lookupFailure("find goal type", err, ErrGoalTypeNotFound)
		}
		if _, err := tx.Users().FindByID(p.ID); err != nil {
			return lookupFailure("find user", err, ErrUserNotFound)
		}

		goal = &models.Goal{
			Name:                name,
			UserID:              p.ID,
			StartDate:           input.StartDate,
			EndDate:             input.EndDate,
			RangeMin:            input.RangeMin,
			RangeMax:            input.RangeMax,
			SelectedExerciseIDs: models.NewExerciseIDSet(input.SelectedExerciseIDs...),
			Completed:           input.Completed,
			GoalTypeID:          goalType.ID,
			CreatedAt:           s.now(),
		}
		if err := tx.Goals().Create(goal); err != nil {
			return storeFailure("create goal", err)
		}
		goal.GoalType = *goalType
		return nil
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// ListGoals returns the caller's goals, dated goals first by start date and
// then by creation time. An empty result is ErrNoGoals.
func (s *GoalService) ListGoals(p auth.Principal) ([]GoalDetails, error) {
	goals, err := s.store.Goals().ListByUser(p.ID)
	if err != nil {
		return nil, storeFailure("list goals", err)
	}
	if len(goals) == 0 {
		return nil, ErrNoGoals
	}

	var selected []uint64
	for _, goal := range goals {
		selected = append(selected, goal.SelectedExerciseIDs...)
	}
	found, err := s.store.Catalog().FindExercisesByIDs(models.NewExerciseIDSet(selected...))
	if err != nil {
		return nil, storeFailure("hydrate goal exercises", err)
	}
	byID := make(map[uint64]models.Exercise, len(found))
	for _, ex := range found {
		byID[ex.ID] = ex
	}

	details := make([]GoalDetails, 0, len(goals))
	for _, goal := range goals {
		exercises := make([]models.Exercise, 0, len(goal.SelectedExerciseIDs))
		for _, id := range goal.SelectedExerciseIDs {
			if ex, ok := byID[id]; ok {
				exercises = append(exercises, ex)
			}
		}
		details = append(details, GoalDetails{Goal: goal, Exercises: exercises})
	}
	return details, nil
}

// GetGoal returns one of the caller's goals.
func (s *GoalService) GetGoal(p auth.Principal, goalID uint64) (*GoalDetails, error) {
	goal, err := s.store.Goals().FindOwned(p.ID, goalID)
	if err != nil {
		return nil, lookupFailure("find goal", err, ErrGoalNotFound)
	}
	if !Authorize(p, goal.UserID) {
		return nil, ErrGoalNotFound
	}

	exercises, err := s.store.Catalog().FindExercisesByIDs(goal.SelectedExerciseIDs)
	if err != nil {
		return nil, storeFailure("hydrate goal exercises", err)
	}
	return &GoalDetails{Goal: *goal, Exercises: exercises}, nil
}

// UpdateGoal overwrites the patched fields of one of the caller's goals.
func (s *GoalService) UpdateGoal(p auth.Principal, goalID uint64, patch GoalPatch) (*models.Goal, error) {
	var goal *models.Goal
	err := inTransaction(s.store, func(tx repository.Store) error {
		var err error
		goal, err = tx.Goals().FindOwned(p.ID, goalID)
		if err != nil {
			return lookupFailure("find goal", err, ErrGoalNotFound)
		}
		if !Authorize(p, goal.UserID) {
			return ErrGoalNotFound
		}

		if patch.GoalTypeID != nil {
			goalType, err := tx.Catalog().FindGoalType(*patch.GoalTypeID)
			if err != nil {
				return lookupFailure("find goal type", err, ErrGoalTypeNotFound)
			}
			goal.GoalTypeID = goalType.ID
			goal.GoalType = *goalType
		}

		if err := applyGoalPatch(goal, patch); err != nil {
			return err
		}
		if err := tx.Goals().Update(goal); err != nil {
			return storeFailure("update goal", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteGoal removes one of the caller's goals. Schedules linked to it keep
// their stored exercise selection.
func (s *GoalService) DeleteGoal(p auth.Principal, goalID uint64) error {
	return inTransaction(s.store, func(tx repository.Store) error {
		deleted, err := tx.Goals().DeleteOwned(p.ID, goalID)
		if err != nil {
			return storeFailure("delete goal", err)
		}
		if deleted == 0 {
			return ErrGoalNotFound
		}
		return nil
	})
}

func applyGoalPatch(goal *models.Goal, patch GoalPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return ErrGoalNameRequired
		}
		goal.Name = name
	}
	if patch.StartDate != nil {
		goal.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		goal.EndDate = patch.EndDate
	}
	if patch.RangeMin != nil {
		goal.RangeMin = patch.RangeMin
	}
	if patch.RangeMax != nil {
		goal.RangeMax = patch.RangeMax
	}
	if patch.SelectedExerciseIDs != nil {
		goal.SelectedExerciseIDs = models.NewExerciseIDSet(patch.SelectedExerciseIDs...)
	}
	if patch.Completed != nil {
		goal.Completed = *patch.Completed
	}

	if err := validateDateRange(goal.StartDate, goal.EndDate); err != nil {
		return err
	}
	return validateTargetRange(goal.RangeMin, goal.RangeMax)
}
