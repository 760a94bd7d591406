package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/workout-api/internal/repository"
)

// Error kinds. Every error a service returns wraps exactly one of these.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrStoreFailure    = errors.New("store failure")
	ErrUnavailable     = errors.New("service unavailable")
	ErrInternal        = errors.New("internal error")
)

var (
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrGoalNotFound         = fmt.Errorf("goal %w", ErrNotFound)
	ErrGoalTypeNotFound     = fmt.Errorf("goal type %w", ErrNotFound)
	ErrScheduleNotFound     = fmt.Errorf("schedule %w", ErrNotFound)
	ErrHistoryNotFound      = fmt.Errorf("history record %w", ErrNotFound)
	ErrExerciseNotFound     = fmt.Errorf("exercise %w", ErrNotFound)
	ErrExerciseTypeNotFound = fmt.Errorf("exercise type %w", ErrNotFound)
	ErrExerciseUnitNotFound = fmt.Errorf("exercise unit %w", ErrNotFound)

	ErrNoGoals         = fmt.Errorf("goals %w for user", ErrNotFound)
	ErrNoSchedules     = fmt.Errorf("schedules %w for user", ErrNotFound)
	ErrNoHistory       = fmt.Errorf("history %w for user", ErrNotFound)
	ErrNoGoalTypes     = fmt.Errorf("goal types %w", ErrNotFound)
	ErrNoExerciseTypes = fmt.Errorf("exercise types %w", ErrNotFound)
	ErrNoExerciseUnits = fmt.Errorf("exercise units %w", ErrNotFound)
	ErrNoExercises     = fmt.Errorf("exercises %w", ErrNotFound)
	ErrNoSuggestions   = fmt.Errorf("suggested exercises %w", ErrNotFound)
)

var (
	ErrInvalidDateRange   = fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidInput)
	ErrInvalidTargetRange = fmt.Errorf("%w: range_min must not exceed range_max", ErrInvalidInput)
	ErrGoalNameRequired   = fmt.Errorf("%w: goal name is required", ErrInvalidInput)
	ErrUsernameRequired   = fmt.Errorf("%w: username is required", ErrInvalidInput)
	ErrPasswordTooShort   = fmt.Errorf("%w: password too short", ErrInvalidInput)
	ErrPasswordTooLong    = fmt.Errorf("%w: password must not exceed 72 bytes", ErrInvalidInput)
	ErrInvalidMetricValue = fmt.Errorf("%w: metric value must be a non-negative number", ErrInvalidInput)
	ErrNegativeMeasure    = fmt.Errorf("%w: weight and height must not be negative", ErrInvalidInput)
	ErrSuggestionText     = fmt.Errorf("%w: text is required", ErrInvalidInput)

	ErrUsernameTaken      = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrUnauthenticated)
	ErrAIUnavailable      = fmt.Errorf("%w: exercise suggestions are not configured", ErrUnavailable)
)

var kinds = []error{
	ErrUnauthenticated,
	ErrNotFound,
	ErrInvalidInput,
	ErrConflict,
	ErrStoreFailure,
	ErrUnavailable,
	ErrInternal,
}

// storeFailure wraps an unexpected persistence error.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err)
}

// internalFailure wraps an unexpected error that did not come from the store.
func internalFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

// lookupFailure maps a missing row to notFound and anything else to a store failure.
func lookupFailure(op string, err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return storeFailure(op, err)
}

func hasKind(err error) bool {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// inTransaction runs fn in a store transaction. Errors from fn pass through
// unchanged; begin and commit failures become store failures.
func inTransaction(store repository.Store, fn func(tx repository.Store) error) error {
	err := store.Transaction(fn)
	if err == nil || hasKind(err) {
		return err
	}
	return storeFailure("transaction", err)
}
