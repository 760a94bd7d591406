package repository

import (
	"github.com/yukikurage/workout-api/internal/models"
)

// Store groups the repositories and runs work inside a single transaction.
type Store interface {
	Users() UserRepository
	Goals() GoalRepository
	Schedules() ScheduleRepository
	Histories() HistoryRepository
	Catalog() CatalogRepository

	// Transaction runs fn against a Store bound to one database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	Transaction(fn func(tx Store) error) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update saves the user's profile columns
	Update(user *models.User) error
}

// GoalRepository defines the interface for goal data access
type GoalRepository interface {
	// Create creates a new goal
	Create(goal *models.Goal) error

	// FindByID finds a goal by ID regardless of owner
	FindByID(id uint64) (*models.Goal, error)

	// FindByIDs finds the goals with the given IDs regardless of owner
	FindByIDs(ids []uint64) ([]models.Goal, error)

	// FindOwned finds a goal by ID and owner in a single predicate
	FindOwned(userID, goalID uint64) (*models.Goal, error)

	// ListByUser lists a user's goals, undated goals last
	ListByUser(userID uint64) ([]models.Goal, error)

	// Update saves every column of the goal
	Update(goal *models.Goal) error

	// DeleteOwned hard deletes a goal by ID and owner and reports rows affected
	DeleteOwned(userID, goalID uint64) (int64, error)
}

// ScheduleRepository defines the interface for schedule data access
type ScheduleRepository interface {
	// Create creates a new schedule
	Create(schedule *models.Schedule) error

	// FindOwned finds a schedule by ID and owner in a single predicate
	FindOwned(userID, scheduleID uint64) (*models.Schedule, error)

	// ListByUser lists a user's schedules, undated schedules last
	ListByUser(userID uint64) ([]models.Schedule, error)

	// Update saves every column of the schedule
	Update(schedule *models.Schedule) error

	// DeleteOwned hard deletes a schedule by ID and owner and reports rows affected
	DeleteOwned(userID, scheduleID uint64) (int64, error)
}

// HistoryRepository defines the interface for profile history data access
type HistoryRepository interface {
	// Create appends a history record
	Create(record *models.History) error

	// ListByUser lists a user's history in creation order
	ListByUser(userID uint64) ([]models.History, error)

	// DeleteOwned hard deletes a record by ID and owner and reports rows affected
	DeleteOwned(userID, recordID uint64) (int64, error)
}

// CatalogRepository defines the interface for reference data access
type CatalogRepository interface {
	FindGoalType(id uint64) (*models.GoalType, error)
	FindExerciseType(id uint64) (*models.ExerciseType, error)
	FindExerciseUnit(id uint64) (*models.ExerciseUnit, error)

	// FindExercise finds an exercise with its type, unit and goal type
	FindExercise(id uint64) (*models.Exercise, error)

	// FindExercisesByIDs returns the exercises that exist among ids, ordered by ID
	FindExercisesByIDs(ids []uint64) ([]models.Exercise, error)

	ListGoalTypes() ([]models.GoalType, error)
	ListExerciseTypes() ([]models.ExerciseType, error)
	ListExerciseUnits() ([]models.ExerciseUnit, error)

	// ListExercises lists exercises ordered by exercise type then ID
	ListExercises(filter ExerciseFilter) ([]models.Exercise, error)

	// Upsert* insert rows or overwrite existing rows with the same ID
	UpsertGoalTypes(rows []models.GoalType) error
	UpsertExerciseTypes(rows []models.ExerciseType) error
	UpsertExerciseUnits(rows []models.ExerciseUnit) error
	UpsertExercises(rows []models.Exercise) error
}

// ExerciseFilter holds filtering options for listing exercises
type ExerciseFilter struct {
	GoalTypeID     *uint64
	ExerciseTypeID *uint64
}
