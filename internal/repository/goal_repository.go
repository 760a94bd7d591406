package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/workout-api/internal/database"
	"github.com/yukikurage/workout-api/internal/models"
)

// GormGoalRepository is a GORM implementation of GoalRepository
type GormGoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &GormGoalRepository{db: db}
}

// Create creates a new goal
func (r *GormGoalRepository) Create(goal *models.Goal) error {
	return r.db.Omit(clause.Associations).Create(goal).Error
}

// FindByID finds a goal by ID regardless of owner
func (r *GormGoalRepository) FindByID(id uint64) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.First(&goal, id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindByIDs finds the goals with the given IDs regardless of owner
func (r *GormGoalRepository) FindByIDs(ids []uint64) ([]models.Goal, error) {
	var goals []models.Goal
	if len(ids) == 0 {
		return goals, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// FindOwned finds a goal by ID and owner in a single predicate
func (r *GormGoalRepository) FindOwned(userID, goalID uint64) (*models.Goal, error) {
	var goal models.Goal
	err := r.db.Scopes(database.OwnedRecord(userID, goalID)).
		Preload("GoalType").
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListByUser lists a user's goals, undated goals last
func (r *GormGoalRepository) ListByUser(userID uint64) ([]models.Goal, error) {
	var goals []models.Goal
	err := r.db.Scopes(database.OwnedBy(userID)).
		Preload("GoalType").
		Order("CASE WHEN goals.start_date IS NULL THEN 1 ELSE 0 END, goals.start_date ASC, goals.created_at ASC, goals.id ASC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// Update saves every column of the goal
func (r *GormGoalRepository) Update(goal *models.Goal) error {
	return r.db.Omit(clause.Associations).Save(goal).Error
}

// DeleteOwned hard deletes a goal by ID and owner and reports rows affected
func (r *GormGoalRepository) DeleteOwned(userID, goalID uint64) (int64, error) {
	result := r.db.Scopes(database.OwnedRecord(userID, goalID)).Delete(&models.Goal{})
	return result.RowsAffected, result.Error
}
