package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/workout-api/internal/database"
	"github.com/yukikurage/workout-api/internal/models"
)

// GormScheduleRepository is a GORM implementation of ScheduleRepository
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// Create creates a new schedule
func (r *GormScheduleRepository) Create(schedule *models.Schedule) error {
	return r.db.Create(schedule).Error
}

// FindOwned finds a schedule by ID and owner in a single predicate
func (r *GormScheduleRepository) FindOwned(userID, scheduleID uint64) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := r.db.Scopes(database.OwnedRecord(userID, scheduleID)).First(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListByUser lists a user's schedules, undated schedules last
func (r *GormScheduleRepository) ListByUser(userID uint64) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := r.db.Scopes(database.OwnedBy(userID)).
		Order("CASE WHEN schedules.start_date IS NULL THEN 1 ELSE 0 END, schedules.start_date ASC, schedules.created_at ASC, schedules.id ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// Update saves every column of the schedule
func (r *GormScheduleRepository) Update(schedule *models.Schedule) error {
	return r.db.Save(schedule).Error
}

// DeleteOwned hard deletes a schedule by ID and owner and reports rows affected
func (r *GormScheduleRepository) DeleteOwned(userID, scheduleID uint64) (int64, error) {
	result := r.db.Scopes(database.OwnedRecord(userID, scheduleID)).Delete(&models.Schedule{})
	return result.RowsAffected, result.Error
}
