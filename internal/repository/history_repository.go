package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/workout-api/internal/database"
	"github.com/yukikurage/workout-api/internal/models"
)

// GormHistoryRepository is a GORM implementation of HistoryRepository
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Create appends a history record
func (r *GormHistoryRepository) Create(record *models.History) error {
	return r.db.Create(record).Error
}

// ListByUser lists a user's history in creation order
func (r *GormHistoryRepository) ListByUser(userID uint64) ([]models.History, error) {
	var records []models.History
	err := r.db.Scopes(database.OwnedBy(userID)).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteOwned hard deletes a record by ID and owner and reports rows affected
func (r *GormHistoryRepository) DeleteOwned(userID, recordID uint64) (int64, error) {
	result := r.db.Scopes(database.OwnedRecord(userID, recordID)).Delete(&models.History{})
	return result.RowsAffected, result.Error
}
