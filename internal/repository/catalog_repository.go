package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/workout-api/internal/models"
)

// GormCatalogRepository is a GORM implementation of CatalogRepository
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) FindGoalType(id uint64) (*models.GoalType, error) {
	var goalType models.GoalType
	if err := r.db.First(&goalType, id).Error; err != nil {
		return nil, err
	}
	return &goalType, nil
}

func (r *GormCatalogRepository) FindExerciseType(id uint64) (*models.ExerciseType, error) {
	var exerciseType models.ExerciseType
	if err := r.db.First(&exerciseType, id).Error; err != nil {
		return nil, err
	}
	return &exerciseType, nil
}

func (r *GormCatalogRepository) FindExerciseUnit(id uint64) (*models.ExerciseUnit, error) {
	var unit models.ExerciseUnit
	if err := r.db.First(&unit, id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// FindExercise finds an exercise with its type, unit and goal type
func (r *GormCatalogRepository) FindExercise(id uint64) (*models.Exercise, error) {
	var exercise models.Exercise
	err := r.db.Preload("ExerciseType").
		Preload("Unit").
		Preload("GoalType").
		First(&exercise, id).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// FindExercisesByIDs returns the exercises that exist among ids, ordered by ID
func (r *GormCatalogRepository) FindExercisesByIDs(ids []uint64) ([]models.Exercise, error) {
	exercises := []models.Exercise{}
	if len(ids) == 0 {
		return exercises, nil
	}
	err := r.db.Preload("ExerciseType").
		Preload("Unit").
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&exercises).Error
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *GormCatalogRepository) ListGoalTypes() ([]models.GoalType, error) {
	var goalTypes []models.GoalType
	if err := r.db.Order("id ASC").Find(&goalTypes).Error; err != nil {
		return nil, err
	}
	return goalTypes, nil
}

func (r *GormCatalogRepository) ListExerciseTypes() ([]models.ExerciseType, error) {
	var exerciseTypes []models.ExerciseType
	if err := r.db.Order("id ASC").Find(&exerciseTypes).Error; err != nil {
		return nil, err
	}
	return exerciseTypes, nil
}

func (r *GormCatalogRepository) ListExerciseUnits() ([]models.ExerciseUnit, error) {
	var units []models.ExerciseUnit
	if err := r.db.Order("id ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// ListExercises lists exercises ordered by exercise type then ID
func (r *GormCatalogRepository) ListExercises(filter ExerciseFilter) ([]models.Exercise, error) {
	var exercises []models.Exercise
	query := r.db.Model(&models.Exercise{}).
		Preload("ExerciseType").
		Preload("Unit")

	if filter.GoalTypeID != nil {
		query = query.Where("exercises.goal_type_id = ?", *filter.GoalTypeID)
	}
	if filter.ExerciseTypeID != nil {
		query = query.Where("exercises.exercise_type_id = ?", *filter.ExerciseTypeID)
	}

	if err := query.Order("exercises.exercise_type_id ASC, exercises.id ASC").Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *GormCatalogRepository) UpsertGoalTypes(rows []models.GoalType) error {
	return r.upsert(rows, len(rows))
}

func (r *GormCatalogRepository) UpsertExerciseTypes(rows []models.ExerciseType) error {
	return r.upsert(rows, len(rows))
}

func (r *GormCatalogRepository) UpsertExerciseUnits(rows []models.ExerciseUnit) error {
	return r.upsert(rows, len(rows))
}

func (r *GormCatalogRepository) UpsertExercises(rows []models.Exercise) error {
	return r.upsert(rows, len(rows))
}

func (r *GormCatalogRepository) upsert(rows any, n int) error {
	if n == 0 {
		return nil
	}
	return r.db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(rows).Error
}
