package models

import "time"

// Goal is a user-owned training target. Deletes are hard deletes.
type Goal struct {
	ID                  uint64        `gorm:"primarykey" json:"id"`
	Name                string        `gorm:"type:varchar(255);not null" json:"name"`
	UserID              uint64        `gorm:"not null" json:"user_id"`
	StartDate           *time.Time    `json:"start_date"`
	EndDate             *time.Time    `json:"end_date"`
	RangeMin            *int          `json:"range_min"`
	RangeMax            *int          `json:"range_max"`
	SelectedExerciseIDs ExerciseIDSet `gorm:"type:text" json:"selected_exercise_ids"`
	Completed           bool          `gorm:"not null;default:false" json:"completed"`
	GoalTypeID          uint64        `gorm:"not null" json:"goal_type_id"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`

	// Relations
	GoalType GoalType `gorm:"foreignKey:GoalTypeID" json:"goal_type,omitempty"`
}
