package models

import "time"

// Schedule is a planned block of exercises, optionally linked to a goal.
// GoalID is a loose reference: the goal may be deleted independently.
type Schedule struct {
	ID                  uint64        `gorm:"primarykey" json:"id"`
	UserID              uint64        `gorm:"not null" json:"user_id"`
	GoalID              *uint64       `json:"goal_id"`
	StartDate           *time.Time    `json:"start_date"`
	EndDate             *time.Time    `json:"end_date"`
	SelectedExerciseIDs ExerciseIDSet `gorm:"type:text" json:"selected_exercise_ids"`
	Note                string        `gorm:"type:varchar(255)" json:"note"`
	ExtendedNote        string        `gorm:"type:text" json:"extended_note"`
	RecurrenceExpr      string        `gorm:"type:varchar(100)" json:"recurrence_expr"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}
