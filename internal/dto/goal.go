package dto

import (
	"time"

	"github.com/yukikurage/workout-api/internal/models"
)

// GoalDTO represents a goal in API responses
type GoalDTO struct {
	ID                  uint64               `json:"id"`
	Name                string               `json:"name"`
	UserID              uint64               `json:"user_id"`
	StartDate           *time.Time           `json:"start_date"`
	EndDate             *time.Time           `json:"end_date"`
	RangeMin            *int                 `json:"range_min"`
	RangeMax            *int                 `json:"range_max"`
	SelectedExerciseIDs []uint64             `json:"selected_exercise_ids"`
	Completed           bool                 `json:"completed"`
	GoalTypeID          uint64               `json:"goal_type_id"`
	GoalTarget          string               `json:"goal_target,omitempty"`
	Exercises           []ExerciseSummaryDTO `json:"exercises,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// ToGoalDTO converts a Goal model to GoalDTO. exercises may be nil.
func ToGoalDTO(goal models.Goal, exercises []models.Exercise) GoalDTO {
	out := GoalDTO{
		ID:                  goal.ID,
		Name:                goal.Name,
		UserID:              goal.UserID,
		StartDate:           goal.StartDate,
		EndDate:             goal.EndDate,
		RangeMin:            goal.RangeMin,
		RangeMax:            goal.RangeMax,
		SelectedExerciseIDs: goal.SelectedExerciseIDs.Slice(),
		Completed:           goal.Completed,
		GoalTypeID:          goal.GoalTypeID,
		GoalTarget:          goal.GoalType.TargetLabel,
		CreatedAt:           goal.CreatedAt,
		UpdatedAt:           goal.UpdatedAt,
	}
	if exercises != nil {
		out.Exercises = ToExerciseSummaryDTOs(exercises)
	}
	return out
}
