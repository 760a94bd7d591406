package dto

import (
	"time"

	"github.com/yukikurage/workout-api/internal/models"
)

// ScheduleDTO represents a schedule in API responses
type ScheduleDTO struct {
	ID                  uint64     `json:"id"`
	UserID              uint64     `json:"user_id"`
	GoalID              *uint64    `json:"goal_id"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	SelectedExerciseIDs []uint64   `json:"selected_exercise_ids"`
	Note                string     `json:"note"`
	ExtendedNote        string     `json:"extended_note"`
	RecurrenceExpr      string     `json:"recurrence_expr"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ToScheduleDTO converts a Schedule model to ScheduleDTO
func ToScheduleDTO(s models.Schedule) ScheduleDTO {
	return ScheduleDTO{
		ID:                  s.ID,
		UserID:              s.UserID,
		GoalID:              s.GoalID,
		StartDate:           s.StartDate,
		EndDate:             s.EndDate,
		SelectedExerciseIDs: s.SelectedExerciseIDs.Slice(),
		Note:                s.Note,
		ExtendedNote:        s.ExtendedNote,
		RecurrenceExpr:      s.RecurrenceExpr,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func ToScheduleDTOs(schedules []models.Schedule) []ScheduleDTO {
	out := make([]ScheduleDTO, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, ToScheduleDTO(s))
	}
	return out
}
