package dto

import "github.com/yukikurage/workout-api/internal/models"

type GoalTypeDTO struct {
	ID          uint64 `json:"id"`
	TargetLabel string `json:"target_label"`
}

type ExerciseTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ExerciseUnitDTO struct {
	ID            uint64  `json:"id"`
	PrimaryUnit   string  `json:"primary_unit"`
	SecondaryUnit *string `json:"secondary_unit"`
}

// ExerciseDTO represents a catalog exercise in API responses
type ExerciseDTO struct {
	ID               uint64  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Instructions     *string `json:"instructions"`
	TargetMuscles    *string `json:"target_muscles"`
	Difficulty       *string `json:"difficulty"`
	ExerciseTypeID   uint64  `json:"exercise_type_id"`
	ExerciseTypeName string  `json:"exercise_type_name,omitempty"`
	UnitID           uint64  `json:"unit_id"`
	GoalTypeID       uint64  `json:"goal_type_id"`
}

// ExerciseSummaryDTO is an exercise as embedded in a goal
type ExerciseSummaryDTO struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PrimaryUnit   string  `json:"primary_unit"`
	SecondaryUnit *string `json:"secondary_unit"`
}

func ToGoalTypeDTOs(goalTypes []models.GoalType) []GoalTypeDTO {
	out := make([]GoalTypeDTO, 0, len(goalTypes))
	for _, gt := range goalTypes {
		out = append(out, GoalTypeDTO{ID: gt.ID, TargetLabel: gt.TargetLabel})
	}
	return out
}

func ToExerciseTypeDTOs(exerciseTypes []models.ExerciseType) []ExerciseTypeDTO {
	out := make([]ExerciseTypeDTO, 0, len(exerciseTypes))
	for _, et := range exerciseTypes {
		out = append(out, ExerciseTypeDTO{ID: et.ID, Name: et.Name})
	}
	return out
}

func ToExerciseUnitDTOs(units []models.ExerciseUnit) []ExerciseUnitDTO {
	out := make([]ExerciseUnitDTO, 0, len(units))
	for _, u := range units {
		out = append(out, ExerciseUnitDTO{ID: u.ID, PrimaryUnit: u.PrimaryUnit, SecondaryUnit: u.SecondaryUnit})
	}
	return out
}

// ToExerciseDTO converts an Exercise model to ExerciseDTO
func ToExerciseDTO(e models.Exercise) ExerciseDTO {
	return ExerciseDTO{
		ID:               e.ID,
		Name:             e.Name,
		Description:      e.Description,
		Instructions:     e.Instructions,
		TargetMuscles:    e.TargetMuscles,
		Difficulty:       e.Difficulty,
		ExerciseTypeID:   e.ExerciseTypeID,
		ExerciseTypeName: e.ExerciseType.Name,
		UnitID:           e.UnitID,
		GoalTypeID:       e.GoalTypeID,
	}
}

func ToExerciseDTOs(exercises []models.Exercise) []ExerciseDTO {
	out := make([]ExerciseDTO, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, ToExerciseDTO(e))
	}
	return out
}

func ToExerciseSummaryDTOs(exercises []models.Exercise) []ExerciseSummaryDTO {
	out := make([]ExerciseSummaryDTO, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, ExerciseSummaryDTO{
			ID:            e.ID,
			Name:          e.Name,
			Description:   e.Description,
			PrimaryUnit:   e.Unit.PrimaryUnit,
			SecondaryUnit: e.Unit.SecondaryUnit,
		})
	}
	return out
}
