package services

import "github.com/yukikurage/workout-api/internal/models"

// Reconcile merges the exercise selections of a goal and a schedule into one
// set. The result is the sorted union of both inputs.
func Reconcile(goalExercises, scheduleExercises models.ExerciseIDSet) models.ExerciseIDSet {
	merged := make([]uint64, 0, len(goalExercises)+len(scheduleExercises))
	merged = append(merged, goalExercises...)
	merged = append(merged, scheduleExercises...)
	return models.NewExerciseIDSet(merged...)
}
