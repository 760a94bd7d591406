package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/models"
	"github.com/yukikurage/workout-api/internal/repository"
)

// ScheduleService manages user-owned schedules and keeps their exercise
// selection reconciled with the linked goal.
type ScheduleService struct {
	store repository.Store
	now   func() time.Time
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(store repository.Store) *ScheduleService {
	return &ScheduleService{store: store, now: time.Now}
}

// CreateScheduleInput holds the fields for a new schedule.
type CreateScheduleInput struct {
	GoalID              *uint64
	StartDate           *time.Time
	EndDate             *time.Time
	SelectedExerciseIDs []uint64
	Note                string
	ExtendedNote        string
	RecurrenceExpr      string
}

// SchedulePatch holds the fields to overwrite. Nil fields are left unchanged.
type SchedulePatch struct {
	GoalID              *uint64
	StartDate           *time.Time
	EndDate             *time.Time
	SelectedExerciseIDs []uint64
	Note                *string
	ExtendedNote        *string
	RecurrenceExpr      *string
}

// CreateSchedule persists a schedule. When linked to a goal, the stored
// selection is the union of the goal's and the requested exercises.
func (s *ScheduleService) CreateSchedule(p auth.Principal, input CreateScheduleInput) (*models.Schedule, error) {
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	var schedule *models.Schedule
	err := inTransaction(s.store, func(tx repository.Store) error {
		if _, err := tx.Users().FindByID(p.ID); err != nil {
			return lookupFailure("find user", err, ErrUserNotFound)
		}

		selected := models.NewExerciseIDSet(input.SelectedExerciseIDs...)
		if input.GoalID != nil {
			goal, err := tx.Goals().FindByID(*input.GoalID)
			if err != nil {
				return lookupFailure("find goal", err, ErrGoalNotFound)
			}
			selected = Reconcile(goal.SelectedExerciseIDs, selected)
		}

		schedule = &models.Schedule{
			UserID:              p.ID,
			GoalID:              input.GoalID,
			StartDate:           input.StartDate,
			EndDate:             input.EndDate,
			SelectedExerciseIDs: selected,
			Note:                input.Note,
			ExtendedNote:        input.ExtendedNote,
			RecurrenceExpr:      input.RecurrenceExpr,
			CreatedAt:           s.now(),
		}
		if err := tx.Schedules().Create(schedule); err != nil {
			return storeFailure("create schedule", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// ListSchedules returns the caller's schedules with each selection
// recomputed against the linked goal's current set. Schedules whose goal no
// longer exists report their stored selection. Nothing is written back.
func (s *ScheduleService) ListSchedules(p auth.Principal) ([]models.Schedule, error) {
	schedules, err := s.store.Schedules().ListByUser(p.ID)
	if err != nil {
		return nil, storeFailure("list schedules", err)
	}
	if len(schedules) == 0 {
		return nil, ErrNoSchedules
	}

	goalIDs := make([]uint64, 0, len(schedules))
	for _, schedule := range schedules {
		if schedule.GoalID != nil {
			goalIDs = append(goalIDs, *schedule.GoalID)
		}
	}
	goals, err := s.store.Goals().FindByIDs(goalIDs)
	if err != nil {
		return nil, storeFailure("load linked goals", err)
	}
	byID := make(map[uint64]models.ExerciseIDSet, len(goals))
	for _, goal := range goals {
		byID[goal.ID] = goal.SelectedExerciseIDs
	}

	for i := range schedules {
		if schedules[i].GoalID == nil {
			continue
		}
		if goalExercises, ok := byID[*schedules[i].GoalID]; ok {
			schedules[i].SelectedExerciseIDs = Reconcile(goalExercises, schedules[i].SelectedExerciseIDs)
		}
	}
	return schedules, nil
}

// GetSchedule returns one of the caller's schedules with its selection
// reconciled like ListSchedules.
func (s *ScheduleService) GetSchedule(p auth.Principal, scheduleID uint64) (*models.Schedule, error) {
	schedule, err := s.store.Schedules().FindOwned(p.ID, scheduleID)
	if err != nil {
		return nil, lookupFailure("find schedule", err, ErrScheduleNotFound)
	}
	if !Authorize(p, schedule.UserID) {
		return nil, ErrScheduleNotFound
	}

	if schedule.GoalID != nil {
		goal, err := s.store.Goals().FindByID(*schedule.GoalID)
		switch {
		case err == nil:
			schedule.SelectedExerciseIDs = Reconcile(goal.SelectedExerciseIDs, schedule.SelectedExerciseIDs)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, storeFailure("find goal", err)
		}
	}
	return schedule, nil
}

// UpdateSchedule overwrites the patched fields of one of the caller's
// schedules. If the schedule is linked to a goal, the resulting selection is
// re-reconciled against that goal's current set before saving. A goal_id in
// the patch must name an existing goal.
func (s *ScheduleService) UpdateSchedule(p auth.Principal, scheduleID uint64, patch SchedulePatch) (*models.Schedule, error) {
	var schedule *models.Schedule
	err := inTransaction(s.store, func(tx repository.Store) error {
		var err error
		schedule, err = tx.Schedules().FindOwned(p.ID, scheduleID)
		if err != nil {
			return lookupFailure("find schedule", err, ErrScheduleNotFound)
		}
		if !Authorize(p, schedule.UserID) {
			return ErrScheduleNotFound
		}

		applySchedulePatch(schedule, patch)
		if err := validateDateRange(schedule.StartDate, schedule.EndDate); err != nil {
			return err
		}

		if schedule.GoalID != nil {
			goal, err := tx.Goals().FindByID(*schedule.GoalID)
			switch {
			case err == nil:
				schedule.SelectedExerciseIDs = Reconcile(goal.SelectedExerciseIDs, schedule.SelectedExerciseIDs)
			case errors.Is(err, gorm.ErrRecordNotFound):
				if patch.GoalID != nil {
					return ErrGoalNotFound
				}
			default:
				return storeFailure("find goal", err)
			}
		}

		if err := tx.Schedules().Update(schedule); err != nil {
			return storeFailure("update schedule", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// DeleteSchedule removes one of the caller's schedules.
func (s *ScheduleService) DeleteSchedule(p auth.Principal, scheduleID uint64) error {
	return inTransaction(s.store, func(tx repository.Store) error {
		deleted, err := tx.Schedules().DeleteOwned(p.ID, scheduleID)
		if err != nil {
			return storeFailure("delete schedule", err)
		}
		if deleted == 0 {
			return ErrScheduleNotFound
		}
		return nil
	})
}

func applySchedulePatch(schedule *models.Schedule, patch SchedulePatch) {
	if patch.GoalID != nil {
		schedule.GoalID = patch.GoalID
	}
	if patch.StartDate != nil {
		schedule.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		schedule.EndDate = patch.EndDate
	}
	if patch.SelectedExerciseIDs != nil {
		schedule.SelectedExerciseIDs = models.NewExerciseIDSet(patch.SelectedExerciseIDs...)
	}
	if patch.Note != nil {
		schedule.Note = *patch.Note
	}
	if patch.ExtendedNote != nil {
		schedule.ExtendedNote = *patch.ExtendedNote
	}
	if patch.RecurrenceExpr != nil {
		schedule.RecurrenceExpr = *patch.RecurrenceExpr
	}
}
