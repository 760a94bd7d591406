package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/models"
	"github.com/yukikurage/workout-api/internal/repository"
)

type ScheduleServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	store     repository.Store
	goals     *GoalService
	schedules *ScheduleService
	alice     auth.Principal
	bob       auth.Principal
}

func (s *ScheduleServiceTestSuite) SetupTest() {
	s.store, s.db = setupTestStore(s.T())
	seedCatalog(s.T(), s.db)
	s.alice = createTestUser(s.T(), s.db, "alice")
	s.bob = createTestUser(s.T(), s.db, "bob")

	clock := fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.goals = NewGoalService(s.store)
	s.goals.now = clock
	s.schedules = NewScheduleService(s.store)
	s.schedules.now = clock
}

func (s *ScheduleServiceTestSuite) createGoal(ids ...uint64) *models.Goal {
	goal, err := s.goals.CreateGoal(s.alice, CreateGoalInput{Name: "goal", GoalTypeID: 1, SelectedExerciseIDs: ids})
	s.Require().NoError(err)
	return goal
}

func (s *ScheduleServiceTestSuite) storedSet(id uint64) models.ExerciseIDSet {
	var stored models.Schedule
	s.Require().NoError(s.db.First(&stored, id).Error)
	return stored.SelectedExerciseIDs
}

func (s *ScheduleServiceTestSuite) TestCreateLinkedScheduleStoresUnion() {
	goal := s.createGoal(1, 2)

	schedule, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{
		GoalID:              &goal.ID,
		SelectedExerciseIDs: []uint64{2, 3},
	})
	s.Require().NoError(err)
	s.Equal(models.ExerciseIDSet{1, 2, 3}, schedule.SelectedExerciseIDs)
	s.Equal(models.ExerciseIDSet{1, 2, 3}, s.storedSet(schedule.ID))
}

func (s *ScheduleServiceTestSuite) TestCreateUnlinkedScheduleStoresAsGiven() {
	schedule, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{
		SelectedExerciseIDs: []uint64{7, 5},
		Note:                "leg day",
		RecurrenceExpr:      "0 7 * * 1",
	})
	s.Require().NoError(err)
	s.Nil(schedule.GoalID)
	s.Equal(models.ExerciseIDSet{5, 7}, s.storedSet(schedule.ID))
}

func (s *ScheduleServiceTestSuite) TestCreateScheduleMissingGoal() {
	missing := uint64(999)
	_, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{GoalID: &missing})
	s.ErrorIs(err, ErrGoalNotFound)

	var count int64
	s.Require().NoError(s.db.Model(&models.Schedule{}).Count(&count).Error)
	s.Zero(count)
}

func (s *ScheduleServiceTestSuite) TestCreateScheduleMayLinkAnotherUsersGoal() {
	goal := s.createGoal(1)

	schedule, err := s.schedules.CreateSchedule(s.bob, CreateScheduleInput{GoalID: &goal.ID, SelectedExerciseIDs: []uint64{2}})
	s.Require().NoError(err)
	s.Equal(models.ExerciseIDSet{1, 2}, schedule.SelectedExerciseIDs)
}

func (s *ScheduleServiceTestSuite) TestEndToEndReadYieldsReconciledSet() {
	var user models.User
	s.Require().NoError(s.db.First(&user, s.alice.ID).Error)

	goal, err := s.goals.CreateGoal(s.alice, CreateGoalInput{Name: "strength block", GoalTypeID: 1, SelectedExerciseIDs: []uint64{10, 11}})
	s.Require().NoError(err)

	created, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{GoalID: &goal.ID, SelectedExerciseIDs: []uint64{12}})
	s.Require().NoError(err)

	read, err := s.schedules.GetSchedule(s.alice, created.ID)
	s.Require().NoError(err)
	s.Equal(models.ExerciseIDSet{10, 11, 12}, read.SelectedExerciseIDs)

	listed, err := s.schedules.ListSchedules(s.alice)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(models.ExerciseIDSet{10, 11, 12}, listed[0].SelectedExerciseIDs)
}

func (s *ScheduleServiceTestSuite) TestListRecomputesWithoutPersisting() {
	goal := s.createGoal(1)
	schedule, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{GoalID: &goal.ID, SelectedExerciseIDs: []uint64{2}})
	s.Require().NoError(err)

	_, err = s.goals.UpdateGoal(s.alice, goal.ID, GoalPatch{SelectedExerciseIDs: []uint64{1, 4}})
	s.Require().NoError(err)

	listed, err := s.schedules.ListSchedules(s.alice)
	s.Require().NoError(err)
	s.Equal(models.ExerciseIDSet{1, 2, 4}, listed[0].SelectedExerciseIDs)
	s.Equal(models.ExerciseIDSet{1, 2}, s.storedSet(schedule.ID))
}

func (s *ScheduleServiceTestSuite) TestListFallsBackWhenGoalDeleted() {
	goal := s.createGoal(1)
	schedule, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{GoalID: &goal.ID, SelectedExerciseIDs: []uint64{2}})
	s.Require().NoError(err)
	s.Require().NoError(s.goals.DeleteGoal(s.alice, goal.ID))

	listed, err := s.schedules.ListSchedules(s.alice)
	s.Require().NoError(err)
	s.Equal(models.ExerciseIDSet{1, 2}, listed[0].SelectedExerciseIDs)

	read, err := s.schedules.GetSchedule(s.alice, schedule.ID)
	s.Require().NoError(err)
	s.Equal(models.ExerciseIDSet{1, 2}, read.SelectedExerciseIDs)
}

func (s *ScheduleServiceTestSuite) TestListEmptyIsNotFound() {
	_, err := s.schedules.ListSchedules(s.alice)
	s.ErrorIs(err, ErrNoSchedules)
}

func (s *ScheduleServiceTestSuite) TestListOnlyOwnSchedules() {
	_, err := s.schedules.CreateSchedule(s.bob, CreateScheduleInput{Note: "bob"})
	s.Require().NoError(err)
	_, err = s.schedules.CreateSchedule(s.alice, CreateScheduleInput{Note: "alice", StartDate: day(2024, 2, 1)})
	s.Require().NoError(err)
	_, err = s.schedules.CreateSchedule(s.alice, CreateScheduleInput{Note: "alice-undated"})
	s.Require().NoError(err)

	listed, err := s.schedules.ListSchedules(s.alice)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal("alice", listed[0].Note)
	s.Equal("alice-undated", listed[1].Note)
}

func (s *ScheduleServiceTestSuite) TestUpdateWithGoalIDReconciles() {
	goal := s.createGoal(1, 2)
	schedule, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{SelectedExerciseIDs: []uint64{3}})
	s.Require().NoError(err)

	note := "linked"
	updated, err := s.schedules.UpdateSchedule(s.alice, schedule.ID, SchedulePatch{GoalID: &goal.ID, Note: &note})
	s.Require().NoError(err)
	s.Equal(models.ExerciseIDSet{1, 2, 3}, updated.SelectedExerciseIDs)
	s.Equal("linked", updated.Note)
	s.Equal(models.ExerciseIDSet{1, 2, 3}, s.storedSet(schedule.ID))
}

func (s *ScheduleServiceTestSuite) TestUpdateReplacesSelectionBeforeReconciling() {
	goal := s.createGoal(1)
	schedule, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{GoalID: &goal.ID, SelectedExerciseIDs: []uint64{2}})
	s.Require().NoError(err)

	updated, err := s.schedules.UpdateSchedule(s.alice, schedule.ID, SchedulePatch{SelectedExerciseIDs: []uint64{4}})
	s.Require().NoError(err)
	s.Equal(models.ExerciseIDSet{1, 4}, updated.SelectedExerciseIDs)
}

func (s *ScheduleServiceTestSuite) TestUpdateWithMissingGoal() {
	schedule, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{})
	s.Require().NoError(err)

	missing := uint64(999)
	_, err = s.schedules.UpdateSchedule(s.alice, schedule.ID, SchedulePatch{GoalID: &missing})
	s.ErrorIs(err, ErrGoalNotFound)

	var stored models.Schedule
	s.Require().NoError(s.db.First(&stored, schedule.ID).Error)
	s.Nil(stored.GoalID)
}

func (s *ScheduleServiceTestSuite) TestUpdateToleratesDeletedLinkedGoal() {
	goal := s.createGoal(1)
	schedule, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{GoalID: &goal.ID})
	s.Require().NoError(err)
	s.Require().NoError(s.goals.DeleteGoal(s.alice, goal.ID))

	note := "still here"
	updated, err := s.schedules.UpdateSchedule(s.alice, schedule.ID, SchedulePatch{Note: &note})
	s.Require().NoError(err)
	s.Equal(models.ExerciseIDSet{1}, updated.SelectedExerciseIDs)
}

func (s *ScheduleServiceTestSuite) TestUpdateByOtherUser() {
	schedule, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{Note: "mine"})
	s.Require().NoError(err)

	note := "theirs"
	_, err = s.schedules.UpdateSchedule(s.bob, schedule.ID, SchedulePatch{Note: &note})
	s.ErrorIs(err, ErrScheduleNotFound)

	_, err = s.schedules.GetSchedule(s.bob, schedule.ID)
	s.ErrorIs(err, ErrScheduleNotFound)
}

func (s *ScheduleServiceTestSuite) TestDeleteTwice() {
	schedule, err := s.schedules.CreateSchedule(s.alice, CreateScheduleInput{})
	s.Require().NoError(err)

	s.NoError(s.schedules.DeleteSchedule(s.alice, schedule.ID))
	s.ErrorIs(s.schedules.DeleteSchedule(s.alice, schedule.ID), ErrScheduleNotFound)
}

func TestScheduleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}
