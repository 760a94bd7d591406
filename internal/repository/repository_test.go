package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/workout-api/internal/database"
	"github.com/yukikurage/workout-api/internal/models"
)

type RepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	store Store
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(database.Migrate(db))

	s.db = db
	s.store = NewStore(db)
}

func (s *RepositoryTestSuite) TearDownTest() {
	sqlDB, _ := s.db.DB()
	sqlDB.Close()
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func (s *RepositoryTestSuite) TestGoalListOrdersUndatedLast() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	goals := []models.Goal{
		{Name: "undated", UserID: 1, GoalTypeID: 1, CreatedAt: base},
		{Name: "march", UserID: 1, GoalTypeID: 1, StartDate: date(2024, 3, 1), CreatedAt: base},
		{Name: "january", UserID: 1, GoalTypeID: 1, StartDate: date(2024, 1, 1), CreatedAt: base.Add(time.Hour)},
		{Name: "january-earlier", UserID: 1, GoalTypeID: 1, StartDate: date(2024, 1, 1), CreatedAt: base},
		{Name: "other-user", UserID: 2, GoalTypeID: 1, StartDate: date(2023, 1, 1), CreatedAt: base},
	}
	for i := range goals {
		s.Require().NoError(s.store.Goals().Create(&goals[i]))
	}

	listed, err := s.store.Goals().ListByUser(1)
	s.Require().NoError(err)

	names := make([]string, 0, len(listed))
	for _, g := range listed {
		names = append(names, g.Name)
	}
	s.Equal([]string{"january-earlier", "january", "march", "undated"}, names)
}

func (s *RepositoryTestSuite) TestGoalExerciseSetPersistsNormalized() {
	goal := models.Goal{Name: "g", UserID: 1, GoalTypeID: 1, SelectedExerciseIDs: models.ExerciseIDSet{3, 1, 3}}
	s.Require().NoError(s.store.Goals().Create(&goal))

	found, err := s.store.Goals().FindOwned(1, goal.ID)
	s.Require().NoError(err)
	s.Equal(models.ExerciseIDSet{1, 3}, found.SelectedExerciseIDs)
}

func (s *RepositoryTestSuite) TestDeleteOwnedReportsRowsAffected() {
	goal := models.Goal{Name: "g", UserID: 1, GoalTypeID: 1}
	s.Require().NoError(s.store.Goals().Create(&goal))

	n, err := s.store.Goals().DeleteOwned(2, goal.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), n)

	n, err = s.store.Goals().DeleteOwned(1, goal.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	_, err = s.store.Goals().FindByID(goal.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestTransactionRollsBack() {
	errBoom := errors.New("boom")
	err := s.store.Transaction(func(tx Store) error {
		if err := tx.Histories().Create(&models.History{UserID: 1}); err != nil {
			return err
		}
		return errBoom
	})
	s.ErrorIs(err, errBoom)

	records, err := s.store.Histories().ListByUser(1)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *RepositoryTestSuite) TestCatalogUpsertOverwrites() {
	catalog := s.store.Catalog()
	s.Require().NoError(catalog.UpsertGoalTypes([]models.GoalType{{ID: 1, TargetLabel: "strength"}}))
	s.Require().NoError(catalog.UpsertGoalTypes([]models.GoalType{{ID: 1, TargetLabel: "endurance"}}))

	goalType, err := catalog.FindGoalType(1)
	s.Require().NoError(err)
	s.Equal("endurance", goalType.TargetLabel)

	s.NoError(catalog.UpsertExercises(nil))
}

func (s *RepositoryTestSuite) TestListExercisesFiltersAndOrders() {
	catalog := s.store.Catalog()
	s.Require().NoError(catalog.UpsertGoalTypes([]models.GoalType{{ID: 1, TargetLabel: "strength"}, {ID: 2, TargetLabel: "cardio"}}))
	s.Require().NoError(catalog.UpsertExerciseTypes([]models.ExerciseType{{ID: 1, Name: "push"}, {ID: 2, Name: "pull"}}))
	s.Require().NoError(catalog.UpsertExerciseUnits([]models.ExerciseUnit{{ID: 1, PrimaryUnit: "reps"}}))
	s.Require().NoError(catalog.UpsertExercises([]models.Exercise{
		{ID: 1, Name: "row", Description: "d", ExerciseTypeID: 2, UnitID: 1, GoalTypeID: 1},
		{ID: 2, Name: "press", Description: "d", ExerciseTypeID: 1, UnitID: 1, GoalTypeID: 1},
		{ID: 3, Name: "run", Description: "d", ExerciseTypeID: 1, UnitID: 1, GoalTypeID: 2},
	}))

	all, err := catalog.ListExercises(ExerciseFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]uint64{2, 3, 1}, []uint64{all[0].ID, all[1].ID, all[2].ID})
	s.Equal("push", all[0].ExerciseType.Name)
	s.Equal("reps", all[0].Unit.PrimaryUnit)

	goalType := uint64(1)
	strength, err := catalog.ListExercises(ExerciseFilter{GoalTypeID: &goalType})
	s.Require().NoError(err)
	s.Len(strength, 2)

	some, err := catalog.FindExercisesByIDs([]uint64{3, 99, 1})
	s.Require().NoError(err)
	s.Len(some, 2)
	s.Equal(uint64(1), some[0].ID)
}

func (s *RepositoryTestSuite) TestUserCreateDuplicateUsername() {
	s.Require().NoError(s.store.Users().Create(&models.User{Username: "bob", PasswordHash: "hash"}))

	err := s.store.Users().Create(&models.User{Username: "bob", PasswordHash: "other"})
	s.Require().Error(err)
	s.True(errors.Is(err, gorm.ErrDuplicatedKey), err.Error())
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestUserUpdateClearsNullableColumns(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	users := NewUserRepository(db)

	weight := 80
	user := &models.User{Username: "alice", PasswordHash: "x", Weight: &weight}
	require.NoError(t, users.Create(user))

	user.Weight = nil
	user.FullName = "Alice"
	require.NoError(t, users.Update(user))

	found, err := users.FindByUsername("alice")
	require.NoError(t, err)
	assert.Nil(t, found.Weight)
	assert.Equal(t, "Alice", found.FullName)
}
